package railway

// Tier is a loyalty discount level.
type Tier int

const (
	TierNormal Tier = iota
	TierFrequent
	TierSpecial
)

// Spend thresholds separating the tiers, applied to the rolling window of
// the passenger's most recent committed itineraries.
const (
	frequentThreshold = 250
	specialThreshold  = 2500
)

// loyaltyWindow is how many of the most recent commits feed the tier input.
const loyaltyWindow = 10

func (t Tier) String() string {
	switch t {
	case TierFrequent:
		return "FREQUENT"
	case TierSpecial:
		return "SPECIAL"
	default:
		return "NORMAL"
	}
}

// DiscountRate is the fixed discount each tier grants.
func (t Tier) DiscountRate() float64 {
	switch t {
	case TierFrequent:
		return 0.15
	case TierSpecial:
		return 0.5
	default:
		return 0
	}
}

// NextTier applies the transition table to the current tier and the rolling
// window spend. The Special row keeps its tier at low spend where the other
// rows drop to Normal.
func NextTier(current Tier, spend float64) Tier {
	switch {
	case spend > specialThreshold:
		return TierSpecial
	case spend > frequentThreshold:
		return TierFrequent
	default:
		if current == TierSpecial {
			return TierSpecial
		}
		return TierNormal
	}
}

// Category is a passenger's loyalty state. A tier transition replaces the
// whole value; it is never mutated in place once attached to a passenger.
type Category struct {
	Tier     Tier
	Discount float64
	// Spend is the rolling-window real-price sum computed at the last commit.
	Spend float64
	// Minutes accumulates door-to-door travel time across every commit,
	// monotonically, regardless of tier transitions.
	Minutes int
}

func NewCategory(tier Tier, spend float64, minutes int) Category {
	return Category{
		Tier:     tier,
		Discount: tier.DiscountRate(),
		Spend:    spend,
		Minutes:  minutes,
	}
}
