package railway

import "testing"

func TestNextTierThresholds(t *testing.T) {
	cases := []struct {
		name    string
		current Tier
		spend   float64
		want    Tier
	}{
		{"zero spend stays normal", TierNormal, 0, TierNormal},
		{"exactly 250 stays normal", TierNormal, 250, TierNormal},
		{"just above 250 promotes", TierNormal, 250.01, TierFrequent},
		{"exactly 2500 is frequent", TierNormal, 2500, TierFrequent},
		{"just above 2500 promotes", TierNormal, 2500.01, TierSpecial},
		{"frequent falls back to normal", TierFrequent, 100, TierNormal},
		{"special survives low spend", TierSpecial, 0, TierSpecial},
		{"special survives mid spend", TierSpecial, 300, TierFrequent},
		{"special stays on high spend", TierSpecial, 3000, TierSpecial},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextTier(tc.current, tc.spend); got != tc.want {
				t.Errorf("NextTier(%v, %v) = %v, want %v", tc.current, tc.spend, got, tc.want)
			}
		})
	}
}

func TestDiscountRates(t *testing.T) {
	if TierNormal.DiscountRate() != 0 {
		t.Errorf("normal discount = %v", TierNormal.DiscountRate())
	}
	if TierFrequent.DiscountRate() != 0.15 {
		t.Errorf("frequent discount = %v", TierFrequent.DiscountRate())
	}
	if TierSpecial.DiscountRate() != 0.5 {
		t.Errorf("special discount = %v", TierSpecial.DiscountRate())
	}
}

func TestNewCategoryDerivesDiscount(t *testing.T) {
	c := NewCategory(TierFrequent, 300, 45)
	if c.Discount != 0.15 || c.Spend != 300 || c.Minutes != 45 {
		t.Errorf("unexpected category %+v", c)
	}
}
