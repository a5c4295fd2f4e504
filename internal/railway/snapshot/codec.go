package snapshot

import (
	"fmt"

	"github.com/railbook/railbook/internal/railway"
)

// Capture renders the office's full state as a snapshot.
func Capture(office *railway.Office) Snapshot {
	snap := Snapshot{Version: SchemaVersion}

	office.SnapshotState(func(catalog *railway.Catalog, passengers []*railway.Passenger, nextPassengerID int) {
		snap.NextPassengerID = nextPassengerID

		for _, s := range catalog.Services() {
			rec := ServiceRecord{ID: s.ID(), Price: s.Price()}
			for _, st := range s.Stops() {
				rec.Stops = append(rec.Stops, StopRecord{
					Name:      st.Name,
					Departure: st.Departure.String(),
				})
			}
			snap.Services = append(snap.Services, rec)
		}

		for _, p := range passengers {
			cat := p.Category()
			rec := PassengerRecord{
				ID:   p.ID(),
				Name: p.Name(),
				Category: CategoryRecord{
					Tier:     cat.Tier.String(),
					Discount: cat.Discount,
					Spend:    cat.Spend,
					Minutes:  cat.Minutes,
				},
			}
			for _, it := range p.ItinerariesInCommitOrder() {
				itRec := ItineraryRecord{
					Date:       it.Date().String(),
					Discount:   it.Discount(),
					BookingRef: it.BookingRef(),
				}
				for _, seg := range it.Segments() {
					itRec.Segments = append(itRec.Segments, SegmentRecord{
						ServiceID: seg.ServiceID(),
						From:      seg.FirstStop().Name,
						To:        seg.LastStop().Name,
					})
				}
				rec.Itineraries = append(rec.Itineraries, itRec)
			}
			snap.Passengers = append(snap.Passengers, rec)
		}
	})

	return snap
}

// Restore replaces the office's state with the snapshot's. Prices are
// recomputed from the restored services by the same pure pricing function,
// so a save/load round-trip reproduces them exactly.
func Restore(office *railway.Office, snap Snapshot) error {
	if snap.Version != SchemaVersion {
		return fmt.Errorf("unsupported snapshot version %d (want %d)", snap.Version, SchemaVersion)
	}

	catalog := railway.NewCatalog()
	for _, rec := range snap.Services {
		service := railway.NewService(rec.ID, rec.Price)
		for _, st := range rec.Stops {
			departure, err := railway.ParseTimeOfDay(st.Departure)
			if err != nil {
				return fmt.Errorf("service %d: %w", rec.ID, err)
			}
			if err := service.AppendStop(st.Name, departure); err != nil {
				return err
			}
		}
		catalog.Add(service)
	}

	passengers := make([]*railway.Passenger, 0, len(snap.Passengers))
	for _, rec := range snap.Passengers {
		p := railway.NewPassenger(rec.ID, rec.Name)

		for _, itRec := range rec.Itineraries {
			date, err := railway.ParseDate(itRec.Date)
			if err != nil {
				return fmt.Errorf("passenger %d: %w", rec.ID, err)
			}
			it := railway.NewItinerary(date, p)
			it.SetDiscount(itRec.Discount)
			it.SetBookingRef(itRec.BookingRef)
			for _, segRec := range itRec.Segments {
				service, err := catalog.Service(segRec.ServiceID)
				if err != nil {
					return fmt.Errorf("passenger %d: %w", rec.ID, err)
				}
				seg, err := railway.NewSegment(service, segRec.From, segRec.To)
				if err != nil {
					return fmt.Errorf("passenger %d: %w", rec.ID, err)
				}
				it.AddSegment(seg)
			}
			p.RestoreItinerary(it)
		}

		tier, err := parseTier(rec.Category.Tier)
		if err != nil {
			return fmt.Errorf("passenger %d: %w", rec.ID, err)
		}
		p.RestoreCategory(railway.Category{
			Tier:     tier,
			Discount: rec.Category.Discount,
			Spend:    rec.Category.Spend,
			Minutes:  rec.Category.Minutes,
		})
		passengers = append(passengers, p)
	}

	office.RestoreState(catalog, passengers, snap.NextPassengerID)
	return nil
}

func parseTier(s string) (railway.Tier, error) {
	switch s {
	case railway.TierNormal.String():
		return railway.TierNormal, nil
	case railway.TierFrequent.String():
		return railway.TierFrequent, nil
	case railway.TierSpecial.String():
		return railway.TierSpecial, nil
	default:
		return 0, fmt.Errorf("unknown tier %q", s)
	}
}
