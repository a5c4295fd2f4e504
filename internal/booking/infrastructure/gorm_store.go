package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/railbook/railbook/internal/railway/snapshot"
)

// Row types for the relational snapshot layout. Every row carries the
// snapshot name so several named snapshots can share one database.

type snapshotRow struct {
	Name            string `gorm:"primaryKey"`
	Version         int
	NextPassengerID int
}

func (snapshotRow) TableName() string { return "snapshots" }

type serviceRow struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	SnapshotName string `gorm:"index"`
	ServiceID    int
	Price        float64
}

func (serviceRow) TableName() string { return "snapshot_services" }

type stopRow struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	SnapshotName string `gorm:"index"`
	ServiceID    int
	Position     int
	Station      string
	Departure    string
}

func (stopRow) TableName() string { return "snapshot_stops" }

type passengerRow struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	SnapshotName string `gorm:"index"`
	PassengerID  int
	Name         string
	Tier         string
	Discount     float64
	Spend        float64
	Minutes      int
}

func (passengerRow) TableName() string { return "snapshot_passengers" }

type itineraryRow struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	SnapshotName string `gorm:"index"`
	PassengerID  int
	Position     int
	Date         string
	Discount     float64
	BookingRef   string
}

func (itineraryRow) TableName() string { return "snapshot_itineraries" }

type segmentRow struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	SnapshotName string `gorm:"index"`
	PassengerID  int
	ItineraryPos int
	Position     int
	ServiceID    int
	FromStation  string
	ToStation    string
}

func (segmentRow) TableName() string { return "snapshot_segments" }

// GormSnapshotStore persists snapshots in Postgres through gorm.
type GormSnapshotStore struct {
	db *gorm.DB
}

func NewGormSnapshotStore(dsn string) (*GormSnapshotStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := db.AutoMigrate(
		&snapshotRow{}, &serviceRow{}, &stopRow{},
		&passengerRow{}, &itineraryRow{}, &segmentRow{},
	); err != nil {
		return nil, fmt.Errorf("migrating snapshot tables: %w", err)
	}
	return &GormSnapshotStore{db: db}, nil
}

func (s *GormSnapshotStore) Save(ctx context.Context, name string, snap snapshot.Snapshot) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&segmentRow{}, &itineraryRow{}, &passengerRow{},
			&stopRow{}, &serviceRow{},
		} {
			if err := tx.Where("snapshot_name = ?", name).Delete(model).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("name = ?", name).Delete(&snapshotRow{}).Error; err != nil {
			return err
		}

		if err := tx.Create(&snapshotRow{
			Name:            name,
			Version:         snap.Version,
			NextPassengerID: snap.NextPassengerID,
		}).Error; err != nil {
			return err
		}

		for _, svc := range snap.Services {
			if err := tx.Create(&serviceRow{
				SnapshotName: name,
				ServiceID:    svc.ID,
				Price:        svc.Price,
			}).Error; err != nil {
				return err
			}
			for i, st := range svc.Stops {
				if err := tx.Create(&stopRow{
					SnapshotName: name,
					ServiceID:    svc.ID,
					Position:     i,
					Station:      st.Name,
					Departure:    st.Departure,
				}).Error; err != nil {
					return err
				}
			}
		}

		for _, p := range snap.Passengers {
			if err := tx.Create(&passengerRow{
				SnapshotName: name,
				PassengerID:  p.ID,
				Name:         p.Name,
				Tier:         p.Category.Tier,
				Discount:     p.Category.Discount,
				Spend:        p.Category.Spend,
				Minutes:      p.Category.Minutes,
			}).Error; err != nil {
				return err
			}
			for i, it := range p.Itineraries {
				if err := tx.Create(&itineraryRow{
					SnapshotName: name,
					PassengerID:  p.ID,
					Position:     i,
					Date:         it.Date,
					Discount:     it.Discount,
					BookingRef:   it.BookingRef,
				}).Error; err != nil {
					return err
				}
				for j, seg := range it.Segments {
					if err := tx.Create(&segmentRow{
						SnapshotName: name,
						PassengerID:  p.ID,
						ItineraryPos: i,
						Position:     j,
						ServiceID:    seg.ServiceID,
						FromStation:  seg.From,
						ToStation:    seg.To,
					}).Error; err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}

func (s *GormSnapshotStore) Load(ctx context.Context, name string) (snapshot.Snapshot, error) {
	db := s.db.WithContext(ctx)

	var head snapshotRow
	if err := db.First(&head, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return snapshot.Snapshot{}, fmt.Errorf("snapshot %q not found", name)
		}
		return snapshot.Snapshot{}, err
	}
	snap := snapshot.Snapshot{
		Version:         head.Version,
		NextPassengerID: head.NextPassengerID,
	}

	var services []serviceRow
	if err := db.Where("snapshot_name = ?", name).Order("service_id").Find(&services).Error; err != nil {
		return snapshot.Snapshot{}, err
	}
	var stops []stopRow
	if err := db.Where("snapshot_name = ?", name).Order("service_id, position").Find(&stops).Error; err != nil {
		return snapshot.Snapshot{}, err
	}
	stopsByService := make(map[int][]snapshot.StopRecord)
	for _, st := range stops {
		stopsByService[st.ServiceID] = append(stopsByService[st.ServiceID], snapshot.StopRecord{
			Name:      st.Station,
			Departure: st.Departure,
		})
	}
	for _, svc := range services {
		snap.Services = append(snap.Services, snapshot.ServiceRecord{
			ID:    svc.ServiceID,
			Price: svc.Price,
			Stops: stopsByService[svc.ServiceID],
		})
	}

	var passengers []passengerRow
	if err := db.Where("snapshot_name = ?", name).Order("passenger_id").Find(&passengers).Error; err != nil {
		return snapshot.Snapshot{}, err
	}
	var itineraries []itineraryRow
	if err := db.Where("snapshot_name = ?", name).Order("passenger_id, position").Find(&itineraries).Error; err != nil {
		return snapshot.Snapshot{}, err
	}
	var segments []segmentRow
	if err := db.Where("snapshot_name = ?", name).Order("passenger_id, itinerary_pos, position").Find(&segments).Error; err != nil {
		return snapshot.Snapshot{}, err
	}

	type itKey struct{ passenger, pos int }
	segsByItinerary := make(map[itKey][]snapshot.SegmentRecord)
	for _, seg := range segments {
		key := itKey{seg.PassengerID, seg.ItineraryPos}
		segsByItinerary[key] = append(segsByItinerary[key], snapshot.SegmentRecord{
			ServiceID: seg.ServiceID,
			From:      seg.FromStation,
			To:        seg.ToStation,
		})
	}
	itsByPassenger := make(map[int][]snapshot.ItineraryRecord)
	for _, it := range itineraries {
		itsByPassenger[it.PassengerID] = append(itsByPassenger[it.PassengerID], snapshot.ItineraryRecord{
			Date:       it.Date,
			Discount:   it.Discount,
			BookingRef: it.BookingRef,
			Segments:   segsByItinerary[itKey{it.PassengerID, it.Position}],
		})
	}
	for _, p := range passengers {
		snap.Passengers = append(snap.Passengers, snapshot.PassengerRecord{
			ID:   p.PassengerID,
			Name: p.Name,
			Category: snapshot.CategoryRecord{
				Tier:     p.Tier,
				Discount: p.Discount,
				Spend:    p.Spend,
				Minutes:  p.Minutes,
			},
			Itineraries: itsByPassenger[p.PassengerID],
		})
	}

	return snap, nil
}
