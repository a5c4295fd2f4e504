// Package snapshot defines the versioned full-state schema used by the
// persistence stores: typed records for services, stops, passengers,
// categories, and committed itineraries, replacing opaque object-graph
// serialization.
package snapshot

import "context"

// SchemaVersion identifies the record layout. Stores refuse to load a
// snapshot written with a different version.
const SchemaVersion = 1

type Snapshot struct {
	Version         int               `json:"version"`
	NextPassengerID int               `json:"nextPassengerId"`
	Services        []ServiceRecord   `json:"services"`
	Passengers      []PassengerRecord `json:"passengers"`
}

type ServiceRecord struct {
	ID    int          `json:"id"`
	Price float64      `json:"price"`
	Stops []StopRecord `json:"stops"`
}

type StopRecord struct {
	Name      string `json:"name"`
	Departure string `json:"departure"`
}

type PassengerRecord struct {
	ID       int            `json:"id"`
	Name     string         `json:"name"`
	Category CategoryRecord `json:"category"`
	// Itineraries are stored in commit order; display ranks are derived on
	// read and never persisted.
	Itineraries []ItineraryRecord `json:"itineraries"`
}

type CategoryRecord struct {
	Tier     string  `json:"tier"`
	Discount float64 `json:"discount"`
	Spend    float64 `json:"spend"`
	Minutes  int     `json:"minutes"`
}

type ItineraryRecord struct {
	Date       string          `json:"date"`
	Discount   float64         `json:"discount"`
	BookingRef string          `json:"bookingRef,omitempty"`
	Segments   []SegmentRecord `json:"segments"`
}

type SegmentRecord struct {
	ServiceID int    `json:"serviceId"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// Store persists snapshots keyed by name.
type Store interface {
	Save(ctx context.Context, name string, snap Snapshot) error
	Load(ctx context.Context, name string) (Snapshot, error)
}
