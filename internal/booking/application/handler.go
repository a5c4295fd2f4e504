package application

import (
	"context"

	"github.com/railbook/railbook/internal/railway"
	"github.com/railbook/railbook/internal/railway/snapshot"
	pkgApp "github.com/railbook/railbook/pkg/application"
	pkgDomain "github.com/railbook/railbook/pkg/domain"
)

// EventBus carries booking events to whichever transport the wiring chose.
type EventBus = pkgApp.EventBus[pkgDomain.Event[BookingEventData], BookingEventData]

type registerPassengerHandler struct {
	office   *railway.Office
	eventBus EventBus
	logger   pkgApp.AppLogger
}

func NewRegisterPassengerHandler(office *railway.Office, eventBus EventBus, logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[RegisterPassengerData], RegisterPassengerData] {
	return &registerPassengerHandler{office: office, eventBus: eventBus, logger: logger}
}

func (h *registerPassengerHandler) Handle(ctx context.Context, command pkgDomain.Command[RegisterPassengerData]) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	data := command.Payload()
	p, err := h.office.RegisterPassenger(data.Name)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "passenger registration failed", err, map[string]interface{}{"name": data.Name})
		return err
	}

	event := NewPassengerRegisteredEvent(BookingEventData{PassengerID: p.ID(), Name: p.Name()})
	if err := h.eventBus.Publish(ctx, event); err != nil {
		return err
	}

	pkgApp.LogInfo(ctx, h.logger, "passenger registered", map[string]interface{}{
		"passenger_id": p.ID(),
		"name":         p.Name(),
	})
	return nil
}

type changePassengerNameHandler struct {
	office *railway.Office
	logger pkgApp.AppLogger
}

func NewChangePassengerNameHandler(office *railway.Office, logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[ChangePassengerNameData], ChangePassengerNameData] {
	return &changePassengerNameHandler{office: office, logger: logger}
}

func (h *changePassengerNameHandler) Handle(ctx context.Context, command pkgDomain.Command[ChangePassengerNameData]) error {
	data := command.Payload()
	if err := h.office.ChangePassengerName(data.PassengerID, data.Name); err != nil {
		pkgApp.LogError(ctx, h.logger, "passenger rename failed", err, map[string]interface{}{
			"passenger_id": data.PassengerID,
			"name":         data.Name,
		})
		return err
	}
	return nil
}

type commitItineraryHandler struct {
	office   *railway.Office
	eventBus EventBus
	logger   pkgApp.AppLogger
}

func NewCommitItineraryHandler(office *railway.Office, eventBus EventBus, logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[CommitItineraryData], CommitItineraryData] {
	return &commitItineraryHandler{office: office, eventBus: eventBus, logger: logger}
}

func (h *commitItineraryHandler) Handle(ctx context.Context, command pkgDomain.Command[CommitItineraryData]) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	data := command.Payload()
	it, err := h.office.CommitItinerary(data.PassengerID, data.Choice)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "itinerary commit failed", err, map[string]interface{}{
			"passenger_id": data.PassengerID,
			"choice":       data.Choice,
		})
		return err
	}
	if it == nil {
		// Choice 0: candidates cancelled, nothing booked.
		pkgApp.LogInfo(ctx, h.logger, "itinerary selection cancelled", map[string]interface{}{
			"passenger_id": data.PassengerID,
		})
		return nil
	}

	p, err := h.office.Passenger(data.PassengerID)
	if err != nil {
		return err
	}
	event := NewItineraryCommittedEvent(BookingEventData{
		PassengerID: data.PassengerID,
		BookingRef:  it.BookingRef(),
		Price:       it.Price(),
		RealPrice:   it.RealPrice(),
		Tier:        p.Category().Tier.String(),
	})
	if err := h.eventBus.Publish(ctx, event); err != nil {
		return err
	}

	pkgApp.LogInfo(ctx, h.logger, "itinerary committed", map[string]interface{}{
		"passenger_id": data.PassengerID,
		"booking_ref":  it.BookingRef(),
		"real_price":   it.RealPrice(),
	})
	return nil
}

type importFileHandler struct {
	office *railway.Office
	logger pkgApp.AppLogger
}

func NewImportFileHandler(office *railway.Office, logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[ImportFileData], ImportFileData] {
	return &importFileHandler{office: office, logger: logger}
}

func (h *importFileHandler) Handle(ctx context.Context, command pkgDomain.Command[ImportFileData]) error {
	data := command.Payload()
	if err := h.office.ImportFile(data.Path); err != nil {
		pkgApp.LogError(ctx, h.logger, "bulk import failed", err, map[string]interface{}{"path": data.Path})
		return err
	}
	pkgApp.LogInfo(ctx, h.logger, "bulk import finished", map[string]interface{}{"path": data.Path})
	return nil
}

type saveStateHandler struct {
	office *railway.Office
	store  snapshot.Store
	logger pkgApp.AppLogger
}

func NewSaveStateHandler(office *railway.Office, store snapshot.Store, logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[SaveStateData], SaveStateData] {
	return &saveStateHandler{office: office, store: store, logger: logger}
}

func (h *saveStateHandler) Handle(ctx context.Context, command pkgDomain.Command[SaveStateData]) error {
	data := command.Payload()
	if !h.office.Dirty() {
		pkgApp.LogDebug(ctx, h.logger, "state unchanged since last save, skipping", map[string]interface{}{
			"filename": data.Filename,
		})
		return nil
	}

	snap := snapshot.Capture(h.office)
	if err := h.store.Save(ctx, data.Filename, snap); err != nil {
		pkgApp.LogError(ctx, h.logger, "snapshot save failed", err, map[string]interface{}{"filename": data.Filename})
		return err
	}
	h.office.MarkClean()

	pkgApp.LogInfo(ctx, h.logger, "snapshot saved", map[string]interface{}{
		"filename":   data.Filename,
		"services":   len(snap.Services),
		"passengers": len(snap.Passengers),
	})
	return nil
}

type loadStateHandler struct {
	office *railway.Office
	store  snapshot.Store
	logger pkgApp.AppLogger
}

func NewLoadStateHandler(office *railway.Office, store snapshot.Store, logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[LoadStateData], LoadStateData] {
	return &loadStateHandler{office: office, store: store, logger: logger}
}

func (h *loadStateHandler) Handle(ctx context.Context, command pkgDomain.Command[LoadStateData]) error {
	data := command.Payload()
	snap, err := h.store.Load(ctx, data.Filename)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "snapshot load failed", err, map[string]interface{}{"filename": data.Filename})
		return err
	}
	if err := snapshot.Restore(h.office, snap); err != nil {
		pkgApp.LogError(ctx, h.logger, "snapshot restore failed", err, map[string]interface{}{"filename": data.Filename})
		return err
	}

	pkgApp.LogInfo(ctx, h.logger, "snapshot loaded", map[string]interface{}{
		"filename":   data.Filename,
		"services":   len(snap.Services),
		"passengers": len(snap.Passengers),
	})
	return nil
}

type searchItinerariesHandler struct {
	office *railway.Office
	logger pkgApp.AppLogger
}

func NewSearchItinerariesHandler(office *railway.Office, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[SearchItinerariesData], SearchItinerariesData, []ItineraryView] {
	return &searchItinerariesHandler{office: office, logger: logger}
}

func (h *searchItinerariesHandler) Handle(ctx context.Context, query pkgDomain.Query[SearchItinerariesData]) ([]ItineraryView, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	data := query.Payload()
	candidates, err := h.office.Search(data.PassengerID, data.Origin, data.Destination, data.Date, data.Time)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "route search failed", err, map[string]interface{}{
			"passenger_id": data.PassengerID,
			"origin":       data.Origin,
			"destination":  data.Destination,
		})
		return nil, err
	}

	pkgApp.LogInfo(ctx, h.logger, "route search finished", map[string]interface{}{
		"passenger_id": data.PassengerID,
		"origin":       data.Origin,
		"destination":  data.Destination,
		"candidates":   len(candidates),
	})
	return NewItineraryViews(candidates), nil
}

type getPassengerHandler struct {
	office *railway.Office
	logger pkgApp.AppLogger
}

func NewGetPassengerHandler(office *railway.Office, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[PassengerData], PassengerData, PassengerView] {
	return &getPassengerHandler{office: office, logger: logger}
}

func (h *getPassengerHandler) Handle(ctx context.Context, query pkgDomain.Query[PassengerData]) (PassengerView, error) {
	data := query.Payload()
	p, err := h.office.Passenger(data.PassengerID)
	if err != nil {
		return PassengerView{}, err
	}
	return NewPassengerView(p), nil
}

type listPassengersHandler struct {
	office *railway.Office
	logger pkgApp.AppLogger
}

func NewListPassengersHandler(office *railway.Office, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[PassengerData], PassengerData, []PassengerView] {
	return &listPassengersHandler{office: office, logger: logger}
}

func (h *listPassengersHandler) Handle(ctx context.Context, query pkgDomain.Query[PassengerData]) ([]PassengerView, error) {
	passengers := h.office.Passengers()
	views := make([]PassengerView, 0, len(passengers))
	for _, p := range passengers {
		views = append(views, NewPassengerView(p))
	}
	return views, nil
}

type passengerItinerariesHandler struct {
	office *railway.Office
	logger pkgApp.AppLogger
}

func NewPassengerItinerariesHandler(office *railway.Office, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[PassengerData], PassengerData, []ItineraryView] {
	return &passengerItinerariesHandler{office: office, logger: logger}
}

func (h *passengerItinerariesHandler) Handle(ctx context.Context, query pkgDomain.Query[PassengerData]) ([]ItineraryView, error) {
	data := query.Payload()
	p, err := h.office.Passenger(data.PassengerID)
	if err != nil {
		return nil, err
	}
	return NewItineraryViews(p.Itineraries()), nil
}

type bookingEventLogger struct {
	logger pkgApp.AppLogger
}

// NewBookingEventLogger logs every booking event delivered on the bus.
func NewBookingEventLogger(logger pkgApp.AppLogger) pkgApp.EventHandler[pkgDomain.Event[BookingEventData], BookingEventData] {
	return &bookingEventLogger{logger: logger}
}

func (h *bookingEventLogger) Handle(ctx context.Context, event pkgDomain.Event[BookingEventData]) error {
	pkgApp.LogInfo(ctx, h.logger, "booking event", map[string]interface{}{
		"event_name": event.EventName(),
		"payload":    event.Payload(),
	})
	return nil
}
