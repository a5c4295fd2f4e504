// Package booking wires the passenger-facing slice: registration, route
// search, itinerary commits, bulk import, and snapshot save/load.
package booking

import (
	"github.com/go-chi/chi/v5"

	"github.com/railbook/railbook/internal/booking/application"
	"github.com/railbook/railbook/internal/booking/infrastructure"
	"github.com/railbook/railbook/internal/railway"
	"github.com/railbook/railbook/internal/railway/snapshot"
	pkgApp "github.com/railbook/railbook/pkg/application"
	pkgDomain "github.com/railbook/railbook/pkg/domain"
	pkgInfra "github.com/railbook/railbook/pkg/infrastructure"
)

type BookingSlice struct {
	httpHandler *infrastructure.BookingHTTPHandler
	buses       infrastructure.Buses
}

// NewBookingSlice builds the slice's command and query buses and registers
// every handler. Commands and queries stay synchronous and in-process; only
// events travel on the injected bus, whose backend is chosen by
// configuration. The wiring decides how events are observed: in-memory buses
// register handlers directly, broker backends run an EventConsumer.
func NewBookingSlice(
	office *railway.Office,
	store snapshot.Store,
	eventBus application.EventBus,
	logger pkgApp.AppLogger,
) *BookingSlice {
	buses := infrastructure.Buses{
		RegisterPassenger:    pkgInfra.NewSimpleCommandBus[pkgDomain.Command[application.RegisterPassengerData], application.RegisterPassengerData](),
		ChangePassengerName:  pkgInfra.NewSimpleCommandBus[pkgDomain.Command[application.ChangePassengerNameData], application.ChangePassengerNameData](),
		CommitItinerary:      pkgInfra.NewSimpleCommandBus[pkgDomain.Command[application.CommitItineraryData], application.CommitItineraryData](),
		ImportFile:           pkgInfra.NewSimpleCommandBus[pkgDomain.Command[application.ImportFileData], application.ImportFileData](),
		SaveState:            pkgInfra.NewSimpleCommandBus[pkgDomain.Command[application.SaveStateData], application.SaveStateData](),
		LoadState:            pkgInfra.NewSimpleCommandBus[pkgDomain.Command[application.LoadStateData], application.LoadStateData](),
		SearchItineraries:    pkgInfra.NewSimpleQueryBus[pkgDomain.Query[application.SearchItinerariesData], application.SearchItinerariesData, []application.ItineraryView](),
		GetPassenger:         pkgInfra.NewSimpleQueryBus[pkgDomain.Query[application.PassengerData], application.PassengerData, application.PassengerView](),
		ListPassengers:       pkgInfra.NewSimpleQueryBus[pkgDomain.Query[application.PassengerData], application.PassengerData, []application.PassengerView](),
		PassengerItineraries: pkgInfra.NewSimpleQueryBus[pkgDomain.Query[application.PassengerData], application.PassengerData, []application.ItineraryView](),
	}

	buses.RegisterPassenger.RegisterHandler("RegisterPassenger", application.NewRegisterPassengerHandler(office, eventBus, logger))
	buses.ChangePassengerName.RegisterHandler("ChangePassengerName", application.NewChangePassengerNameHandler(office, logger))
	buses.CommitItinerary.RegisterHandler("CommitItinerary", application.NewCommitItineraryHandler(office, eventBus, logger))
	buses.ImportFile.RegisterHandler("ImportFile", application.NewImportFileHandler(office, logger))
	buses.SaveState.RegisterHandler("SaveState", application.NewSaveStateHandler(office, store, logger))
	buses.LoadState.RegisterHandler("LoadState", application.NewLoadStateHandler(office, store, logger))
	buses.SearchItineraries.RegisterHandler("SearchItineraries", application.NewSearchItinerariesHandler(office, logger))
	buses.GetPassenger.RegisterHandler("GetPassenger", application.NewGetPassengerHandler(office, logger))
	buses.ListPassengers.RegisterHandler("ListPassengers", application.NewListPassengersHandler(office, logger))
	buses.PassengerItineraries.RegisterHandler("PassengerItineraries", application.NewPassengerItinerariesHandler(office, logger))

	return &BookingSlice{
		httpHandler: infrastructure.NewBookingHTTPHandler(buses),
		buses:       buses,
	}
}

func (s *BookingSlice) RegisterRoutes(router *chi.Mux) {
	s.httpHandler.RegisterRoutes(router)
}

// Buses exposes the slice's buses so startup tasks (bootstrap import,
// shutdown save) dispatch through the same path as HTTP requests.
func (s *BookingSlice) Buses() infrastructure.Buses {
	return s.buses
}
