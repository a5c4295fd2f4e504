// Package schedule wires the read-only catalog slice: listing services and
// browsing departures and arrivals per station.
package schedule

import (
	"github.com/go-chi/chi/v5"

	"github.com/railbook/railbook/internal/railway"
	"github.com/railbook/railbook/internal/schedule/application"
	"github.com/railbook/railbook/internal/schedule/infrastructure"
	pkgApp "github.com/railbook/railbook/pkg/application"
	pkgDomain "github.com/railbook/railbook/pkg/domain"
	pkgInfra "github.com/railbook/railbook/pkg/infrastructure"
)

type ScheduleSlice struct {
	httpHandler *infrastructure.ScheduleHTTPHandler
}

func NewScheduleSlice(office *railway.Office, logger pkgApp.AppLogger) *ScheduleSlice {
	listBus := pkgInfra.NewSimpleQueryBus[pkgDomain.Query[application.ServiceData], application.ServiceData, []application.ServiceView]()
	getBus := pkgInfra.NewSimpleQueryBus[pkgDomain.Query[application.ServiceData], application.ServiceData, application.ServiceView]()
	departingBus := pkgInfra.NewSimpleQueryBus[pkgDomain.Query[application.StationData], application.StationData, []application.ServiceView]()
	arrivingBus := pkgInfra.NewSimpleQueryBus[pkgDomain.Query[application.StationData], application.StationData, []application.ServiceView]()

	listBus.RegisterHandler("ListServices", application.NewListServicesHandler(office, logger))
	getBus.RegisterHandler("GetService", application.NewGetServiceHandler(office, logger))
	departingBus.RegisterHandler("ServicesDepartingFrom", application.NewServicesDepartingFromHandler(office, logger))
	arrivingBus.RegisterHandler("ServicesArrivingAt", application.NewServicesArrivingAtHandler(office, logger))

	return &ScheduleSlice{
		httpHandler: infrastructure.NewScheduleHTTPHandler(listBus, getBus, departingBus, arrivingBus),
	}
}

func (s *ScheduleSlice) RegisterRoutes(router *chi.Mux) {
	s.httpHandler.RegisterRoutes(router)
}
