package application

import (
	"context"

	"github.com/railbook/railbook/internal/railway"
	pkgApp "github.com/railbook/railbook/pkg/application"
	pkgDomain "github.com/railbook/railbook/pkg/domain"
)

type listServicesHandler struct {
	office *railway.Office
	logger pkgApp.AppLogger
}

func NewListServicesHandler(office *railway.Office, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[ServiceData], ServiceData, []ServiceView] {
	return &listServicesHandler{office: office, logger: logger}
}

func (h *listServicesHandler) Handle(ctx context.Context, query pkgDomain.Query[ServiceData]) ([]ServiceView, error) {
	return NewServiceViews(h.office.Services()), nil
}

type getServiceHandler struct {
	office *railway.Office
	logger pkgApp.AppLogger
}

func NewGetServiceHandler(office *railway.Office, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[ServiceData], ServiceData, ServiceView] {
	return &getServiceHandler{office: office, logger: logger}
}

func (h *getServiceHandler) Handle(ctx context.Context, query pkgDomain.Query[ServiceData]) (ServiceView, error) {
	data := query.Payload()
	s, err := h.office.Service(data.ServiceID)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "service lookup failed", err, map[string]interface{}{"service_id": data.ServiceID})
		return ServiceView{}, err
	}
	return NewServiceView(s), nil
}

type departingFromHandler struct {
	office *railway.Office
	logger pkgApp.AppLogger
}

func NewServicesDepartingFromHandler(office *railway.Office, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[StationData], StationData, []ServiceView] {
	return &departingFromHandler{office: office, logger: logger}
}

func (h *departingFromHandler) Handle(ctx context.Context, query pkgDomain.Query[StationData]) ([]ServiceView, error) {
	data := query.Payload()
	services, err := h.office.ServicesDepartingFrom(data.Station)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "departure listing failed", err, map[string]interface{}{"station": data.Station})
		return nil, err
	}
	return NewServiceViews(services), nil
}

type arrivingAtHandler struct {
	office *railway.Office
	logger pkgApp.AppLogger
}

func NewServicesArrivingAtHandler(office *railway.Office, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[StationData], StationData, []ServiceView] {
	return &arrivingAtHandler{office: office, logger: logger}
}

func (h *arrivingAtHandler) Handle(ctx context.Context, query pkgDomain.Query[StationData]) ([]ServiceView, error) {
	data := query.Payload()
	services, err := h.office.ServicesArrivingAt(data.Station)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "arrival listing failed", err, map[string]interface{}{"station": data.Station})
		return nil, err
	}
	return NewServiceViews(services), nil
}
