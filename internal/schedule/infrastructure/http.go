package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/railbook/railbook/internal/railway"
	"github.com/railbook/railbook/internal/schedule/application"
	pkgApp "github.com/railbook/railbook/pkg/application"
	pkgDomain "github.com/railbook/railbook/pkg/domain"
)

type (
	ListServicesBus    = pkgApp.QueryBus[pkgDomain.Query[application.ServiceData], application.ServiceData, []application.ServiceView]
	GetServiceBus      = pkgApp.QueryBus[pkgDomain.Query[application.ServiceData], application.ServiceData, application.ServiceView]
	StationServicesBus = pkgApp.QueryBus[pkgDomain.Query[application.StationData], application.StationData, []application.ServiceView]
)

type ScheduleHTTPHandler struct {
	listBus      ListServicesBus
	getBus       GetServiceBus
	departingBus StationServicesBus
	arrivingBus  StationServicesBus
}

func NewScheduleHTTPHandler(listBus ListServicesBus, getBus GetServiceBus, departingBus, arrivingBus StationServicesBus) *ScheduleHTTPHandler {
	return &ScheduleHTTPHandler{
		listBus:      listBus,
		getBus:       getBus,
		departingBus: departingBus,
		arrivingBus:  arrivingBus,
	}
}

func (h *ScheduleHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Get("/services", h.HandleListServices)
	router.Get("/services/{serviceID}", h.HandleGetService)
	router.Get("/stations/{station}/departures", h.HandleDepartingFrom)
	router.Get("/stations/{station}/arrivals", h.HandleArrivingAt)
}

func (h *ScheduleHTTPHandler) HandleListServices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	views, err := h.listBus.Dispatch(ctx, application.NewListServicesQuery())
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, views)
}

func (h *ScheduleHTTPHandler) HandleGetService(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.Atoi(chi.URLParam(r, "serviceID"))
	if err != nil {
		http.Error(w, "invalid service id", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	view, err := h.getBus.Dispatch(ctx, application.NewGetServiceQuery(application.ServiceData{ServiceID: serviceID}))
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, view)
}

func (h *ScheduleHTTPHandler) HandleDepartingFrom(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	station := chi.URLParam(r, "station")
	views, err := h.departingBus.Dispatch(ctx, application.NewServicesDepartingFromQuery(application.StationData{Station: station}))
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, views)
}

func (h *ScheduleHTTPHandler) HandleArrivingAt(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	station := chi.URLParam(r, "station")
	views, err := h.arrivingBus.Dispatch(ctx, application.NewServicesArrivingAtQuery(application.StationData{Station: station}))
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, views)
}

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 10*time.Second)
}

func statusForError(err error) int {
	var (
		noService railway.NoSuchServiceError
		noStation railway.NoSuchStationError
	)
	if errors.As(err, &noService) || errors.As(err, &noStation) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
