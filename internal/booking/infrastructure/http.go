package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/railbook/railbook/internal/booking/application"
	"github.com/railbook/railbook/internal/railway"
	pkgApp "github.com/railbook/railbook/pkg/application"
	pkgDomain "github.com/railbook/railbook/pkg/domain"
)

// Bus type aliases keep the handler signatures readable.
type (
	RegisterPassengerBus    = pkgApp.CommandBus[pkgDomain.Command[application.RegisterPassengerData], application.RegisterPassengerData]
	ChangePassengerNameBus  = pkgApp.CommandBus[pkgDomain.Command[application.ChangePassengerNameData], application.ChangePassengerNameData]
	CommitItineraryBus      = pkgApp.CommandBus[pkgDomain.Command[application.CommitItineraryData], application.CommitItineraryData]
	ImportFileBus           = pkgApp.CommandBus[pkgDomain.Command[application.ImportFileData], application.ImportFileData]
	SaveStateBus            = pkgApp.CommandBus[pkgDomain.Command[application.SaveStateData], application.SaveStateData]
	LoadStateBus            = pkgApp.CommandBus[pkgDomain.Command[application.LoadStateData], application.LoadStateData]
	SearchItinerariesBus    = pkgApp.QueryBus[pkgDomain.Query[application.SearchItinerariesData], application.SearchItinerariesData, []application.ItineraryView]
	GetPassengerBus         = pkgApp.QueryBus[pkgDomain.Query[application.PassengerData], application.PassengerData, application.PassengerView]
	ListPassengersBus       = pkgApp.QueryBus[pkgDomain.Query[application.PassengerData], application.PassengerData, []application.PassengerView]
	PassengerItinerariesBus = pkgApp.QueryBus[pkgDomain.Query[application.PassengerData], application.PassengerData, []application.ItineraryView]
)

// Buses bundles every bus the booking HTTP surface dispatches on.
type Buses struct {
	RegisterPassenger    RegisterPassengerBus
	ChangePassengerName  ChangePassengerNameBus
	CommitItinerary      CommitItineraryBus
	ImportFile           ImportFileBus
	SaveState            SaveStateBus
	LoadState            LoadStateBus
	SearchItineraries    SearchItinerariesBus
	GetPassenger         GetPassengerBus
	ListPassengers       ListPassengersBus
	PassengerItineraries PassengerItinerariesBus
}

type BookingHTTPHandler struct {
	buses Buses
}

func NewBookingHTTPHandler(buses Buses) *BookingHTTPHandler {
	return &BookingHTTPHandler{buses: buses}
}

func (h *BookingHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Post("/passengers", h.HandleRegisterPassenger)
	router.Get("/passengers", h.HandleListPassengers)
	router.Get("/passengers/{passengerID}", h.HandleGetPassenger)
	router.Patch("/passengers/{passengerID}", h.HandleChangePassengerName)
	router.Get("/passengers/{passengerID}/itineraries", h.HandlePassengerItineraries)
	router.Post("/passengers/{passengerID}/search", h.HandleSearchItineraries)
	router.Post("/passengers/{passengerID}/commit", h.HandleCommitItinerary)
	router.Post("/import", h.HandleImportFile)
	router.Post("/save", h.HandleSaveState)
	router.Post("/load", h.HandleLoadState)
}

func (h *BookingHTTPHandler) HandleRegisterPassenger(w http.ResponseWriter, r *http.Request) {
	var data application.RegisterPassengerData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		handleError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := h.buses.RegisterPassenger.Dispatch(ctx, application.NewRegisterPassengerCommand(data)); err != nil {
		handleError(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"message": "passenger registered", "data": data})
}

func (h *BookingHTTPHandler) HandleChangePassengerName(w http.ResponseWriter, r *http.Request) {
	passengerID, ok := passengerParam(w, r)
	if !ok {
		return
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handleError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	data := application.ChangePassengerNameData{PassengerID: passengerID, Name: body.Name}
	if err := h.buses.ChangePassengerName.Dispatch(ctx, application.NewChangePassengerNameCommand(data)); err != nil {
		handleError(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "passenger renamed", "data": data})
}

func (h *BookingHTTPHandler) HandleListPassengers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	views, err := h.buses.ListPassengers.Dispatch(ctx, application.NewListPassengersQuery())
	if err != nil {
		handleError(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *BookingHTTPHandler) HandleGetPassenger(w http.ResponseWriter, r *http.Request) {
	passengerID, ok := passengerParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	view, err := h.buses.GetPassenger.Dispatch(ctx, application.NewGetPassengerQuery(application.PassengerData{PassengerID: passengerID}))
	if err != nil {
		handleError(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *BookingHTTPHandler) HandlePassengerItineraries(w http.ResponseWriter, r *http.Request) {
	passengerID, ok := passengerParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	views, err := h.buses.PassengerItineraries.Dispatch(ctx, application.NewPassengerItinerariesQuery(application.PassengerData{PassengerID: passengerID}))
	if err != nil {
		handleError(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *BookingHTTPHandler) HandleSearchItineraries(w http.ResponseWriter, r *http.Request) {
	passengerID, ok := passengerParam(w, r)
	if !ok {
		return
	}
	var body struct {
		Origin      string `json:"origin"`
		Destination string `json:"destination"`
		Date        string `json:"date"`
		Time        string `json:"time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handleError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	data := application.SearchItinerariesData{
		PassengerID: passengerID,
		Origin:      body.Origin,
		Destination: body.Destination,
		Date:        body.Date,
		Time:        body.Time,
	}
	views, err := h.buses.SearchItineraries.Dispatch(ctx, application.NewSearchItinerariesQuery(data))
	if err != nil {
		handleError(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *BookingHTTPHandler) HandleCommitItinerary(w http.ResponseWriter, r *http.Request) {
	passengerID, ok := passengerParam(w, r)
	if !ok {
		return
	}
	var body struct {
		Choice int `json:"choice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handleError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	data := application.CommitItineraryData{PassengerID: passengerID, Choice: body.Choice}
	if err := h.buses.CommitItinerary.Dispatch(ctx, application.NewCommitItineraryCommand(data)); err != nil {
		handleError(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "choice applied", "data": data})
}

func (h *BookingHTTPHandler) HandleImportFile(w http.ResponseWriter, r *http.Request) {
	var data application.ImportFileData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		handleError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := h.buses.ImportFile.Dispatch(ctx, application.NewImportFileCommand(data)); err != nil {
		handleError(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "import finished", "data": data})
}

func (h *BookingHTTPHandler) HandleSaveState(w http.ResponseWriter, r *http.Request) {
	var data application.SaveStateData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		handleError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := h.buses.SaveState.Dispatch(ctx, application.NewSaveStateCommand(data)); err != nil {
		handleError(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "state saved", "data": data})
}

func (h *BookingHTTPHandler) HandleLoadState(w http.ResponseWriter, r *http.Request) {
	var data application.LoadStateData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		handleError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := h.buses.LoadState.Dispatch(ctx, application.NewLoadStateCommand(data)); err != nil {
		handleError(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "state loaded", "data": data})
}

func passengerParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "passengerID"))
	if err != nil {
		handleError(w, "invalid passenger id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 10*time.Second)
}

// statusForError maps domain errors onto HTTP statuses. Anything unknown is
// a 500.
func statusForError(err error) int {
	var (
		badDate       railway.BadDateError
		badTime       railway.BadTimeError
		noStation     railway.NoSuchStationError
		noService     railway.NoSuchServiceError
		noPassenger   railway.NoSuchPassengerError
		noChoice      railway.NoSuchItineraryChoiceError
		duplicateName railway.DuplicatePassengerNameError
		importErr     railway.ImportError
	)
	switch {
	// Import errors wrap their cause; check them first so a wrapped
	// lookup failure still reads as an import problem.
	case errors.As(err, &importErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &badDate), errors.As(err, &badTime):
		return http.StatusBadRequest
	case errors.As(err, &noStation), errors.As(err, &noService), errors.As(err, &noPassenger), errors.As(err, &noChoice):
		return http.StatusNotFound
	case errors.As(err, &duplicateName):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		handleError(w, err.Error(), http.StatusInternalServerError)
	}
}

func handleError(w http.ResponseWriter, message string, statusCode int) {
	http.Error(w, message, statusCode)
}
