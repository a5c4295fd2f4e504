package booking_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/railbook/railbook/internal/booking"
	"github.com/railbook/railbook/internal/booking/application"
	"github.com/railbook/railbook/internal/booking/infrastructure"
	"github.com/railbook/railbook/internal/railway"
	pkgDomain "github.com/railbook/railbook/pkg/domain"
	pkgInfra "github.com/railbook/railbook/pkg/infrastructure"
)

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, map[string]interface{}) {}
func (nopLogger) Debug(context.Context, string, map[string]interface{}) {}
func (nopLogger) Error(context.Context, string, map[string]interface{}) {}
func (nopLogger) Trace(context.Context, string, map[string]interface{}) {}

func newTestServer(t *testing.T) (*httptest.Server, *railway.Office) {
	t.Helper()

	office := railway.NewOffice(func() string { return "REF-TEST" })
	records := strings.Join([]string{
		"SERVICE|1|60|08:00|Paris|09:00|Dijon|10:00|Lyon",
		"SERVICE|2|30|09:30|Dijon|10:30|Geneva",
	}, "\n")
	if err := office.ImportRecords(strings.NewReader(records)); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	logger := nopLogger{}
	eventBus := pkgInfra.NewSimpleEventBus[pkgDomain.Event[application.BookingEventData], application.BookingEventData](logger)
	store := infrastructure.NewFileSnapshotStore(t.TempDir())

	slice := booking.NewBookingSlice(office, store, eventBus, logger)
	router := chi.NewRouter()
	slice.RegisterRoutes(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, office
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, url string, out interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
	return resp
}

func TestBookingFlowOverHTTP(t *testing.T) {
	server, _ := newTestServer(t)

	if resp := postJSON(t, server.URL+"/passengers", `{"name":"Alice"}`); resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status %d", resp.StatusCode)
	}
	if resp := postJSON(t, server.URL+"/passengers", `{"name":"Alice"}`); resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate register: status %d, want 409", resp.StatusCode)
	}

	resp := postJSON(t, server.URL+"/passengers/0/search",
		`{"origin":"Paris","destination":"Lyon","date":"2024-04-01","time":"08:00"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search: status %d", resp.StatusCode)
	}
	var candidates []application.ItineraryView
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		t.Fatalf("decoding candidates: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != 1 {
		t.Fatalf("candidates = %+v", candidates)
	}

	if resp := postJSON(t, server.URL+"/passengers/0/commit", `{"choice":1}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("commit: status %d", resp.StatusCode)
	}

	var its []application.ItineraryView
	if resp := getJSON(t, server.URL+"/passengers/0/itineraries", &its); resp.StatusCode != http.StatusOK {
		t.Fatalf("itineraries: status %d", resp.StatusCode)
	}
	if len(its) != 1 || its[0].BookingRef != "REF-TEST" {
		t.Errorf("itineraries = %+v", its)
	}

	var view application.PassengerView
	if resp := getJSON(t, server.URL+"/passengers/0", &view); resp.StatusCode != http.StatusOK {
		t.Fatalf("get passenger: status %d", resp.StatusCode)
	}
	if view.Name != "Alice" || view.Itineraries != 1 || view.TravelTime != "02:00" {
		t.Errorf("passenger view = %+v", view)
	}
}

func TestBookingErrorStatuses(t *testing.T) {
	server, _ := newTestServer(t)
	postJSON(t, server.URL+"/passengers", `{"name":"Alice"}`)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"bad date", `{"origin":"Paris","destination":"Lyon","date":"someday","time":"08:00"}`, http.StatusBadRequest},
		{"bad time", `{"origin":"Paris","destination":"Lyon","date":"2024-04-01","time":"late"}`, http.StatusBadRequest},
		{"unknown station", `{"origin":"Atlantis","destination":"Lyon","date":"2024-04-01","time":"08:00"}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, server.URL+"/passengers/0/search", tc.body)
			if resp.StatusCode != tc.want {
				t.Errorf("status %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}

	if resp := getJSON(t, server.URL+"/passengers/42", nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown passenger: status %d, want 404", resp.StatusCode)
	}
	if resp := postJSON(t, server.URL+"/passengers/42/commit", `{"choice":1}`); resp.StatusCode != http.StatusNotFound {
		t.Errorf("commit for unknown passenger: status %d, want 404", resp.StatusCode)
	}
}

func TestSaveAndLoadOverHTTP(t *testing.T) {
	server, office := newTestServer(t)
	postJSON(t, server.URL+"/passengers", `{"name":"Alice"}`)

	if resp := postJSON(t, server.URL+"/save", `{"filename":"office.json"}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("save: status %d", resp.StatusCode)
	}
	if office.Dirty() {
		t.Error("office still dirty after save")
	}

	// Mutate, then load the snapshot back: the later change disappears.
	postJSON(t, server.URL+"/passengers", `{"name":"Bob"}`)
	if resp := postJSON(t, server.URL+"/load", `{"filename":"office.json"}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("load: status %d", resp.StatusCode)
	}

	var views []application.PassengerView
	getJSON(t, server.URL+"/passengers", &views)
	if len(views) != 1 || views[0].Name != "Alice" {
		t.Errorf("passengers after load = %+v", views)
	}
}
