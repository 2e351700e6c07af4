package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rideshare-backend/internal/database"
	"rideshare-backend/internal/logging"
	"rideshare-backend/internal/models"
	"rideshare-backend/internal/services"

	"golang.org/x/crypto/bcrypt"
)

func newTestRouter(t *testing.T) (http.Handler, *database.MemoryStore) {
	t.Helper()
	logger := logging.Discard()
	store := database.NewMemoryStore(database.WithBcryptCost(bcrypt.MinCost))
	if err := database.Seed(context.Background(), store, logger); err != nil {
		t.Fatalf("seed: %v", err)
	}
	router := NewRouter(Dependencies{
		Store:          store,
		Bookings:       services.NewBookingService(store, nil, logger),
		Logger:         logger,
		DemoUserID:     models.DemoUserID,
		AllowedOrigins: []string{"*"},
	})
	return router, store
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

type errorBody struct {
	Message string              `json:"message"`
	Errors  []models.FieldError `json:"errors"`
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := do(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestGetUserOmitsPassword(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := do(t, h, http.MethodGet, "/api/user", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var raw map[string]interface{}
	decode(t, rec, &raw)
	if _, ok := raw["password"]; ok {
		t.Error("password leaked in response")
	}
	if raw["id"] != models.DemoUserID || raw["username"] != "demo" || raw["pointsBalance"] != "125.50" {
		t.Errorf("user = %v", raw)
	}
}

func TestGetUserNotFound(t *testing.T) {
	store := database.NewMemoryStore()
	logger := logging.Discard()
	h := NewRouter(Dependencies{
		Store:      store,
		Bookings:   services.NewBookingService(store, nil, logger),
		Logger:     logger,
		DemoUserID: "nobody",
	})

	rec := do(t, h, http.MethodGet, "/api/user", "")
	var body errorBody
	decode(t, rec, &body)
	if rec.Code != http.StatusNotFound || body.Message != "User not found" {
		t.Fatalf("got %d %+v", rec.Code, body)
	}
}

func TestGetServicesReturnsCatalog(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := do(t, h, http.MethodGet, "/api/services", "")

	var services []models.Service
	decode(t, rec, &services)
	if len(services) != 8 {
		t.Fatalf("services = %d, want 8", len(services))
	}
	if services[1].ID != "service-taxi" || services[1].BasePrice != "15.00" {
		t.Errorf("second service = %+v", services[1])
	}
}

func TestGetRidesNewestFirst(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := do(t, h, http.MethodGet, "/api/rides", "")

	var rides []models.Ride
	decode(t, rec, &rides)
	if len(rides) != 2 {
		t.Fatalf("rides = %d", len(rides))
	}
	if rides[0].ID != "ride-1" || !rides[0].Date.After(rides[1].Date) {
		t.Errorf("rides out of order: %+v", rides)
	}
}

func TestCreateBookingRoundTrip(t *testing.T) {
	h, _ := newTestRouter(t)
	body := `{"serviceId":"service-taxi","pickupLocation":"Home","destination":"Airport","isScheduled":true,"totalAmount":"12.00","paymentMethod":"card"}`

	rec := do(t, h, http.MethodPost, "/api/bookings", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var created models.Booking
	decode(t, rec, &created)
	if created.ID == "" || created.CreatedAt.IsZero() || created.Status != "pending" || created.PointsUsed != "0.00" {
		t.Errorf("created = %+v", created)
	}

	rec = do(t, h, http.MethodGet, "/api/bookings", "")
	var list []models.Booking
	decode(t, rec, &list)
	if len(list) != 1 {
		t.Fatalf("bookings = %d", len(list))
	}
	got := list[0]
	if got.ID != created.ID || got.TotalAmount != "12.00" || *got.Destination != "Airport" || *got.PickupLocation != "Home" {
		t.Errorf("listed = %+v", got)
	}

	rec = do(t, h, http.MethodGet, "/api/rides", "")
	var rides []models.Ride
	decode(t, rec, &rides)
	if len(rides) != 3 || rides[0].Destination != "Airport" || rides[0].ServiceType != "Taxi" {
		t.Errorf("rides after booking = %+v", rides)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing service", `{"isScheduled":false}`, "serviceId"},
		{"bad amount", `{"serviceId":"service-taxi","totalAmount":"twelve"}`, "totalAmount"},
		{"bad points", `{"serviceId":"service-taxi","pointsUsed":"lots"}`, "pointsUsed"},
		{"bad time", `{"serviceId":"service-taxi","scheduledTime":"tomorrow"}`, "scheduledTime"},
		{"wrong type", `{"serviceId":42}`, "serviceId"},
		{"not json", `serviceId=service-taxi`, "body"},
		{"empty body", ``, "body"},
		{"unknown service without total", `{"serviceId":"service-x"}`, "totalAmount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestRouter(t)
			rec := do(t, h, http.MethodPost, "/api/bookings", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
			}
			var body errorBody
			decode(t, rec, &body)
			if body.Message != "Invalid booking data" {
				t.Errorf("message = %q", body.Message)
			}
			if len(body.Errors) == 0 || body.Errors[0].Field != tt.field {
				t.Errorf("errors = %+v, want field %s", body.Errors, tt.field)
			}
		})
	}
}

func TestCreateBookingUnknownServiceWithTotal(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := do(t, h, http.MethodPost, "/api/bookings", `{"serviceId":"service-x","totalAmount":"7.25"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/api/rides", "")
	var rides []models.Ride
	decode(t, rec, &rides)
	if len(rides) != 2 {
		t.Errorf("rides = %d, want seeded 2 only", len(rides))
	}
}

func TestUpdateBookingStatus(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := do(t, h, http.MethodPost, "/api/bookings", `{"serviceId":"service-bus"}`)
	var created models.Booking
	decode(t, rec, &created)

	rec = do(t, h, http.MethodPatch, "/api/bookings/"+created.ID, `{}`)
	var body errorBody
	decode(t, rec, &body)
	if rec.Code != http.StatusBadRequest || body.Message != "Status is required" {
		t.Fatalf("empty status: %d %+v", rec.Code, body)
	}

	rec = do(t, h, http.MethodPatch, "/api/bookings/missing", `{"status":"confirmed"}`)
	decode(t, rec, &body)
	if rec.Code != http.StatusNotFound || body.Message != "Booking not found" {
		t.Fatalf("unknown id: %d %+v", rec.Code, body)
	}

	rec = do(t, h, http.MethodPatch, "/api/bookings/"+created.ID, `{"status":"on_the_way"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var updated models.Booking
	decode(t, rec, &updated)
	if updated.Status != "on_the_way" || updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Errorf("updated = %+v", updated)
	}

	rec = do(t, h, http.MethodGet, "/api/bookings", "")
	var list []models.Booking
	decode(t, rec, &list)
	if list[0].Status != "on_the_way" {
		t.Errorf("listed status = %s", list[0].Status)
	}
}

func TestGetBookingQuote(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/bookings/quote?serviceId=service-taxi&scheduled=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var quote models.BookingQuote
	decode(t, rec, &quote)
	if quote.TotalAmount != "12.00" || quote.PointsPreview.CardAmount != "11.75" {
		t.Errorf("quote = %+v", quote)
	}

	tests := []struct {
		query string
		code  int
	}{
		{"", http.StatusBadRequest},
		{"?serviceId=service-taxi&scheduled=maybe", http.StatusBadRequest},
		{"?serviceId=service-none", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := do(t, h, http.MethodGet, "/api/bookings/quote"+tt.query, "")
		if rec.Code != tt.code {
			t.Errorf("%q: status = %d, want %d", tt.query, rec.Code, tt.code)
		}
	}
}

func TestRegisterDeviceToken(t *testing.T) {
	h, store := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/user/device-token", `{"token":"abc"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	user, err := store.GetUser(context.Background(), models.DemoUserID)
	if err != nil {
		t.Fatal(err)
	}
	if len(user.DeviceTokens) != 1 || user.DeviceTokens[0] != "abc" {
		t.Errorf("tokens = %v", user.DeviceTokens)
	}

	rec = do(t, h, http.MethodPost, "/api/user/device-token", `{"token":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty token status = %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t)
	do(t, h, http.MethodGet, "/api/services", "")

	rec := do(t, h, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "rideshare_http_requests_total") {
		t.Fatalf("metrics missing request counter")
	}
}
