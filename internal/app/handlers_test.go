package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/aph138/residence/internal/cache"
	"github.com/aph138/residence/internal/db"
	"github.com/aph138/residence/internal/entity"
	"github.com/aph138/residence/internal/notify"
	"github.com/aph138/residence/internal/service"
	"github.com/aph138/residence/pkg/authentication"
	"github.com/aph138/residence/pkg/clock"
	"github.com/aph138/residence/pkg/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`<strong>(\d{6})</strong>`)

type outbox struct {
	mu    sync.Mutex
	last  map[string]string
	fails bool
}

func (o *outbox) Send(_ context.Context, to, _, body string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fails {
		return errors.New("smtp unavailable")
	}
	o.last[to] = body
	return nil
}

func (o *outbox) code(t *testing.T, to string) string {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	m := codePattern.FindStringSubmatch(o.last[to])
	require.Len(t, m, 2, "no code emailed to %s", to)
	return m[1]
}

type testApp struct {
	handler http.Handler
	outbox  *outbox
	clock   *clock.Manual
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := clock.NewManual(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	box := &outbox{last: map[string]string{}}
	render := notify.Renderer{Hotel: "Sultana Residence"}
	database := db.NewMemory(
		entity.Room{ID: "r1", Name: "Deluxe", Price: 300, Available: true},
		entity.Room{ID: "r2", Name: "Single", Price: 150, Available: true},
	)

	key, err := authentication.GenerateKey(32)
	require.NoError(t, err)
	jwt, err := authentication.NewJWT(key)
	require.NoError(t, err)

	a := NewApplication(logger, jwt,
		service.NewVerification(otp.NewOTP(c), box, render, service.DefaultCodeTTL, logger),
		service.NewBookings(database, cache.NewRoomCache(cache.DefaultRoomTTL, c), box, render, "admin@residence.test", c, logger),
		service.NewContact(box, render, "admin@residence.test", logger),
		WithCORSOrigins([]string{"http://localhost:3000"}),
	)
	return &testApp{handler: a.Handler(), outbox: box, clock: c}
}

func (ta *testApp) do(t *testing.T, method, path string, body any, header ...string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	ta.handler.ServeHTTP(w, req)

	res := w.Result()
	t.Cleanup(func() { res.Body.Close() })
	var out map[string]any
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res, out
}

func TestOTPFlow(t *testing.T) {
	ta := newTestApp(t)

	res, body := ta.do(t, http.MethodPost, "/api/send-otp", map[string]string{"email": "x@y.com"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, true, body["success"])

	code := ta.outbox.code(t, "x@y.com")
	wrong := "100000"
	if code == wrong {
		wrong = "100001"
	}
	_, body = ta.do(t, http.MethodPost, "/api/verify-otp", map[string]string{"email": "x@y.com", "otp": wrong})
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid code", body["message"])

	_, body = ta.do(t, http.MethodPost, "/api/verify-otp", map[string]string{"email": "x@y.com", "otp": code})
	assert.Equal(t, true, body["success"])
}

func TestSendOTPNeedsEmailOrPhone(t *testing.T) {
	ta := newTestApp(t)
	res, body := ta.do(t, http.MethodPost, "/api/send-otp", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Email or phone required", body["message"])
}

func TestSendOTPRejectsUnknownFields(t *testing.T) {
	ta := newTestApp(t)
	res, _ := ta.do(t, http.MethodPost, "/api/send-otp", map[string]string{"mail": "x@y.com"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestExpiredOTP(t *testing.T) {
	ta := newTestApp(t)
	ta.do(t, http.MethodPost, "/api/send-otp", map[string]string{"email": "x@y.com"})
	code := ta.outbox.code(t, "x@y.com")
	ta.clock.Advance(6 * time.Minute)

	_, body := ta.do(t, http.MethodPost, "/api/verify-otp", map[string]string{"email": "x@y.com", "otp": code})
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Code expired", body["message"])
}

func TestRoomsHandlerCaches(t *testing.T) {
	ta := newTestApp(t)

	res, body := ta.do(t, http.MethodGet, "/api/rooms", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, false, body["cached"])
	data := body["data"].([]any)
	require.Len(t, data, 2)
	assert.Equal(t, "r2", data[0].(map[string]any)["id"])

	_, body = ta.do(t, http.MethodGet, "/api/rooms", nil)
	assert.Equal(t, true, body["cached"])

	ta.clock.Advance(301 * time.Second)
	_, body = ta.do(t, http.MethodGet, "/api/rooms", nil)
	assert.Equal(t, false, body["cached"])
}

func bookingBody() map[string]string {
	return map[string]string{
		"name":     "A",
		"email":    "a@b.com",
		"phone":    "1",
		"room_id":  "r1",
		"checkin":  "2025-06-05",
		"checkout": "2025-06-10",
		"guests":   "2",
	}
}

func TestCreateBooking(t *testing.T) {
	ta := newTestApp(t)

	res, body := ta.do(t, http.MethodPost, "/api/bookings", bookingBody())
	require.Equal(t, http.StatusOK, res.StatusCode)
	booking := body["booking"].(map[string]any)
	assert.Equal(t, "pending", booking["status"])
	assert.Equal(t, "Deluxe", booking["room"])

	res, body = ta.do(t, http.MethodGet, "/api/bookings/"+booking["id"].(string), nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, booking["id"], body["booking"].(map[string]any)["id"])
}

func TestCreateBookingValidation(t *testing.T) {
	ta := newTestApp(t)

	req := bookingBody()
	req["checkin"], req["checkout"] = "2025-06-10", "2025-06-05"
	res, body := ta.do(t, http.MethodPost, "/api/bookings", req)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Checkout date must be after checkin date", body["message"])

	req = bookingBody()
	delete(req, "room_id")
	res, body = ta.do(t, http.MethodPost, "/api/bookings", req)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Missing required fields: room_id", body["message"])
}

func TestCreateBookingSurvivesEmailFailure(t *testing.T) {
	ta := newTestApp(t)
	ta.outbox.fails = true
	res, body := ta.do(t, http.MethodPost, "/api/bookings", bookingBody())
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, true, body["success"])
}

func TestBookingByUnknownID(t *testing.T) {
	ta := newTestApp(t)
	res, _ := ta.do(t, http.MethodGet, "/api/bookings/nope", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestBookingLookupByEmailNeedsAccess(t *testing.T) {
	ta := newTestApp(t)
	ta.do(t, http.MethodPost, "/api/bookings", bookingBody())

	res, _ := ta.do(t, http.MethodGet, "/api/bookings?email=a@b.com", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body := ta.do(t, http.MethodPost, "/api/verify-booking-access", map[string]string{"email": "a@b.com"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, true, body["success"])
	token := ta.outbox.code(t, "a@b.com")

	_, body = ta.do(t, http.MethodPost, "/api/verify-booking-token", map[string]string{"email": "a@b.com", "token": token})
	require.Equal(t, true, body["success"])
	grant := body["access_token"].(string)
	require.NotEmpty(t, grant)

	// the token is single use
	_, body = ta.do(t, http.MethodPost, "/api/verify-booking-token", map[string]string{"email": "a@b.com", "token": token})
	assert.Equal(t, false, body["success"])

	res, body = ta.do(t, http.MethodGet, "/api/bookings?email=a@b.com", nil, "Authorization", "Bearer "+grant)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, body["bookings"], 1)

	res, _ = ta.do(t, http.MethodGet, "/api/bookings?email=someone@else.com", nil, "Authorization", "Bearer "+grant)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestBookingAccessDeliveryFailure(t *testing.T) {
	ta := newTestApp(t)
	ta.outbox.fails = true
	res, body := ta.do(t, http.MethodPost, "/api/verify-booking-access", map[string]string{"email": "a@b.com"})
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, "Failed to send verification code", body["message"])
}

func TestContactHandler(t *testing.T) {
	ta := newTestApp(t)
	res, _ := ta.do(t, http.MethodPost, "/api/contact", map[string]string{"name": "Sam", "email": "sam@x.com", "message": "hello"})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, body := ta.do(t, http.MethodPost, "/api/contact", map[string]string{"name": "Sam"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "All fields are required", body["message"])
}

func TestUnknownEndpoint(t *testing.T) {
	ta := newTestApp(t)
	res, body := ta.do(t, http.MethodGet, "/api/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Endpoint not found", body["message"])
}

func TestCORS(t *testing.T) {
	ta := newTestApp(t)
	res, _ := ta.do(t, http.MethodOptions, "/api/send-otp", nil,
		"Origin", "http://localhost:3000", "Access-Control-Request-Method", "POST")
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, "http://localhost:3000", res.Header.Get("Access-Control-Allow-Origin"))

	res, _ = ta.do(t, http.MethodGet, "/health", nil, "Origin", "http://evil.test")
	assert.Empty(t, res.Header.Get("Access-Control-Allow-Origin"))
}
