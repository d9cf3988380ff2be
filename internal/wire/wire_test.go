package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"home-services/cmd"
	"home-services/internal/data/entity"
	"home-services/internal/data/repository"
	"home-services/pkg/notify"
	"home-services/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type testApp struct {
	t       *testing.T
	server  *httptest.Server
	repo    *repository.Repository
	config  *utils.Config
	mu      sync.Mutex
	sent    []notify.Message
	failing bool
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	config := &utils.Config{
		App:    utils.AppConfig{Name: "home-services", Timezone: time.UTC, FrontendOrigin: "http://localhost:5173"},
		JWT:    utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		Notify: utils.NotifyConfig{Timeout: time.Second},
		Upload: utils.UploadConfig{Dir: t.TempDir(), MaxBytes: 1 << 20},
		Seed: utils.SeedConfig{
			AdminEmail: "admin@example.com", AdminPassword: "admin123",
			UserEmail: "user@example.com", UserPassword: "user123",
		},
	}

	ta := &testApp{t: t, repo: repository.NewMemoryRepository(), config: config}
	require.NoError(t, cmd.Seed(context.Background(), ta.repo, config.Seed, zap.NewNop()))

	stub := notify.NotifierFunc(func(ctx context.Context, msg notify.Message) error {
		ta.mu.Lock()
		defer ta.mu.Unlock()
		ta.sent = append(ta.sent, msg)
		if ta.failing {
			return assert.AnError
		}
		return nil
	})

	app, err := Wiring(ta.repo, config, zap.NewNop(), WithNotifier(stub))
	require.NoError(t, err)

	ta.server = httptest.NewServer(app.Router)
	t.Cleanup(ta.server.Close)
	return ta
}

func (ta *testApp) do(method, path, token string, body any) (int, envelope) {
	ta.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(ta.t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ta.server.URL+path, reader)
	require.NoError(ta.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return ta.send(req)
}

func (ta *testApp) send(req *http.Request) (int, envelope) {
	ta.t.Helper()

	res, err := http.DefaultClient.Do(req)
	require.NoError(ta.t, err)
	defer res.Body.Close()

	var env envelope
	require.NoError(ta.t, json.NewDecoder(res.Body).Decode(&env))
	return res.StatusCode, env
}

func (ta *testApp) login(email, password string) string {
	ta.t.Helper()
	code, env := ta.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(ta.t, http.StatusOK, code, env.Message)

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(ta.t, json.Unmarshal(env.Data, &auth))
	return auth.Token
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type bookingJSON struct {
	ID      string  `json:"id"`
	Status  string  `json:"status"`
	Price   float64 `json:"price"`
	Service *struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"service"`
	Customer *struct {
		ID string `json:"id"`
	} `json:"customer"`
}

func TestHealth(t *testing.T) {
	ta := newTestApp(t)

	code, env := ta.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)

	health := decode[struct {
		OK bool  `json:"ok"`
		TS int64 `json:"ts"`
	}](t, env.Data)
	assert.True(t, health.OK)
	assert.Positive(t, health.TS)

	res, err := http.Get(ta.server.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), `homeservices_http_requests_total{method="GET",route="/api/health",status="200"}`)
}

func TestGuestBookingFlow(t *testing.T) {
	ta := newTestApp(t)

	code, env := ta.do(http.MethodPost, "/api/bookings", "", map[string]any{
		"service":     "gas1",
		"scheduledAt": "2025-01-01T10:00:00Z",
		"guest":       map[string]string{"name": "Ravi", "email": "ravi@example.com"},
	})
	require.Equal(t, http.StatusCreated, code, env.Message)

	booking := decode[bookingJSON](t, env.Data)
	assert.Equal(t, "pending", booking.Status)
	assert.Equal(t, 2499.0, booking.Price)
	require.NotNil(t, booking.Service)
	assert.Equal(t, "AC gas refill", booking.Service.Title)
	assert.Nil(t, booking.Customer)

	ta.mu.Lock()
	require.Len(t, ta.sent, 1)
	assert.Equal(t, "ravi@example.com", ta.sent[0].Email)
	ta.mu.Unlock()

	// admin moves it along
	admin := ta.login("admin@example.com", "admin123")
	code, env = ta.do(http.MethodPatch, "/api/admin/bookings/"+booking.ID+"/status", admin, map[string]string{"status": "scheduled"})
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, "confirmed", decode[bookingJSON](t, env.Data).Status)

	code, _ = ta.do(http.MethodPatch, "/api/admin/bookings/"+booking.ID+"/status", admin, map[string]string{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = ta.do(http.MethodPatch, "/api/admin/bookings/"+utils.NewObjectID()+"/status", admin, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusNotFound, code)

	code, env = ta.do(http.MethodGet, "/api/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, code)
	stats := decode[struct {
		BookingsCount    int64            `json:"bookingsCount"`
		BookingsByStatus map[string]int64 `json:"bookingsByStatus"`
	}](t, env.Data)
	assert.EqualValues(t, 1, stats.BookingsCount)
	assert.Equal(t, map[string]int64{"confirmed": 1}, stats.BookingsByStatus)
}

func TestBookingErrors(t *testing.T) {
	ta := newTestApp(t)

	code, _ := ta.do(http.MethodPost, "/api/bookings", "", map[string]any{"scheduledAt": "2025-01-01"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = ta.do(http.MethodPost, "/api/bookings", "", map[string]any{
		"service": "nope", "date": "2025-01-01",
		"guest": map[string]string{"name": "R", "email": "r@example.com"},
	})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = ta.do(http.MethodPost, "/api/bookings", "not-a-token", map[string]any{
		"service": "gas1", "date": "2025-01-01",
		"guest": map[string]string{"name": "R", "email": "r@example.com"},
	})
	assert.Equal(t, http.StatusUnauthorized, code)

	req, err := http.NewRequest(http.MethodPost, ta.server.URL+"/api/bookings", strings.NewReader("{"))
	require.NoError(t, err)
	code, _ = ta.send(req)
	assert.Equal(t, http.StatusBadRequest, code)

	n, err := ta.repo.Booking.CountAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFailingNotifierStillBooks(t *testing.T) {
	ta := newTestApp(t)
	ta.failing = true

	user := ta.login("user@example.com", "user123")
	code, env := ta.do(http.MethodPost, "/api/bookings", user, map[string]any{
		"service": "el1", "scheduledAt": "2025-01-01T10:00",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)

	booking := decode[bookingJSON](t, env.Data)
	require.NotNil(t, booking.Customer)

	code, env = ta.do(http.MethodGet, "/api/user/bookings", user, nil)
	require.Equal(t, http.StatusOK, code)
	page := decode[struct {
		Data []bookingJSON `json:"data"`
	}](t, env.Data)
	require.Len(t, page.Data, 1)
	assert.Equal(t, booking.ID, page.Data[0].ID)
}

func TestRegisterAndProfile(t *testing.T) {
	ta := newTestApp(t)

	code, env := ta.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)

	code, _ = ta.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Asha", "email": "ASHA@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, code)

	token := ta.login("asha@example.com", "secret123")
	code, env = ta.do(http.MethodGet, "/api/user/profile", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "asha@example.com", decode[struct {
		Email string `json:"email"`
	}](t, env.Data).Email)
	assert.NotContains(t, string(env.Data), "password")

	// customers stay out of the admin surface
	code, _ = ta.do(http.MethodGet, "/api/admin/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = ta.do(http.MethodGet, "/api/admin/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestPublicCatalog(t *testing.T) {
	ta := newTestApp(t)

	code, env := ta.do(http.MethodGet, "/api/services?category=AC", "", nil)
	require.Equal(t, http.StatusOK, code)
	services := decode[[]struct {
		ID       string `json:"id"`
		Slug     string `json:"slug"`
		Category string `json:"category"`
	}](t, env.Data)
	require.NotEmpty(t, services)
	for _, s := range services {
		assert.Equal(t, "AC", s.Category)
	}

	code, _ = ta.do(http.MethodGet, "/api/services/"+strings.ToUpper(services[0].ID), "", nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = ta.do(http.MethodGet, "/api/services/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAdminServiceCRUDWithUpload(t *testing.T) {
	ta := newTestApp(t)
	admin := ta.login("admin@example.com", "admin123")

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("title", "Fan Installation"))
	require.NoError(t, form.WriteField("price", "349"))
	require.NoError(t, form.WriteField("durationMins", "30"))
	part, err := form.CreateFormFile("image", "fan.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req, err := http.NewRequest(http.MethodPost, ta.server.URL+"/api/admin/services", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+admin)

	code, env := ta.send(req)
	require.Equal(t, http.StatusCreated, code, env.Message)

	created := decode[struct {
		ID        string  `json:"id"`
		Slug      string  `json:"slug"`
		BasePrice float64 `json:"basePrice"`
		ImageURL  string  `json:"imageUrl"`
	}](t, env.Data)
	assert.Equal(t, "fan-installation", created.Slug)
	assert.Equal(t, 349.0, created.BasePrice)
	require.True(t, strings.HasPrefix(created.ImageURL, "/uploads/"))

	res, err := http.Get(ta.server.URL + created.ImageURL)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	for _, dir := range []string{"/uploads/", "/api/uploads/"} {
		res, err := http.Get(ta.server.URL + dir)
		require.NoError(t, err)
		listing, _ := io.ReadAll(res.Body)
		res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode, dir)
		assert.NotContains(t, string(listing), strings.TrimPrefix(created.ImageURL, "/uploads/"), dir)
	}

	code, env = ta.do(http.MethodPut, "/api/admin/services/"+created.ID, admin, map[string]any{"basePrice": 399})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, _ = ta.do(http.MethodDelete, "/api/admin/services/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = ta.do(http.MethodGet, "/api/services/fan-installation", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAdminUsers(t *testing.T) {
	ta := newTestApp(t)
	admin := ta.login("admin@example.com", "admin123")

	customer, err := ta.repo.User.FindByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	require.NotNil(t, customer)

	code, env := ta.do(http.MethodPatch, "/api/admin/users/"+customer.ID, admin, map[string]any{"blocked": true})
	require.Equal(t, http.StatusOK, code, env.Message)

	// blocked accounts can no longer log in
	code, _ = ta.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "user@example.com", "password": "user123"})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = ta.do(http.MethodGet, "/api/admin/users?perPage=1", admin, nil)
	require.Equal(t, http.StatusOK, code)
	page := decode[struct {
		Data       []map[string]any `json:"data"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}](t, env.Data)
	assert.Len(t, page.Data, 1)
	assert.EqualValues(t, 2, page.Pagination.Total)

	stored, err := ta.repo.User.FindByID(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, stored.Role)
}

func TestPageFarPastTheEnd(t *testing.T) {
	ta := newTestApp(t)
	user := ta.login("user@example.com", "user123")
	admin := ta.login("admin@example.com", "admin123")

	cases := []struct {
		path  string
		token string
	}{
		{"/api/user/bookings?page=922337203685477581", user},
		{"/api/admin/bookings?page=922337203685477581&perPage=100", admin},
		{"/api/admin/users?page=922337203685477581", admin},
	}
	for _, tc := range cases {
		code, env := ta.do(http.MethodGet, tc.path, tc.token, nil)
		require.Equal(t, http.StatusOK, code, "%s: %s", tc.path, env.Message)
		page := decode[struct {
			Data []json.RawMessage `json:"data"`
		}](t, env.Data)
		assert.Empty(t, page.Data, tc.path)
	}
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	ta := newTestApp(t)

	code, env := ta.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Long", "email": "long@example.com", "password": strings.Repeat("a", 80),
	})
	assert.Equal(t, http.StatusBadRequest, code, env.Message)
}
