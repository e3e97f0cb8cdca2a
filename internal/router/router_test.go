package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"krishi-sakhi-backend/internal/content"
	"krishi-sakhi-backend/internal/handlers"
	"krishi-sakhi-backend/internal/middleware"
	"krishi-sakhi-backend/internal/models"
	"krishi-sakhi-backend/internal/resolver"
	"krishi-sakhi-backend/internal/session"
	"krishi-sakhi-backend/internal/weather"
	"krishi-sakhi-backend/internal/websocket"
	logx "krishi-sakhi-backend/pkg/logger"
)

func init() {
	logx.Disable()
}

const frontendURL = "http://localhost:5173"

func setupRouter(t *testing.T, submitLimit int) http.Handler {
	t.Helper()
	store := content.NewStore()
	hub := websocket.NewHub(nil, nil, frontendURL)
	sessions := session.NewManager(store, resolver.New(store),
		session.WithSessionResponseDelay(10*time.Millisecond),
		session.WithPublisher(hub),
	)
	hub.SetSessions(sessions)
	poller := weather.NewPoller(weather.NewClient("", "", "Delhi", nil))
	limiter := middleware.NewRateLimiter(submitLimit, time.Minute)

	t.Cleanup(func() {
		limiter.Stop()
		sessions.Stop()
		hub.Close()
	})

	return New(
		handlers.NewSessionHandler(sessions, content.Hindi),
		handlers.NewContentHandler(store, content.Hindi),
		handlers.NewWeatherHandler(poller),
		limiter,
		hub.HandleWebSocket,
		frontendURL,
	)
}

func send(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "192.0.2.1:1234"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	h := setupRouter(t, 10)

	rr := send(t, h, http.MethodGet, "/health", nil)
	if rr.Code != http.StatusOK || rr.Body.String() != `{"status":"ok"}` {
		t.Fatalf("unexpected health response %d %q", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}

func TestRoutesAreMounted(t *testing.T) {
	h := setupRouter(t, 10)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/v1/content?lang=en", http.StatusOK},
		{http.MethodGet, "/api/v1/suppliers", http.StatusOK},
		{http.MethodGet, "/api/v1/weather", http.StatusOK},
		{http.MethodPost, "/api/v1/sessions", http.StatusCreated},
		{http.MethodGet, "/api/v1/ws?session_id=bad", http.StatusBadRequest},
		{http.MethodGet, "/api/v1/unknown", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			if rr := send(t, h, tc.method, tc.path, nil); rr.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rr.Code)
			}
		})
	}
}

func TestWeatherBeforeFirstPollIsLoading(t *testing.T) {
	h := setupRouter(t, 10)

	var snap models.WeatherSnapshot
	json.NewDecoder(send(t, h, http.MethodGet, "/api/v1/weather", nil).Body).Decode(&snap)
	if !snap.Loading {
		t.Fatalf("expected loading snapshot, got %+v", snap)
	}
}

func TestSubmitIsRateLimited(t *testing.T) {
	h := setupRouter(t, 2)

	var view models.SessionView
	json.NewDecoder(send(t, h, http.MethodPost, "/api/v1/sessions", nil).Body).Decode(&view)
	path := "/api/v1/sessions/" + view.ID.String() + "/messages"

	for i := 0; i < 2; i++ {
		if rr := send(t, h, http.MethodPost, path, models.SubmitRequest{Text: ""}); rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rr.Code)
		}
	}

	if rr := send(t, h, http.MethodPost, path, models.SubmitRequest{Text: "pest"}); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}

	// Other session routes are not limited.
	if rr := send(t, h, http.MethodGet, "/api/v1/sessions/"+view.ID.String(), nil); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}
