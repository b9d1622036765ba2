package http

import (
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/event-registration/internal/api/http/handlers"
	"github.com/spec-kit/event-registration/internal/events"
	"github.com/spec-kit/event-registration/internal/form"
	"github.com/spec-kit/event-registration/internal/observability"
	"github.com/spec-kit/event-registration/internal/service"
	"github.com/spec-kit/event-registration/internal/session"
	"github.com/spec-kit/event-registration/internal/view"
)

const cookieName = "registration_session"

type client struct {
	t      *testing.T
	app    *fiber.App
	store  *session.MemoryStore
	cookie *nethttp.Cookie
}

func newClient(t *testing.T) *client {
	t.Helper()
	logger := zaptest.NewLogger(t)
	metrics := observability.NewMetrics()

	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	store := session.NewMemoryStore(time.Minute)
	registrations := service.NewRegistrationService(service.RegistrationDependencies{
		Store:      store,
		Dispatcher: events.NewInMemoryDispatcher(),
		Metrics:    metrics,
		Logger:     logger,
	})

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler("event-registration", "test", nil),
		Metrics: handlers.NewMetricsHandler(metrics),
		Registration: handlers.NewRegistrationHandler(registrations, renderer, handlers.SessionCookie{
			Name: cookieName,
			TTL:  time.Minute,
		}),
	})
	return &client{t: t, app: app, store: store}
}

func (cl *client) do(method, target string, form url.Values, accept string) *nethttp.Response {
	cl.t.Helper()
	if form == nil {
		return cl.send(method, target, "", "", accept)
	}
	return cl.send(method, target, "application/x-www-form-urlencoded", form.Encode(), accept)
}

func (cl *client) doJSON(target, body string) *nethttp.Response {
	cl.t.Helper()
	return cl.send(nethttp.MethodPost, target, "application/json", body, "application/json")
}

func (cl *client) send(method, target, contentType, body, accept string) *nethttp.Response {
	cl.t.Helper()
	var reader io.Reader
	if contentType != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if cl.cookie != nil {
		req.AddCookie(cl.cookie)
	}

	resp, err := cl.app.Test(req, -1)
	require.NoError(cl.t, err)
	for _, c := range resp.Cookies() {
		if c.Name == cookieName {
			cl.cookie = c
		}
	}
	return resp
}

func readBody(t *testing.T, resp *nethttp.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func decodeData[T any](t *testing.T, resp *nethttp.Response) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &envelope))
	return envelope.Data
}

func validForm() url.Values {
	return url.Values{
		"name":               {"Ann"},
		"email":              {"ann@example.com"},
		"age":                {"31"},
		"attendingWithGuest": {"No"},
	}
}

func TestRoot_RedirectsToForm(t *testing.T) {
	cl := newClient(t)

	resp := cl.do(nethttp.MethodGet, "/", nil, "")

	require.Equal(t, nethttp.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/register", resp.Header.Get("Location"))
}

func TestShow_RendersEmptyFormAndSetsCookie(t *testing.T) {
	cl := newClient(t)

	resp := cl.do(nethttp.MethodGet, "/register", nil, "")
	html := readBody(t, resp)

	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	require.NotNil(t, cl.cookie)
	require.True(t, session.ValidID(cl.cookie.Value))
	require.Contains(t, html, `<form id="registration"`)
	require.NotContains(t, html, `name="guestName"`)
	require.NotContains(t, html, form.MsgNameRequired)
}

func TestCheck_ReturnsBlurErrors(t *testing.T) {
	cl := newClient(t)

	resp := cl.do(nethttp.MethodPost, "/register/check", url.Values{"name": {"Ann"}, "email": {"nope"}}, "application/json")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	got := decodeData[struct {
		Errors       map[string]string `json:"errors"`
		GuestVisible bool              `json:"guestVisible"`
	}](t, resp)

	require.Equal(t, map[string]string{
		"email": form.MsgEmailInvalid,
		"age":   form.MsgAgeRequired,
	}, got.Errors)
	require.False(t, got.GuestVisible)

	html := readBody(t, cl.do(nethttp.MethodGet, "/register", nil, ""))
	require.Contains(t, html, form.MsgEmailInvalid, "blur errors stay with the session")
	require.Contains(t, html, `value="Ann"`)
}

func TestUpdateFields_TogglesGuestInput(t *testing.T) {
	cl := newClient(t)

	resp := cl.do(nethttp.MethodPost, "/register/fields", url.Values{"attendingWithGuest": {"Yes"}}, "application/json")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	got := decodeData[struct {
		GuestVisible bool `json:"guestVisible"`
	}](t, resp)
	require.True(t, got.GuestVisible)

	html := readBody(t, cl.do(nethttp.MethodGet, "/register", nil, ""))
	require.Contains(t, html, `name="guestName"`)
}

func TestUpdateFields_RejectsBadInput(t *testing.T) {
	cl := newClient(t)

	resp := cl.do(nethttp.MethodPost, "/register/fields", url.Values{"attendingWithGuest": {"Maybe"}}, "application/json")
	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	require.Contains(t, readBody(t, resp), "VALIDATION_FAILED")

	resp = cl.doJSON("/register/fields", `{"name": `)
	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	require.Contains(t, readBody(t, resp), "invalid payload")
}

func TestUpdateFields_IgnoresUnknownNames(t *testing.T) {
	cl := newClient(t)

	resp := cl.do(nethttp.MethodPost, "/register/fields", url.Values{"nickname": {"x"}, "name": {"Ann"}}, "application/json")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	got := decodeData[struct {
		Values map[string]string `json:"values"`
	}](t, resp)
	require.Equal(t, "Ann", got.Values["name"])
	require.NotContains(t, got.Values, "nickname")
}

func TestUpdateFields_JSONBodyTouchesOnlyPostedFields(t *testing.T) {
	cl := newClient(t)

	resp := cl.doJSON("/register/fields", `{"name": "Ann", "email": "ann@example.com"}`)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp = cl.doJSON("/register/fields", `{"email": ""}`)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	got := decodeData[struct {
		Values map[string]string `json:"values"`
	}](t, resp)
	require.Equal(t, "Ann", got.Values["name"])
	require.Equal(t, "", got.Values["email"])
}

func TestUpdateFields_PostedEmptyValueClearsField(t *testing.T) {
	cl := newClient(t)

	cl.do(nethttp.MethodPost, "/register/fields", url.Values{"name": {"Ann"}, "age": {"31"}}, "application/json")
	resp := cl.do(nethttp.MethodPost, "/register/fields", url.Values{"age": {""}}, "application/json")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	got := decodeData[struct {
		Values map[string]string `json:"values"`
	}](t, resp)
	require.Equal(t, "Ann", got.Values["name"])
	require.Equal(t, "", got.Values["age"])
}

func TestSession_ReusedAcrossRequests(t *testing.T) {
	cl := newClient(t)

	cl.do(nethttp.MethodGet, "/register", nil, "")
	require.NotNil(t, cl.cookie)
	first := cl.cookie.Value

	for _, name := range []string{"A", "An", "Ann"} {
		resp := cl.do(nethttp.MethodPost, "/register/check", url.Values{"name": {name}}, "application/json")
		require.Equal(t, nethttp.StatusOK, resp.StatusCode)
		require.Equal(t, first, cl.cookie.Value)
	}
	require.Equal(t, 1, cl.store.Len())

	snap, err := cl.store.Load(context.Background(), first)
	require.NoError(t, err)
	require.Equal(t, "Ann", snap.Values.Name)
}

func TestSubmit_InvalidRerendersForm(t *testing.T) {
	cl := newClient(t)
	values := validForm()
	values.Set("age", "abc")

	resp := cl.do(nethttp.MethodPost, "/register", values, "text/html")
	html := readBody(t, resp)

	require.Equal(t, nethttp.StatusUnprocessableEntity, resp.StatusCode)
	require.Contains(t, html, form.MsgAgeInvalid)
	require.NotContains(t, html, "Form Submission Summary")
}

func TestSubmit_ValidShowsSummary(t *testing.T) {
	cl := newClient(t)

	resp := cl.do(nethttp.MethodPost, "/register", validForm(), "text/html")
	require.Equal(t, nethttp.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/register", resp.Header.Get("Location"))

	html := readBody(t, cl.do(nethttp.MethodGet, "/register", nil, ""))
	require.Contains(t, html, "Form Submission Summary")
	require.Contains(t, html, "<strong>Name:</strong> Ann")
	require.Contains(t, html, "<strong>Attending with Guest:</strong> No")
	require.NotContains(t, html, "Guest Name:")
	require.NotContains(t, html, "<form")

	resp = cl.do(nethttp.MethodPost, "/register/fields", url.Values{"name": {"Zed"}}, "application/json")
	require.Equal(t, nethttp.StatusConflict, resp.StatusCode)
}

func TestSubmit_JSONClient(t *testing.T) {
	cl := newClient(t)
	values := validForm()
	values.Set("attendingWithGuest", "Yes")

	resp := cl.do(nethttp.MethodPost, "/register", values, "application/json")
	require.Equal(t, nethttp.StatusUnprocessableEntity, resp.StatusCode)
	got := decodeData[struct {
		Submitted bool              `json:"submitted"`
		Errors    map[string]string `json:"errors"`
	}](t, resp)
	require.False(t, got.Submitted)
	require.Equal(t, map[string]string{"guestName": form.MsgGuestNameRequired}, got.Errors)

	resp = cl.do(nethttp.MethodPost, "/register", url.Values{"guestName": {"Bea"}}, "application/json")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	got = decodeData[struct {
		Submitted bool              `json:"submitted"`
		Errors    map[string]string `json:"errors"`
	}](t, resp)
	require.True(t, got.Submitted)
	require.Empty(t, got.Errors)

	html := readBody(t, cl.do(nethttp.MethodGet, "/register", nil, ""))
	require.Contains(t, html, "<strong>Guest Name:</strong> Bea")
}

func TestHealthAndMetrics(t *testing.T) {
	cl := newClient(t)

	resp := cl.do(nethttp.MethodGet, "/health/ready", nil, "")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.Contains(t, readBody(t, resp), `"sessions":"memory"`)

	cl.do(nethttp.MethodPost, "/register/check", url.Values{}, "application/json")

	resp = cl.do(nethttp.MethodGet, "/metrics", nil, "")
	got := decodeData[observability.MetricsSnapshot](t, resp)
	require.Equal(t, int64(1), got.Checks)
	require.Equal(t, int64(1), got.FieldFailures["name"])
}

func TestUnknownRoute_ReturnsJSONError(t *testing.T) {
	cl := newClient(t)

	resp := cl.do(nethttp.MethodGet, "/nope", nil, "")

	require.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	require.Contains(t, readBody(t, resp), "NOT_FOUND")
}
