package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boazcstrike/silayan-laundry/models"
	"github.com/boazcstrike/silayan-laundry/service"
)

func newCountController() (*CountController, *service.SessionManager) {
	catalog := models.DefaultCatalog()
	sessions := service.NewSessionManager(catalog)
	return NewCountController(sessions, catalog), sessions
}

// doJSON performs a request carrying a fixed session cookie so all
// calls in a test hit the same session
func doJSON(t *testing.T, handler http.HandlerFunc, method, url, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "test-session"})
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeCounts(t *testing.T, rec *httptest.ResponseRecorder) models.CountsResponse {
	t.Helper()
	var resp models.CountsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCountController_GetCatalog(t *testing.T) {
	ctrl, _ := newCountController()

	rec := doJSON(t, ctrl.GetCatalog, http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var catalog map[string][]models.CatalogItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	assert.Contains(t, catalog, "Tops")
	assert.Contains(t, catalog, "Linens")

	rec = doJSON(t, ctrl.GetCatalog, http.MethodPost, "/api/catalog", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCountController_UpdateCount(t *testing.T) {
	ctrl, _ := newCountController()

	rec := doJSON(t, ctrl.UpdateCount, http.MethodPost, "/api/counts/update", `{"name":"T-Shirt","delta":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCounts(t, rec)
	assert.Equal(t, 2, resp.Predefined["T-Shirt"])
	assert.Equal(t, string(service.StateIdle), resp.State)

	// Unknown predefined item is rejected
	rec = doJSON(t, ctrl.UpdateCount, http.MethodPost, "/api/counts/update", `{"name":"Tuxedo","delta":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCountController_SetCountSanitizesInput(t *testing.T) {
	ctrl, _ := newCountController()

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "whole value", body: `{"name":"Towel","value":5}`, want: 5},
		{name: "fraction truncates", body: `{"name":"Towel","value":5.7}`, want: 5},
		{name: "negative clamps", body: `{"name":"Towel","value":-5}`, want: 0},
		{name: "string coerces to zero", body: `{"name":"Towel","value":"lots"}`, want: 0},
		{name: "numeric string parses", body: `{"name":"Towel","value":"7"}`, want: 7},
		{name: "null coerces to zero", body: `{"name":"Towel","value":null}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, ctrl.SetCount, http.MethodPost, "/api/counts/set", tt.body)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, decodeCounts(t, rec).Predefined["Towel"])
		})
	}
}

func TestCountController_CustomItems(t *testing.T) {
	ctrl, _ := newCountController()

	rec := doJSON(t, ctrl.AddCustomItem, http.MethodPost, "/api/counts/custom", `{"name":"  Gown  "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCounts(t, rec)
	assert.Contains(t, resp.Custom, "Gown")

	rec = doJSON(t, ctrl.RemoveCustomItem, http.MethodDelete, "/api/counts/custom", `{"name":"Gown"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeCounts(t, rec)
	assert.NotContains(t, resp.Custom, "Gown")
}

func TestCountController_SessionsAreIsolated(t *testing.T) {
	ctrl, _ := newCountController()

	req := httptest.NewRequest(http.MethodPost, "/api/counts/update", strings.NewReader(`{"name":"Towel","delta":9}`))
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "session-a"})
	rec := httptest.NewRecorder()
	ctrl.UpdateCount(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/counts", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "session-b"})
	rec = httptest.NewRecorder()
	ctrl.GetCounts(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decodeCounts(t, rec).Predefined["Towel"])
}

func TestSessionID_SetsCookieOnFirstContact(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/counts", nil)
	rec := httptest.NewRecorder()

	id := sessionID(rec, req)
	assert.NotEmpty(t, id)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookieName, cookies[0].Name)
	assert.Equal(t, id, cookies[0].Value)
}
