package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cmtegi-hash/square-foot-calculator-clean/internal/repository"
	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	sessions := repository.NewSessionRepository(model.DefaultFloors, time.Hour, zap.NewNop())
	return NewRouter(sessions, model.DefaultFloors, "https://app.example.com", zap.NewNop())
}

func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) sessionView {
	t.Helper()
	var v sessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func newSession(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	v := decodeView(t, rec)
	require.NotEmpty(t, v.SessionID)
	assert.Equal(t, "Basement", v.State.ActiveFloor)
	return v.SessionID
}

func TestHealthAndFloors(t *testing.T) {
	h := newTestRouter()

	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/floors", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"floors":["Basement","Floor 1","Floor 2","Floor 3"]}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	h := newTestRouter()

	rec := do(t, h, http.MethodOptions, "/api/sessions", "", "Origin", "https://app.example.com")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))

	rec = do(t, h, http.MethodGet, "/api/floors", "", "Origin", "https://evil.example.net")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, h, http.MethodOptions, "/api/sessions", "")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	public := NewRouter(repository.NewSessionRepository(model.DefaultFloors, time.Hour, zap.NewNop()), model.DefaultFloors, "", zap.NewNop())
	rec = do(t, public, http.MethodGet, "/api/floors", "", "Origin", "https://evil.example.net")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Vary"))
}

func TestAllowOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{name: "nothing configured", allowed: nil, origin: "https://a.example.com", want: "*"},
		{name: "wildcard entry", allowed: []string{"https://a.example.com", "*"}, origin: "https://b.example.com", want: "*"},
		{name: "listed origin", allowed: []string{"https://a.example.com", "https://b.example.com"}, origin: "https://b.example.com", want: "https://b.example.com"},
		{name: "unlisted origin", allowed: []string{"https://a.example.com"}, origin: "https://b.example.com", want: ""},
		{name: "no origin header", allowed: []string{"https://a.example.com"}, origin: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, allowOrigin(tt.allowed, tt.origin))
		})
	}
}

func TestEtagMatches(t *testing.T) {
	const etag = `"abc123"`
	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{name: "exact", header: `"abc123"`, want: true},
		{name: "weak", header: `W/"abc123"`, want: true},
		{name: "list", header: `"old", "abc123"`, want: true},
		{name: "list without spaces", header: `"old","abc123"`, want: true},
		{name: "any", header: "*", want: true},
		{name: "different", header: `"old"`, want: false},
		{name: "empty", header: "", want: false},
		{name: "unquoted", header: "abc123", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, etagMatches(tt.header, etag))
		})
	}
}

func TestSummaryConditionalGet(t *testing.T) {
	h := newTestRouter()
	base := "/api/sessions/" + newSession(t, h)

	rec := do(t, h, http.MethodGet, base+"/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	for _, header := range []string{`"stale", ` + etag, "W/" + etag, "*"} {
		rec = do(t, h, http.MethodGet, base+"/summary", "", "If-None-Match", header)
		assert.Equal(t, http.StatusNotModified, rec.Code, header)
		assert.Equal(t, etag, rec.Header().Get("ETag"))
	}

	rec = do(t, h, http.MethodGet, base+"/summary", "", "If-None-Match", `"stale"`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Total Area: 0 ft²\nTotal Steps: 0", rec.Body.String())
}

func TestCalculateStateless(t *testing.T) {
	h := newTestRouter()

	body := `{"rooms":[{"name":"Kitchen","floor":"Floor 1","width":10,"length":"12"}],
	          "stairs":[{"from":"Floor 1","to":"Floor 2","steps":14,"hasLanding":true,"landingWidth":3,"landingLength":4}]}`
	rec := do(t, h, http.MethodPost, "/api/calculate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report model.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 132, report.GrandTotalArea)
	assert.Equal(t, 14, report.StairsStepsTotal)
	assert.Contains(t, report.Summary, "Kitchen: 120 ft²")
	assert.Contains(t, report.Summary, "Floor 1 → Floor 2: 14 steps, landing 12 ft²")

	rec = do(t, h, http.MethodPost, "/api/calculate", `{"rooms":[{"name":"","floor":"Floor 1","width":1,"length":1}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "room name cannot be empty")
}

func TestSessionRoomFlow(t *testing.T) {
	h := newTestRouter()
	id := newSession(t, h)
	base := "/api/sessions/" + id

	rec := do(t, h, http.MethodPut, base+"/active-floor", `{"floor":"Floor 1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, base+"/rooms", `{"name":"Kitchen","width":"10","length":"12"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	v := decodeView(t, rec)
	require.Len(t, v.State.Rooms, 1)
	assert.Equal(t, "Floor 1", v.State.Rooms[0].Floor)
	assert.True(t, v.State.Rooms[0].Include)
	assert.Equal(t, 120, v.Report.GrandTotalArea)

	rec = do(t, h, http.MethodPost, base+"/rooms", `{"name":"Garage","width":20,"length":20,"include":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	v = decodeView(t, rec)
	require.Len(t, v.State.Rooms, 2)
	assert.Equal(t, 120, v.Report.GrandTotalArea)
	garage := v.State.Rooms[1].ID

	rec = do(t, h, http.MethodPatch, base+"/rooms/"+garage, `{"include":true,"width":"10"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	v = decodeView(t, rec)
	assert.Equal(t, 320, v.Report.GrandTotalArea)

	rec = do(t, h, http.MethodPatch, base+"/rooms/"+garage, `{"include":false}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, base+"/rooms/remove-excluded", "")
	require.Equal(t, http.StatusOK, rec.Code)
	v = decodeView(t, rec)
	require.Len(t, v.State.Rooms, 1)
	assert.Equal(t, "Kitchen", v.State.Rooms[0].Name)

	rec = do(t, h, http.MethodDelete, base+"/rooms/"+v.State.Rooms[0].ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeView(t, rec).State.Rooms)
}

func TestSessionStairFlowAndSummary(t *testing.T) {
	h := newTestRouter()
	id := newSession(t, h)
	base := "/api/sessions/" + id

	rec := do(t, h, http.MethodPost, base+"/stairs", `{"from":"Floor 1","to":"Floor 2","steps":"14","hasLanding":true,"landingWidth":"3","landingLength":"4"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	v := decodeView(t, rec)
	require.Len(t, v.State.Stairs, 1)
	stairID := v.State.Stairs[0].ID

	rec = do(t, h, http.MethodGet, base+"/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, textContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, "Total Area: 12 ft²\nTotal Steps: 14\n\nStairs:\nFloor 1 → Floor 2: 14 steps, landing 12 ft²\n\nTotal landing area: 12 ft²", rec.Body.String())
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	rec = do(t, h, http.MethodGet, base+"/summary", "", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, rec.Code)

	rec = do(t, h, http.MethodPatch, base+"/stairs/"+stairID, `{"steps":15}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, base+"/summary", "", "If-None-Match", etag)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Total Steps: 15")

	rec = do(t, h, http.MethodDelete, base+"/stairs/"+stairID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeView(t, rec).State.Stairs)
}

func TestValidationErrors(t *testing.T) {
	h := newTestRouter()
	id := newSession(t, h)
	base := "/api/sessions/" + id

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		msg    string
	}{
		{name: "empty name", method: http.MethodPost, path: base + "/rooms", body: `{"name":"  ","width":1,"length":1}`, status: http.StatusBadRequest, msg: "room name cannot be empty"},
		{name: "bad width", method: http.MethodPost, path: base + "/rooms", body: `{"name":"Den","width":"wide","length":1}`, status: http.StatusBadRequest, msg: "width and length must be numbers"},
		{name: "bad steps", method: http.MethodPost, path: base + "/stairs", body: `{"from":"Floor 1","to":"Floor 2","steps":"a lot"}`, status: http.StatusBadRequest, msg: "steps must be integer"},
		{name: "unknown floor", method: http.MethodPut, path: base + "/active-floor", body: `{"floor":"Roof"}`, status: http.StatusBadRequest, msg: "unknown floor"},
		{name: "malformed json", method: http.MethodPost, path: base + "/rooms", body: `{"name":`, status: http.StatusBadRequest, msg: "invalid body"},
		{name: "missing row", method: http.MethodDelete, path: base + "/rooms/nope", status: http.StatusNotFound, msg: "row not found"},
		{name: "missing session", method: http.MethodGet, path: "/api/sessions/nope", status: http.StatusNotFound, msg: "session not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.msg)
		})
	}
}

func TestExports(t *testing.T) {
	h := newTestRouter()
	id := newSession(t, h)
	base := "/api/sessions/" + id

	rec := do(t, h, http.MethodPost, base+"/rooms", `{"name":"Kitchen","floor":"Floor 1","width":10,"length":12}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, base+"/export.csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "room,Floor 1,Kitchen,120")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "area-summary.csv")

	rec = do(t, h, http.MethodGet, base+"/export.xlsx", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestDeleteSession(t *testing.T) {
	h := newTestRouter()
	id := newSession(t, h)

	rec := do(t, h, http.MethodDelete, "/api/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/sessions/"+id+"/summary", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
