package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/financebi-api/internal/application/analytics"
	"github.com/jhoicas/financebi-api/internal/application/auth"
	"github.com/jhoicas/financebi-api/internal/application/clients"
	"github.com/jhoicas/financebi-api/internal/application/dto"
	"github.com/jhoicas/financebi-api/internal/application/importer"
	"github.com/jhoicas/financebi-api/internal/infrastructure/memory"
	"github.com/jhoicas/financebi-api/internal/infrastructure/mockdata"
	"github.com/jhoicas/financebi-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/financebi-api/internal/interfaces/http"
	"github.com/jhoicas/financebi-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testAPI struct {
	app      *fiber.App
	importUC *importer.UseCase
}

// newTestAPI arma la API completa sobre los adaptadores en memoria.
func newTestAPI(t *testing.T, importDelay time.Duration) *testAPI {
	t.Helper()
	repo := memory.NewClientRepository(mockdata.NewGenerator(42).Clients(mockdata.DefaultSize))

	sessionUC, err := auth.NewSessionUseCase(memory.NewSessionStore(),
		auth.Credentials{Username: testUsername, Password: "1234"},
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	require.NoError(t, err)

	importUC := importer.NewUseCase(repo, mockdata.NewSimulatedRefresher(7, 0.2),
		importer.Config{Delay: importDelay}, logger.Nop())

	app := fiber.New()
	app.Use(apphttp.Metrics())
	apphttp.Router(app, apphttp.RouterDeps{
		SessionUC:   sessionUC,
		DashboardUC: analytics.NewDashboardUseCase(repo),
		RankingUC:   analytics.NewRankingUseCase(repo, pdf.NewRankingReport("Finance BI")),
		ClientUC:    clients.NewClientUseCase(repo),
		ImportUC:    importUC,
		JWTSecret:   testJWTSecret,
	})
	return &testAPI{app: app, importUC: importUC}
}

func (a *testAPI) do(t *testing.T, req *http.Request, token string) *http.Response {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (a *testAPI) get(t *testing.T, path, token string) *http.Response {
	return a.do(t, httptest.NewRequest(http.MethodGet, path, nil), token)
}

func (a *testAPI) sendJSON(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return a.do(t, req, token)
}

func (a *testAPI) upload(t *testing.T, fileName, token string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte("nome,empresa\nAna,Tech\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return a.do(t, req, token)
}

func (a *testAPI) login(t *testing.T) string {
	t.Helper()
	resp := a.sendJSON(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: testUsername, Password: "1234"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Token
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_SinTokenRetorna401(t *testing.T) {
	api := newTestAPI(t, 0)
	resp := api.get(t, "/api/dashboard/summary", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_LoginInvalido(t *testing.T) {
	api := newTestAPI(t, 0)

	resp := api.sendJSON(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin", Password: "x"})
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", body.Code)

	resp = api.sendJSON(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_EstadoDeSesionYNavegacion(t *testing.T) {
	api := newTestAPI(t, 0)

	s := decode[dto.SessionDTO](t, api.get(t, "/api/session", ""))
	assert.False(t, s.Authenticated)

	token := api.login(t)

	resp := api.sendJSON(t, http.MethodPut, "/api/session/view", token, dto.NavigateRequest{View: "ranking"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	s = decode[dto.SessionDTO](t, resp)
	assert.Equal(t, "ranking", s.View)

	s = decode[dto.SessionDTO](t, api.get(t, "/api/session", ""))
	assert.True(t, s.Authenticated)
	assert.Equal(t, "ranking", s.View)

	resp = api.sendJSON(t, http.MethodPut, "/api/session/view", token, dto.NavigateRequest{View: "config"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_LogoutInvalidaElToken(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.login(t)

	resp := api.get(t, "/api/dashboard/summary", token)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(t, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), token)
	s := decode[dto.SessionDTO](t, resp)
	assert.False(t, s.Authenticated)
	assert.Equal(t, "dashboard", s.View)

	resp = api.get(t, "/api/dashboard/summary", token)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_REQUIRED", body.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard / clientes / ranking
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Dashboard(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.login(t)

	resp := api.get(t, "/api/dashboard/summary", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	s := decode[dto.DashboardSummaryDTO](t, resp)

	assert.Equal(t, 55, s.KPIs.TotalClients)
	assert.Equal(t, 14, s.KPIs.DelinquentClients)
	assert.True(t, strings.HasPrefix(s.KPIs.TotalOverdueFormatted, "R$ "))
	assert.Len(t, s.CriticalClients, 5)
}

func TestAPI_Clientes(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.login(t)

	list := decode[dto.ClientListResponse](t, api.get(t, "/api/clients?search=TECH&status=delinquent", token))
	assert.Equal(t, 7, list.Count)
	assert.Equal(t, "delinquent", list.Status)

	resp := api.get(t, "/api/clients?status=moroso", token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	c := decode[dto.ClientDTO](t, api.get(t, "/api/clients/cl-1", token))
	assert.Equal(t, "Ana Souza", c.Name)

	resp = api.get(t, "/api/clients/cl-999", token)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestAPI_Ranking(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.login(t)

	r := decode[dto.RankingResponseDTO](t, api.get(t, "/api/ranking", token))
	assert.Len(t, r.Podium, 3)
	assert.Equal(t, 14, r.Total)
	assert.Len(t, r.Others, 11)
	for i := 1; i < len(r.Podium); i++ {
		assert.True(t, r.Podium[i-1].Score.GreaterThanOrEqual(r.Podium[i].Score))
	}

	r = decode[dto.RankingResponseDTO](t, api.get(t, "/api/ranking?top=5", token))
	assert.Len(t, r.Podium, 5)

	resp := api.get(t, "/api/ranking?top=50", token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_RankingTopNoNumerico(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.login(t)

	for _, path := range []string{"/api/ranking?top=abc", "/api/ranking/report?top=3x"} {
		resp := api.get(t, path, token)
		body := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		assert.Equal(t, "VALIDATION", body.Code, path)
	}
}

func TestAPI_ReportePDF(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.login(t)

	resp := api.get(t, "/api/ranking/report", token)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "ranking-risco-")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_ImportFlujoCompleto(t *testing.T) {
	api := newTestAPI(t, 300*time.Millisecond)
	token := api.login(t)

	resp := api.upload(t, "carteira.pdf", token)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNSUPPORTED_FORMAT", body.Code)

	resp = api.upload(t, "Carteira.XLSX", token)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	job := decode[dto.ImportJobDTO](t, resp)
	assert.Equal(t, "processing", job.Status)

	resp = api.upload(t, "otra.csv", token)
	body = decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "IMPORT_IN_PROGRESS", body.Code)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := api.importUC.Await(ctx, job.ID)
	require.NoError(t, err)

	done := decode[dto.ImportJobDTO](t, api.get(t, "/api/import/"+job.ID, token))
	assert.Equal(t, "succeeded", done.Status)
	assert.Equal(t, 55, done.Processed)
	assert.Equal(t, 0, done.Errors)
	require.NotNil(t, done.CompletedAt)

	s := decode[dto.DashboardSummaryDTO](t, api.get(t, "/api/dashboard/summary", token))
	assert.Equal(t, 55, s.KPIs.TotalClients)
	assert.Equal(t, s.KPIs.TotalClients, s.KPIs.DelinquentClients+s.KPIs.CurrentClients)
}

func TestAPI_ImportSinArchivo(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.login(t)

	resp := api.do(t, httptest.NewRequest(http.MethodPost, "/api/import", nil), token)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_FILE", body.Code)

	resp = api.get(t, "/api/import/no-existe", token)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Métricas
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Metrics(t *testing.T) {
	api := newTestAPI(t, 0)
	_ = api.login(t)

	resp := api.get(t, "/metrics", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "http_requests_total")
	assert.Contains(t, string(body), `financebi_login_attempts_total{result="success"}`)
}

func TestAPI_MetricsEtiquetasEstablesEntreMetodos(t *testing.T) {
	api := newTestAPI(t, 0)
	token := api.login(t)

	for i := 0; i < 10; i++ {
		resp := api.sendJSON(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: testUsername, Password: "1234"})
		resp.Body.Close()
		resp = api.sendJSON(t, http.MethodPut, "/api/session/view", token, dto.NavigateRequest{View: "clients"})
		resp.Body.Close()
		resp = api.get(t, "/api/dashboard/summary", token)
		resp.Body.Close()
	}

	resp := api.get(t, "/metrics", "")
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	out := string(body)
	assert.Contains(t, out, `method="POST",path="/api/auth/login"`)
	assert.Contains(t, out, `method="PUT",path="/api/session/view"`)
	assert.Contains(t, out, `method="GET",path="/api/dashboard/summary"`)
	assert.NotContains(t, out, `method="GETT"`)
}
