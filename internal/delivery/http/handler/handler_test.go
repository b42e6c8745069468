package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"datatrail/internal/delivery/http/middleware"
	"datatrail/internal/delivery/http/response"
	"datatrail/internal/domain/healthcheck"
	"datatrail/internal/domain/lineage"
	"datatrail/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProducts struct {
	names []string
	err   error
}

func (s stubProducts) ListProducts(context.Context) ([]string, error) { return s.names, s.err }
func (s stubProducts) ListDependencies(context.Context, string) ([]lineage.Dependency, error) {
	return nil, s.err
}

type stubMapping struct {
	got usecase.MappingParams
	out usecase.MappingOutput
	err error
}

func (s *stubMapping) GetMapping(_ context.Context, p usecase.MappingParams) (usecase.MappingOutput, error) {
	s.got = p
	return s.out, s.err
}

type stubHealth struct {
	got usecase.HealthCheckParams
	out usecase.HealthCheckOutput
	err error
}

func (s *stubHealth) Check(_ context.Context, p usecase.HealthCheckParams) (usecase.HealthCheckOutput, error) {
	s.got = p
	return s.out, s.err
}

type stubInvalidator struct {
	product string
}

func (s *stubInvalidator) InvalidateProduct(_ context.Context, product string) error {
	s.product = product
	return nil
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func newTestApp(register func(app *fiber.App)) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	register(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func TestProductHandler_ListProducts(t *testing.T) {
	h := NewProductHandler(stubProducts{names: []string{"Activate", "Audience"}}, &stubMapping{})
	app := newTestApp(func(app *fiber.App) { h.RegisterRoutes(app.Group("/datatrail")) })

	status, body := doRequest(t, app, http.MethodGet, "/datatrail/list/products", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"products":[{"product_name":"Activate"},{"product_name":"Audience"}]}`, string(body))
}

func TestProductHandler_ListProducts_Error(t *testing.T) {
	h := NewProductHandler(stubProducts{err: usecase.ErrInternal}, &stubMapping{})
	app := newTestApp(func(app *fiber.App) { h.RegisterRoutes(app.Group("/datatrail")) })

	status, body := doRequest(t, app, http.MethodGet, "/datatrail/list/products", "")
	assert.Equal(t, http.StatusInternalServerError, status)

	var env response.SemanticResponse
	require.NoError(t, json.Unmarshal(body, &env))
	assert.Equal(t, http.StatusInternalServerError, env.Status)
	assert.Equal(t, response.MessageInternalServerError, env.Message)
}

func TestProductHandler_GetMapping(t *testing.T) {
	mapping := &stubMapping{out: usecase.MappingOutput{
		ProductName:  "Audience",
		Dependencies: []lineage.Dependency{{View: "b", Input: "a"}},
		Graph: lineage.Graph{
			Nodes: []lineage.Node{{ID: "b", Status: lineage.StatusHealthy}, {ID: "a", Status: lineage.StatusHealthy}},
			Edges: []lineage.GraphEdge{{ID: "e-a->b", Source: "a", Target: "b", Highlighted: true}},
		},
	}}
	h := NewProductHandler(stubProducts{}, mapping)
	app := newTestApp(func(app *fiber.App) { h.RegisterRoutes(app.Group("/datatrail")) })

	status, body := doRequest(t, app, http.MethodGet, "/datatrail/productMapping/Audience?startDate=2024-01-01&endDate=2024-01-02&selected=b", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, usecase.MappingParams{ProductName: "Audience", StartDate: "2024-01-01", EndDate: "2024-01-02", Selected: "b"}, mapping.got)

	var out struct {
		ProductName  string `json:"productName"`
		Dependencies []map[string]string
		Graph        lineage.Graph `json:"graph"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "Audience", out.ProductName)
	assert.Equal(t, []map[string]string{{"view": "b", "input": "a"}}, out.Dependencies)
	require.Len(t, out.Graph.Edges, 1)
	assert.True(t, out.Graph.Edges[0].Highlighted)
}

func TestHealthCheckHandler_Check(t *testing.T) {
	uc := &stubHealth{out: usecase.HealthCheckOutput{
		ProductName: "Audience",
		Report: healthcheck.Report{
			Results: []healthcheck.Result{
				{JobName: "a", Frequency: healthcheck.FrequencyDaily, ExpectedCount: 2, PresentCount: 1, MissingTimestamps: []string{"2024-01-02"}},
				{JobName: "b", Frequency: healthcheck.FrequencyHourly, MissingTimestamps: []string{}},
			},
			DroppedJobs:     1,
			DroppedJobNames: []string{"w"},
		},
	}}
	h := NewHealthCheckHandler(uc, nil)
	app := newTestApp(func(app *fiber.App) { h.RegisterRoutes(app.Group("/datatrail")) })

	status, body := doRequest(t, app, http.MethodPost, "/datatrail/healthCheck/Audience", `{"startDate":"2024-01-01","endDate":"2024-01-02"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Audience", uc.got.ProductName)
	assert.Equal(t, "2024-01-01", uc.got.StartDate)
	assert.Equal(t, "2024-01-02", uc.got.EndDate)

	assert.JSONEq(t, `{
		"productName":"Audience",
		"results":[
			{"jobName":"a","frequency":"daily","expectedCount":2,"presentCount":1,"missingTimestamps":["2024-01-02"]},
			{"jobName":"b","frequency":"hourly","expectedCount":0,"presentCount":0,"missingTimestamps":[]}
		],
		"droppedJobs":1,
		"droppedJobNames":["w"],
		"unhealthyJobs":1,
		"cached":false
	}`, string(body))
}

func TestHealthCheckHandler_Check_ValidatesBody(t *testing.T) {
	uc := &stubHealth{}
	h := NewHealthCheckHandler(uc, nil)
	app := newTestApp(func(app *fiber.App) { h.RegisterRoutes(app.Group("/datatrail")) })

	status, body := doRequest(t, app, http.MethodPost, "/datatrail/healthCheck/Audience", `{"startDate":"2024-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	var env struct {
		Status int                     `json:"status"`
		Data   []middleware.FieldError `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	assert.Equal(t, http.StatusBadRequest, env.Status)
	assert.Equal(t, []middleware.FieldError{{Field: "EndDate", Rule: "required"}}, env.Data)
	assert.Empty(t, uc.got.ProductName, "usecase must not run")

	status, _ = doRequest(t, app, http.MethodPost, "/datatrail/healthCheck/Audience", `{not json`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHealthCheckHandler_Check_MapsErrors(t *testing.T) {
	h := NewHealthCheckHandler(&stubHealth{err: errors.Join(usecase.ErrInternal, errors.New("db"))}, nil)
	app := newTestApp(func(app *fiber.App) { h.RegisterRoutes(app.Group("/datatrail")) })

	status, _ := doRequest(t, app, http.MethodPost, "/datatrail/healthCheck/Audience", `{"startDate":"a","endDate":"b"}`)
	assert.Equal(t, http.StatusInternalServerError, status)

	h = NewHealthCheckHandler(&stubHealth{err: usecase.ErrInvalidInput}, nil)
	app = newTestApp(func(app *fiber.App) { h.RegisterRoutes(app.Group("/datatrail")) })
	status, _ = doRequest(t, app, http.MethodPost, "/datatrail/healthCheck/Audience", `{"startDate":"a","endDate":"b"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

type emptyCatalog struct{}

func (emptyCatalog) ListProducts(context.Context) ([]string, error) { return nil, nil }
func (emptyCatalog) ListDependencies(context.Context, string) ([]lineage.Dependency, error) {
	return nil, nil
}
func (emptyCatalog) ListJobs(context.Context, string) ([]healthcheck.Job, error) { return nil, nil }

func TestHealthCheckHandler_Check_UnknownProductIsEmpty(t *testing.T) {
	uc := usecase.NewHealthCheckUsecase(emptyCatalog{}, healthcheck.MemorySource{}, nil, nil, nil, 0, nil)
	h := NewHealthCheckHandler(uc, nil)
	app := newTestApp(func(app *fiber.App) { h.RegisterRoutes(app.Group("/datatrail")) })

	status, body := doRequest(t, app, http.MethodPost, "/datatrail/healthCheck/Nope", `{"startDate":"2024-01-01","endDate":"2024-01-02"}`)
	require.Equal(t, http.StatusOK, status)

	var got struct {
		ProductName string            `json:"productName"`
		Results     []json.RawMessage `json:"results"`
		DroppedJobs int               `json:"droppedJobs"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Nope", got.ProductName)
	assert.Empty(t, got.Results)
	assert.Zero(t, got.DroppedJobs)
}

func TestHealthCheckHandler_Invalidate(t *testing.T) {
	inv := &stubInvalidator{}
	h := NewHealthCheckHandler(&stubHealth{}, inv)
	app := newTestApp(func(app *fiber.App) { h.RegisterRoutes(app.Group("/datatrail")) })

	status, _ := doRequest(t, app, http.MethodDelete, "/datatrail/healthCheck/Audience/cache", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Audience", inv.product)
}

func TestLineageHandler_Highlight(t *testing.T) {
	h := NewLineageHandler(usecase.NewHighlightUsecase(nil))
	app := newTestApp(func(app *fiber.App) { h.RegisterRoutes(app.Group("/datatrail")) })

	status, body := doRequest(t, app, http.MethodPost, "/datatrail/lineage/highlight",
		`{"edges":[{"source":"a","target":"b"},{"source":"b","target":"c"},{"source":"c","target":"d"}],"selected":"c"}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"edges":[
		{"source":"a","target":"b","highlighted":true},
		{"source":"b","target":"c","highlighted":true},
		{"source":"c","target":"d","highlighted":false}
	]}`, string(body))
}

func TestLineageHandler_Highlight_Validation(t *testing.T) {
	h := NewLineageHandler(usecase.NewHighlightUsecase(nil))
	app := newTestApp(func(app *fiber.App) { h.RegisterRoutes(app.Group("/datatrail")) })

	status, _ := doRequest(t, app, http.MethodPost, "/datatrail/lineage/highlight", `{"edges":[{"source":"a","target":"b"}]}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := doRequest(t, app, http.MethodPost, "/datatrail/lineage/highlight", `{"edges":[{"source":"","target":"b"}],"selected":"b"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "Edges[0].Source")
}

func TestHealthHandler(t *testing.T) {
	app := newTestApp(func(app *fiber.App) { NewHealthHandler(stubPinger{}, nil).RegisterRoutes(app) })
	status, body := doRequest(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":200,"message":"ok","data":{"database":"up","cache":"disabled"}}`, string(body))

	app = newTestApp(func(app *fiber.App) {
		NewHealthHandler(stubPinger{err: errors.New("down")}, stubPinger{}).RegisterRoutes(app)
	})
	status, _ = doRequest(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "datatrail_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	app := newTestApp(func(app *fiber.App) { NewMetricsHandler(reg).RegisterRoutes(app) })
	status, body := doRequest(t, app, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "datatrail_test_total 1")
}
