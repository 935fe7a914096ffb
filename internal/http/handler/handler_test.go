package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"movieflix/docs"
	"movieflix/internal/dto"
	"movieflix/internal/http/middleware"
	"movieflix/internal/model"
	"movieflix/internal/repository/repotest"
	"movieflix/internal/service"
	serviceMocks "movieflix/internal/service/mocks"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var res errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return res
}

func newCategoryApp(svc service.CategoryService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(middleware.RequestID())
	MountCategories(app.Group(BasePath), NewCategoryResource(svc, NewValidator(), zap.NewNop()))
	return app
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListCategories(t *testing.T) {
	mockSvc := new(serviceMocks.MockCatalogService[model.Category])
	app := newCategoryApp(mockSvc)

	t.Run("success", func(t *testing.T) {
		mockSvc.On("FindAll", mock.Anything).
			Return([]model.Category{{ID: 1, Name: "Action"}, {ID: 2, Name: "Drama"}}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/movieflix/category", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result []dto.CategoryResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, []dto.CategoryResponse{{ID: 1, Name: "Action"}, {ID: 2, Name: "Drama"}}, result)
	})

	t.Run("empty catalog is an empty array", func(t *testing.T) {
		mockSvc.On("FindAll", mock.Anything).Return([]model.Category{}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/movieflix/category", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `[]`, string(body))
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("FindAll", mock.Anything).Return(nil, errors.New("db down")).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/movieflix/category", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		res := decodeError(t, resp)
		assert.Equal(t, "INTERNAL_ERROR", res.Error.Code)
		assert.NotContains(t, res.Error.Message, "db down")
		assert.NotEmpty(t, res.RequestID)
	})

	mockSvc.AssertExpectations(t)
}

func TestCreateCategory(t *testing.T) {
	mockSvc := new(serviceMocks.MockCatalogService[model.Category])
	app := newCategoryApp(mockSvc)

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Save", mock.Anything, model.Category{Name: "Action"}).
			Return(&model.Category{ID: 10, Name: "Action"}, nil).Once()

		resp, err := app.Test(jsonRequest(http.MethodPost, "/movieflix/category", `{"name":"Action"}`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var result dto.CategoryResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, dto.CategoryResponse{ID: 10, Name: "Action"}, result)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/movieflix/category", `{"name":`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Error.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/movieflix/category", `{}`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		res := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_FAILED", res.Error.Code)
		assert.Equal(t, "name is required", res.Error.Message)
	})

	t.Run("name too long", func(t *testing.T) {
		body := `{"name":"` + strings.Repeat("a", 101) + `"}`
		resp, err := app.Test(jsonRequest(http.MethodPost, "/movieflix/category", body))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "name must be at most 100 characters", decodeError(t, resp).Error.Message)
	})

	t.Run("service rejects name", func(t *testing.T) {
		mockSvc.On("Save", mock.Anything, model.Category{Name: "  "}).
			Return(nil, service.ErrInvalidName).Once()

		resp, err := app.Test(jsonRequest(http.MethodPost, "/movieflix/category", `{"name":"  "}`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_FAILED", decodeError(t, resp).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Save", mock.Anything, model.Category{Name: "Drama"}).
			Return(nil, errors.New("insert failed")).Once()

		resp, err := app.Test(jsonRequest(http.MethodPost, "/movieflix/category", `{"name":"Drama"}`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

func TestGetCategory(t *testing.T) {
	mockSvc := new(serviceMocks.MockCatalogService[model.Category])
	app := newCategoryApp(mockSvc)

	t.Run("success", func(t *testing.T) {
		mockSvc.On("FindByID", mock.Anything, int64(3)).Return(&model.Category{ID: 3, Name: "Comedy"}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/movieflix/category/3", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result dto.CategoryResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, "Comedy", result.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("FindByID", mock.Anything, int64(9999)).
			Return(nil, errors.Join(errors.New("category 9999"), service.ErrNotFound)).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/movieflix/category/9999", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		res := decodeError(t, resp)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		assert.Equal(t, "category not found", res.Error.Message)
	})

	t.Run("invalid id", func(t *testing.T) {
		for _, id := range []string{"abc", "0", "-4", "99999999999999999999"} {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/movieflix/category/"+id, nil))
			require.NoError(t, err)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, id)
			assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code, id)
		}
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("FindByID", mock.Anything, int64(5)).Return(nil, errors.New("db error")).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/movieflix/category/5", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

func TestDeleteCategory(t *testing.T) {
	mockSvc := new(serviceMocks.MockCatalogService[model.Category])
	app := newCategoryApp(mockSvc)

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(1)).Return(nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/movieflix/category/1", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("missing target is 404", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(9999)).Return(service.ErrNotFound).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/movieflix/category/9999", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/movieflix/category/x", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(2)).Return(errors.New("delete error")).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/movieflix/category/2", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

func TestStreamingLifecycle(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	RegisterRoutes(app, nil, zap.NewNop(),
		service.NewCategoryService(repotest.NewMemory[model.Category]()),
		service.NewStreamingService(repotest.NewMemory[model.Streaming]()),
	)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/movieflix/streaming", `{"name":"Netflix"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.StreamingResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Positive(t, created.ID)
	assert.Equal(t, "Netflix", created.Name)

	path := "/movieflix/streaming/" + strconv.FormatInt(created.ID, 10)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched dto.StreamingResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	assert.Equal(t, created, fetched)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/movieflix/streaming", nil))
	require.NoError(t, err)
	var all []dto.StreamingResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	assert.Len(t, all, 1)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, path, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/movieflix/streaming/9999", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Resources are independent: the category catalog is still empty.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/movieflix/category", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `[]`, string(body))
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/escaped/not-found", func(c *fiber.Ctx) error {
		return service.ErrNotFound
	})
	app.Get("/escaped/bad-name", func(c *fiber.Ctx) error {
		return service.ErrInvalidName
	})
	app.Get("/escaped/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	cases := map[string]struct {
		status int
		code   string
	}{
		"/escaped/not-found": {http.StatusNotFound, "NOT_FOUND"},
		"/escaped/bad-name":  {http.StatusBadRequest, "VALIDATION_FAILED"},
		"/escaped/boom":      {http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for path, want := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)

		assert.Equal(t, want.status, resp.StatusCode, path)
		assert.Equal(t, want.code, decodeError(t, resp).Error.Code, path)
	}
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	RegisterRoutes(app, nil, zap.NewNop(),
		new(serviceMocks.MockCatalogService[model.Category]),
		new(serviceMocks.MockCatalogService[model.Streaming]),
	)

	t.Run("not found route", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/non-existent", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// No update endpoint exists.
		resp, err := app.Test(jsonRequest(http.MethodPut, "/movieflix/category/1", `{"name":"x"}`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})
}

func TestRegisterMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "catalog_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	app := fiber.New()
	RegisterMetrics(app, reg)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "catalog_test_total 1")
}

func TestValidationMessage_NonValidationError(t *testing.T) {
	assert.Equal(t, "invalid request body", validationMessage(sql.ErrNoRows))
}

func TestCatalogRoutesDocumented(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, nil, zap.NewNop(),
		new(serviceMocks.MockCatalogService[model.Category]),
		new(serviceMocks.MockCatalogService[model.Streaming]),
	)

	var spec struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &spec))

	catalog := 0
	for _, r := range app.GetRoutes(true) {
		if r.Method == http.MethodHead || !strings.HasPrefix(r.Path, BasePath) {
			continue
		}
		catalog++

		path := strings.ReplaceAll(r.Path, ":id", "{id}")
		ops, ok := spec.Paths[path]
		if assert.True(t, ok, "path %s missing from swagger doc", path) {
			assert.Contains(t, ops, strings.ToLower(r.Method), "%s %s missing from swagger doc", r.Method, path)
		}
	}
	assert.Equal(t, 8, catalog)
}
