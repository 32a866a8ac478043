package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"investor-portal/internal/repository/memory"
	"investor-portal/internal/service"
	"investor-portal/internal/token"
)

func newTestRouter(t *testing.T) *gin.Engine {
	return newTestRouterWithExport(t, nil)
}

func newTestRouterWithExport(t *testing.T, export service.ExportService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer := token.NewIssuer("test-secret", 30*24*time.Hour)
	auth := service.NewAuthService(memory.NewUserRepository(), issuer, bcrypt.MinCost)
	contact := service.NewContactService(memory.NewInquiryRepository())
	leads := service.NewLeadService(memory.NewLeadRepository())

	router := gin.New()
	NewHandler(auth, contact, leads, export, issuer).RegisterRoutes(router)
	return router
}

type stubExportService struct {
	exports []service.ExportObject
}

func (s *stubExportService) ExportLeads(ctx context.Context) (*service.ExportResult, error) {
	return &service.ExportResult{Location: "s3://portal-bucket/exports/leads.csv", DownloadURL: "https://example.com/leads.csv", Count: len(s.exports)}, nil
}

func (s *stubExportService) ListExports(ctx context.Context) ([]service.ExportObject, error) {
	return s.exports, nil
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerBody() map[string]any {
	return map[string]any{
		"email":     "a@x.com",
		"password":  "password1",
		"firstName": "Jane",
		"lastName":  "Doe",
		"company":   "Acme Capital",
	}
}

func TestRegisterEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", registerBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "a@x.com", resp.User["email"])
	require.NotContains(t, resp.User, "password")
	require.NotContains(t, resp.User, "passwordHash")
}

func TestRegisterDuplicateEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", registerBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/register", registerBody(), nil)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", registerBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "a@x.com",
		"password": "password1",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "a@x.com",
		"password": "wrong-password",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "nobody@x.com",
		"password": "password1",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", registerBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	rec = doJSON(t, router, http.MethodGet, "/api/me", nil, map[string]string{
		"Authorization": "Bearer " + resp.Token,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/me", nil, map[string]string{
		"Authorization": "Bearer not.a.token",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestContactEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/contact", map[string]any{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"message": "Interested in the fund.",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool  `json:"success"`
		ID      int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotZero(t, resp.ID)
}

func TestLeadEndpointValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/leads", map[string]any{
		"firstName": "J",
		"lastName":  "Doe",
		"email":     "bad",
		"phone":     "123",
		"country":   "XX",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Fields, "firstName")
	require.Contains(t, resp.Fields, "email")
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/admin/leads", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/admin/leads/exports", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/admin/leads/export", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListExportsEndpoint(t *testing.T) {
	modified := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	router := newTestRouterWithExport(t, &stubExportService{exports: []service.ExportObject{
		{Key: "investor-portal/exports/leads-20260801-120000.csv", Size: 512, LastModified: &modified},
	}})

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", registerBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &auth))

	rec = doJSON(t, router, http.MethodGet, "/api/admin/leads/exports", nil, map[string]string{
		"Authorization": "Bearer " + auth.Token,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Exports []struct {
			Key          string `json:"key"`
			Size         int64  `json:"size"`
			LastModified string `json:"lastModified"`
		} `json:"exports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Exports, 1)
	require.Equal(t, "investor-portal/exports/leads-20260801-120000.csv", resp.Exports[0].Key)
	require.Equal(t, int64(512), resp.Exports[0].Size)
	require.Equal(t, "2026-08-01T12:00:00Z", resp.Exports[0].LastModified)
}

func TestExportWithoutStorage(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", registerBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	rec = doJSON(t, router, http.MethodPost, "/api/admin/leads/export", nil, map[string]string{
		"Authorization": "Bearer " + resp.Token,
	})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/admin/leads/exports", nil, map[string]string{
		"Authorization": "Bearer " + resp.Token,
	})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
