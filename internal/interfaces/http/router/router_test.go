package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appreport "github.com/bizops/reporting/internal/application/report"
	"github.com/bizops/reporting/internal/domain/report"
	"github.com/bizops/reporting/internal/infrastructure/auth"
	"github.com/bizops/reporting/internal/infrastructure/config"
	"github.com/bizops/reporting/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret-key-at-least-32-chars!"

type stubDispatcher struct{}

func (stubDispatcher) Aggregate(context.Context, report.Query) ([]report.Row, error) {
	return nil, nil
}

func (stubDispatcher) BulkAggregate(context.Context, []report.Query) (report.ResultSet, error) {
	return report.ResultSet{}, nil
}

type stubBranches struct{}

func (stubBranches) Settings(context.Context, string) (report.BranchSettings, error) {
	return report.BranchSettings{}, nil
}

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	cfg := &config.Config{}
	cfg.App.Name = "reporting"
	service := appreport.NewService(stubDispatcher{}, stubBranches{}, nil, 0, log)
	verifier := auth.NewVerifier(config.JWTConfig{Secret: testSecret})
	return New(cfg, verifier, Handlers{
		System:  handler.NewSystemHandler("reporting", "test", log),
		Reports: handler.NewReportHandler(service, log),
		Finance: handler.NewFinanceHandler(service, log),
	}, log)
}

func token(t *testing.T, permissions []string) string {
	t.Helper()
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID:      "user-1",
		Permissions: permissions,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func TestRoutes(t *testing.T) {
	engine := newEngine(t)

	get := func(path, authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	t.Run("health is public", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get("/health", "").Code)
	})

	t.Run("api requires auth", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get("/api/v1/reports/types", "").Code)
	})

	t.Run("report types with token", func(t *testing.T) {
		w := get("/api/v1/reports/types", token(t, []string{"list_sales"}))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("finance requires view_finance", func(t *testing.T) {
		w := get("/api/v1/finance/dashboard?start_date=2024-03-01&end_date=2024-03-31",
			token(t, []string{"list_sales"}))
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = get("/api/v1/finance/dashboard?start_date=2024-03-01&end_date=2024-03-31",
			token(t, []string{report.PermissionViewFinance}))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("info with token", func(t *testing.T) {
		w := get("/api/v1/info", token(t, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
