package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/minedash/minedash/internal/server/http/handlers"
	"github.com/minedash/minedash/internal/server/http/middleware"
	testhelpers "github.com/minedash/minedash/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.DashboardFacadeStub{}
	engine := Setup(facade, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/actions", nil)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for actions, got %d", resp.Code)
	}

	body, _ := json.Marshal(map[string]string{"userId": "U1", "username": "miner"})
	req = httptest.NewRequest(http.MethodPost, "/api/user", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.UserIDHeader, "U1")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for ensure user, got %d", resp.Code)
	}
}

func TestSetupRequiresIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := Setup(testhelpers.DashboardFacadeStub{}, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without identity header, got %d", resp.Code)
	}
}

func TestSetupAdminGate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := Setup(testhelpers.DashboardFacadeStub{}, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set(middleware.UserIDHeader, "ADM")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for admin stats, got %d", resp.Code)
	}
}

var _ handlers.DashboardFacade = (*testhelpers.DashboardFacadeStub)(nil)
