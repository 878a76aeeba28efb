package middleware

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/minedash/minedash/internal/domain/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestIdentityRequired(t *testing.T) {
	engine := gin.New()
	engine.Use(IdentityRequired())
	engine.GET("/whoami", func(c *gin.Context) {
		id, _ := c.Get(UserIDContextKey)
		c.String(http.StatusOK, id.(string))
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(UserIDHeader, "  U1  ")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "U1" {
		t.Fatalf("expected trimmed identity, got %d %q", rec.Code, rec.Body.String())
	}
}

type adminGateStub struct {
	err error
}

func (s *adminGateStub) EnsureAdmin(context.Context, string) error { return s.err }

func TestAdminRequired(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"admin passes", nil, http.StatusOK},
		{"regular user forbidden", domainErrors.ErrForbidden, http.StatusForbidden},
		{"unknown user unauthorized", domainErrors.ErrNotFound, http.StatusUnauthorized},
		{"backend failure", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := gin.New()
			engine.Use(IdentityRequired(), AdminRequired(&adminGateStub{err: tc.err}))
			engine.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set(UserIDHeader, "ADM")
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestAdminRequiredWithoutIdentity(t *testing.T) {
	engine := gin.New()
	engine.Use(AdminRequired(&adminGateStub{}))
	engine.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestDecompressRequest(t *testing.T) {
	engine := gin.New()
	engine.Use(DecompressRequest())
	engine.POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, string(body))
	})

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/echo", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "hello" {
		t.Fatalf("expected decompressed echo, got %d %q", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for corrupt body, got %d", rec.Code)
	}
}

func TestRequestLoggerIncludesIdentity(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&out, nil))

	engine := gin.New()
	engine.Use(IdentityRequired(), RequestLogger(logger))
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(UserIDHeader, "U1")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if !bytes.Contains(out.Bytes(), []byte(`"user_id":"U1"`)) {
		t.Fatalf("expected user id in log line, got %s", out.String())
	}
}
