package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/Simplici0/worktop/internal/catalog"
	"github.com/Simplici0/worktop/internal/db"
	"github.com/Simplici0/worktop/internal/migrations"
	"github.com/Simplici0/worktop/internal/seed"
	"github.com/Simplici0/worktop/internal/worktop"
)

const (
	testAdminEmail    = "admin@worktop.test"
	testAdminPassword = "s3cret-pass"
)

type testEnv struct {
	srv      *server
	handler  http.Handler
	material worktop.Material
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "server.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(ctx, database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := seed.Run(ctx, database, seed.Config{AdminEmail: testAdminEmail, AdminPassword: testAdminPassword}); err != nil {
		t.Fatalf("run seed: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := catalog.NewStore(database)
	material, err := store.CreateMaterial(ctx, worktop.Material{
		Name:          "Test laminate",
		Width:         600,
		Length:        3000,
		Thickness:     38,
		PricePerMeter: 10000,
		OnStock:       true,
		VATPercent:    27,
		Currency:      "HUF",
	})
	if err != nil {
		t.Fatalf("create material: %v", err)
	}

	srv := &server{
		auth:     newAuthService(database, "test-secret"),
		store:    store,
		log:      logger,
		validate: newValidator(),
	}
	return &testEnv{srv: srv, handler: srv.routes(), material: material}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()

	rr := e.do(t, http.MethodPost, "/login", map[string]string{"email": testAdminEmail, "password": testAdminPassword}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("login status = %d, body: %s", rr.Code, rr.Body.String())
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatalf("login did not set a session cookie")
	return nil
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response: %v; body: %s", err, rr.Body.String())
	}
}

func cutRequest(materialID int64, a, b float64) map[string]any {
	return map[string]any{"assembly": "cut", "a": a, "b": b, "material_id": materialID}
}
