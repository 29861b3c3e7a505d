package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/assistant"
	"storefront/internal/http/handlers"
	applog "storefront/internal/log"
	"storefront/internal/repos"
	"storefront/internal/services"
)

type stubGen struct{ reply string }

func (g stubGen) Generate(context.Context, assistant.Request) (string, error) {
	return g.reply, nil
}

type testApp struct {
	t    *testing.T
	app  *fiber.App
	kv   *repos.MemKV
	logs *observer.ObservedLogs
}

func newTestApp(t *testing.T, loginMax int) *testApp {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	applog.SetLogger(zap.New(core))
	t.Cleanup(func() { applog.SetLogger(nil) })

	kv := repos.NewMemKV()
	users, err := repos.NewUserRepo(kv, repos.BcryptHasher{Cost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("user repo: %v", err)
	}
	prods := repos.NewProductRepo(kv, 0)
	orderRepo := repos.NewOrderRepo(kv)
	carts := services.NewCartService(kv, nil)
	sessions := services.NewSessionService(kv, carts)
	auth := &services.AuthService{Users: users, Sessions: sessions}

	deps := handlers.NewDeps(handlers.Services{
		Catalog:   services.NewCatalogService(prods),
		Carts:     carts,
		Auth:      auth,
		Orders:    services.NewOrderService(carts, sessions, orderRepo, nil),
		Stats:     services.NewStatsService(orderRepo, prods),
		Assistant: assistant.New(stubGen{reply: "Blazing fast. Built to last."}, "", 0, nil),
	})
	deps.LoginMax = loginMax

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	app.Use(handlers.AttachUser(auth))
	handlers.Mount(app, deps)
	return &testApp{t: t, app: app, kv: kv, logs: logs}
}

// do sends a JSON request on behalf of session sid and decodes the reply.
func (a *testApp) do(method, path, sid string, body any) (*http.Response, map[string]any) {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			a.t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := a.app.Test(req, -1)
	if err != nil {
		a.t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			a.t.Fatalf("%s %s: decode %q: %v", method, path, raw, err)
		}
	}
	return resp, out
}

// login signs in from session sid and returns the session id issued in its
// place.
func (a *testApp) login(sid, email, password string) string {
	a.t.Helper()
	resp, body := a.do("POST", "/api/v1/auth/login", sid, map[string]string{"email": email, "password": password})
	if resp.StatusCode != http.StatusOK {
		a.t.Fatalf("login %s: status %d body %v", email, resp.StatusCode, body)
	}
	issued := extractCookie(resp, "sid")
	if issued == "" || issued == sid {
		a.t.Fatalf("login %s: session id not rotated (%q)", email, issued)
	}
	return issued
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
