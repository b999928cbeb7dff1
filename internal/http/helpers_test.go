package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"possystem/internal/config"
	"possystem/internal/http/handlers"
	applog "possystem/internal/log"
	"possystem/internal/repos"
)

func testConfig() config.Config {
	return config.Config{
		DBDriver:           "sqlite",
		DBDatabase:         ":memory:",
		AppTitle:           "POS",
		LoginInstanceTitle: "Login",
		LoginInstanceIcon:  "logo.png",
		StoreName:          "Kedai Runcit Maju",
		StoreAddress:       "12 Jalan Ampang",
		ReceiptFooter:      "Thank you for your purchase!",
		Currency:           "RM",
	}
}

// newCashierApp wires the cashier routes the way cmd/cashier does, minus the
// global limiter and access log.
func newCashierApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	cfg := testConfig()
	db, err := repos.OpenDB(cfg.DBDriver, cfg.DSN())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine, ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	handlers.NewDeps(db, cfg).Mount(app)
	return app, db
}

func cookieValue(resp *http.Response, name string) (string, bool) {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// client carries the csrf and session cookies between requests.
type client struct {
	t    *testing.T
	app  *fiber.App
	csrf string
	sid  string
}

func newClient(t *testing.T, app *fiber.App) *client {
	t.Helper()
	cl := &client{t: t, app: app}
	resp := cl.get("/login")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /login: %d", resp.StatusCode)
	}
	tok, _ := cookieValue(resp, "csrf_")
	if tok == "" {
		t.Fatal("csrf token missing")
	}
	cl.csrf = tok
	return cl
}

func (cl *client) do(method, path string, form url.Values) *http.Response {
	cl.t.Helper()
	var body io.Reader
	if form != nil {
		form.Set("csrf", cl.csrf)
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cl.csrf != "" {
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: cl.csrf})
	}
	if cl.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: cl.sid})
	}
	resp, err := cl.app.Test(req, -1)
	if err != nil {
		cl.t.Fatalf("%s %s: %v", method, path, err)
	}
	if v, ok := cookieValue(resp, "sid"); ok {
		cl.sid = v
	}
	return resp
}

func (cl *client) get(path string) *http.Response { return cl.do("GET", path, nil) }

func (cl *client) post(path string, kv ...string) *http.Response {
	form := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		form.Set(kv[i], kv[i+1])
	}
	return cl.do("POST", path, form)
}

func (cl *client) login(username, password string) *http.Response {
	return cl.post("/login", "username", username, "password", password)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func expectRedirect(t *testing.T, resp *http.Response, to string) {
	t.Helper()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect to %s, got %d", to, resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != to {
		t.Fatalf("expected Location %s, got %s", to, loc)
	}
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	User   string         `json:"user"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	buf := &lockedBuf{}
	applog.SetOutput(buf)
	defer applog.SetOutput(os.Stdout)

	fn()

	buf.mu.Lock()
	defer buf.mu.Unlock()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findAction(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
