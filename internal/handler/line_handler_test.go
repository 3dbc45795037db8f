package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ppe-inventory-ws/internal/notify"

	"github.com/gofiber/fiber/v2"
)

func newRelayApp(endpoint string) *fiber.App {
	notifier := &notify.LineNotifier{
		Endpoint:  endpoint,
		Token:     "test-token",
		DefaultTo: "U-default",
		Client:    &http.Client{Timeout: 2 * time.Second},
	}
	app := fiber.New()
	app.All("/api/line", NewLineHandler(notifier).Relay)
	return app
}

func TestRelayRejectsNonPost(t *testing.T) {
	app := newRelayApp("http://unused")

	for _, method := range []string{"GET", "PUT", "DELETE"} {
		req := httptest.NewRequest(method, "/api/line", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: %v", method, err)
		}
		if resp.StatusCode != 405 {
			t.Errorf("%s: status = %d, want 405", method, resp.StatusCode)
		}
	}
}

func TestRelayForwardsPush(t *testing.T) {
	var gotAuth string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(200)
		w.Write([]byte("{}"))
	}))
	defer upstream.Close()

	app := newRelayApp(upstream.URL)
	body := `{"to":"U-someone","messages":[{"type":"text","text":"hello"}]}`
	req := httptest.NewRequest("POST", "/api/line", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("upstream auth = %q, want server-side bearer token", gotAuth)
	}

	var out map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	json.Unmarshal(raw, &out)
	if out["success"] != true {
		t.Errorf("body = %s, want success:true", raw)
	}
}

func TestRelaySurfacesUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		w.Write([]byte(`{"message":"invalid channel token"}`))
	}))
	defer upstream.Close()

	app := newRelayApp(upstream.URL)
	req := httptest.NewRequest("POST", "/api/line", strings.NewReader(`{"to":"U-x","messages":[]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 500 {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), "invalid channel token") {
		t.Errorf("response should carry upstream error body, got %s", raw)
	}
}
