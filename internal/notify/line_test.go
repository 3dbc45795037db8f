package notify

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestNotifier(endpoint string) *LineNotifier {
	return &LineNotifier{
		Endpoint:  endpoint,
		Token:     "test-token",
		DefaultTo: "U-default",
		Client:    &http.Client{Timeout: 2 * time.Second},
	}
}

func TestPushSendsBearerAndBody(t *testing.T) {
	var gotAuth string
	var gotBody pushRequest

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		w.WriteHeader(200)
		w.Write([]byte("{}"))
	}))
	defer upstream.Close()

	n := newTestNotifier(upstream.URL)
	err := n.Push("U-target", []Message{{Type: "text", Text: "hello"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("auth header = %q, want bearer token", gotAuth)
	}
	if gotBody.To != "U-target" {
		t.Errorf("to = %q, want U-target", gotBody.To)
	}
	if len(gotBody.Messages) != 1 || gotBody.Messages[0].Text != "hello" {
		t.Errorf("messages = %+v", gotBody.Messages)
	}
}

func TestPushDefaultsRecipient(t *testing.T) {
	var gotBody pushRequest
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		w.WriteHeader(200)
	}))
	defer upstream.Close()

	n := newTestNotifier(upstream.URL)
	if err := n.Push("", []Message{{Type: "text", Text: "hi"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody.To != "U-default" {
		t.Errorf("to = %q, want the default recipient", gotBody.To)
	}
}

func TestPushCarriesUpstreamErrorBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(400)
		w.Write([]byte(`{"message":"invalid recipient"}`))
	}))
	defer upstream.Close()

	n := newTestNotifier(upstream.URL)
	err := n.Push("U-bad", []Message{{Type: "text", Text: "hi"}})
	if err == nil {
		t.Fatal("expected error on non-2xx upstream response")
	}
	if !strings.Contains(err.Error(), "invalid recipient") {
		t.Errorf("error should carry upstream body, got %q", err.Error())
	}
}

func TestPushWithoutToken(t *testing.T) {
	n := newTestNotifier("http://unused")
	n.Token = ""
	if err := n.Push("U-x", nil); err == nil {
		t.Fatal("expected error when token is not configured")
	}
}

func TestNotifyNeverPropagatesFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer upstream.Close()

	// Notify logs and swallows; reaching the next line is the assertion.
	n := newTestNotifier(upstream.URL)
	n.Notify("something happened")

	n.Token = ""
	n.Notify("skipped entirely")

	var nilNotifier *LineNotifier
	nilNotifier.Notify("nil receiver is safe")
}
