package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

const defaultPushEndpoint = "https://api.line.me/v2/bot/message/push"

// Message is a LINE Messaging API message object. Only text messages are sent
// by the workflow, but the relay forwards whatever the client provides.
type Message struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type pushRequest struct {
	To       string    `json:"to"`
	Messages []Message `json:"messages"`
}

// LineNotifier pushes messages through the LINE Messaging API. Workflow
// callers use Notify, which is strictly best-effort: delivery failures are
// logged and never surface to the transaction that triggered them.
type LineNotifier struct {
	Endpoint  string
	Token     string
	DefaultTo string
	Client    *http.Client
}

// NewLineNotifier reads LINE_CHANNEL_TOKEN, LINE_DEFAULT_TO and optionally
// LINE_API_URL from the environment. An empty token disables delivery.
func NewLineNotifier() *LineNotifier {
	endpoint := os.Getenv("LINE_API_URL")
	if endpoint == "" {
		endpoint = defaultPushEndpoint
	}
	return &LineNotifier{
		Endpoint:  endpoint,
		Token:     os.Getenv("LINE_CHANNEL_TOKEN"),
		DefaultTo: os.Getenv("LINE_DEFAULT_TO"),
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Push sends messages to a recipient and returns an error carrying the
// upstream response body on non-2xx, for the relay endpoint to surface.
func (n *LineNotifier) Push(to string, messages []Message) error {
	if n.Token == "" {
		return fmt.Errorf("LINE channel token not configured")
	}
	if to == "" {
		to = n.DefaultTo
	}

	body, err := json.Marshal(pushRequest{To: to, Messages: messages})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, n.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.Token)

	resp, err := n.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		upstream, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("LINE push failed (%d): %s", resp.StatusCode, string(upstream))
	}
	return nil
}

// Notify sends a text message to the default recipient, fire-and-forget.
// Failures are logged only; a committed workflow transaction must never be
// affected by notification delivery.
func (n *LineNotifier) Notify(text string) {
	if n == nil {
		return
	}
	if n.Token == "" {
		log.Println("LINE notify skipped: channel token not configured")
		return
	}
	if err := n.Push(n.DefaultTo, []Message{{Type: "text", Text: text}}); err != nil {
		log.Printf("LINE notify failed: %v", err)
	}
}
