// Package client is a thin HTTP/WebSocket client for a running
// actinrings-monitor server: health checks, last-known status, and a
// live subscription to broadcast frames.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Biochemical-Networks/actinringsmc/internal/ring"
	"github.com/gorilla/websocket"
)

// Frame mirrors monitor.Frame without importing the monitor package, so
// callers of this client don't pull in gorilla/websocket's server-side
// upgrader.
type Frame struct {
	FileBase string         `json:"filebase"`
	Iter     int            `json:"iter"`
	Record   ring.OpsRecord `json:"record"`
}

// Client talks to a single actinrings-monitor server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client targeting baseURL (e.g. "http://localhost:8090").
func New(baseURL string) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: &http.Client{}}
}

// Health calls GET /healthz and returns nil if the server answered 200.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("client: build health request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: health request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("client: server returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Status calls GET /status and decodes the last broadcast frame. It
// returns (Frame{}, false, nil) if the server has nothing to report yet.
func (c *Client) Status(ctx context.Context) (Frame, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return Frame{}, false, fmt.Errorf("client: build status request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Frame{}, false, fmt.Errorf("client: status request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return Frame{}, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Frame{}, false, fmt.Errorf("client: server returned status %d: %s", resp.StatusCode, string(body))
	}

	var frame Frame
	if err := json.NewDecoder(resp.Body).Decode(&frame); err != nil {
		return Frame{}, false, fmt.Errorf("client: decode status: %w", err)
	}
	return frame, true, nil
}

// Publish calls POST /publish with frame as its JSON body, forwarding it
// to every client subscribed to the server's WebSocket broadcast. This
// is how a driver running as its own process feeds a standalone
// actinrings-monitor.
func (c *Client) Publish(ctx context.Context, frame Frame) error {
	body, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("client: encode frame: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/publish", strings.NewReader(string(body)))
	if err != nil {
		return fmt.Errorf("client: build publish request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: publish request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("client: server returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// Subscribe opens a WebSocket connection to /ws and streams decoded
// frames to the returned channel until ctx is cancelled or the
// connection drops. The channel is closed on either exit; only a failure
// to dial is returned as an error, and a later read error is not
// reported beyond the channel closing.
func (c *Client) Subscribe(ctx context.Context) (<-chan Frame, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("client: dial %s: %w", u.String(), err)
	}

	frames := make(chan Frame)
	go func() {
		defer close(frames)
		defer conn.Close()
		for {
			var frame Frame
			if err := conn.ReadJSON(&frame); err != nil {
				return
			}
			select {
			case frames <- frame:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	return frames, nil
}
