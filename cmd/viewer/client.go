package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/jacobpatterson1549/selene-arena/game/controller"
)

type (
	// client talks to the arena server.
	client struct {
		httpClient *http.Client
		dialer     *websocket.Dialer
		mainFlags
	}

	// conn is the websocket connection to the arena.
	conn struct {
		ws *websocket.Conn
	}
)

// tokenURL is the url to request a token for the player and preview flags.
func (m mainFlags) tokenURL() (string, error) {
	u, err := url.Parse(m.serverURL)
	if err != nil {
		return "", fmt.Errorf("parsing server url: %w", err)
	}
	u.Path = "/token"
	q := make(url.Values)
	if m.player >= 0 {
		q.Set("player", strconv.Itoa(m.player))
	}
	if m.preview {
		q.Set("preview", "true")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// arenaURL is the websocket url of the arena that uses the token.
func (m mainFlags) arenaURL(token string) (string, error) {
	u, err := url.Parse(m.serverURL)
	if err != nil {
		return "", fmt.Errorf("parsing server url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/arena"
	q := make(url.Values)
	q.Set("access_token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// token requests a token from the server.
func (c client) token(ctx context.Context) (string, error) {
	tokenURL, err := c.tokenURL()
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tokenURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting token: %w", err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("requesting token: %v", resp.Status)
	}
	return string(b), nil
}

// connect gets a token and opens a websocket to the arena.
func (c client) connect(ctx context.Context) (*conn, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	arenaURL, err := c.arenaURL(token)
	if err != nil {
		return nil, err
	}
	ws, _, err := c.dialer.DialContext(ctx, arenaURL, nil)
	if err != nil {
		return nil, fmt.Errorf("opening arena websocket: %w", err)
	}
	return &conn{ws: ws}, nil
}

// readResults reads results from the connection until it fails, calling the function for each result.
func (c *conn) readResults(f func(r controller.Result)) error {
	for { // BLOCKING
		var r controller.Result
		if err := c.ws.ReadJSON(&r); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("reading result: %w", err)
		}
		f(r)
	}
}

// writeAction sends the action to the arena.
func (c *conn) writeAction(a controller.Action) error {
	return c.ws.WriteJSON(a)
}

// close tells the server the viewer is leaving and closes the connection.
func (c *conn) close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "viewer closed")
	c.ws.WriteMessage(websocket.CloseMessage, msg)
	return c.ws.Close()
}
