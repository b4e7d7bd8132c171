package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jacobpatterson1549/selene-arena/game"
	"github.com/jacobpatterson1549/selene-arena/game/controller"
	"github.com/jacobpatterson1549/selene-arena/game/player"
	"github.com/jacobpatterson1549/selene-arena/server/auth"
	"github.com/jacobpatterson1549/selene-arena/server/log/logtest"
	"github.com/jacobpatterson1549/selene-arena/server/socket"
)

// testSocketConfig creates a socket config that does not ping or check for idle connections during tests.
func testSocketConfig() socket.Config {
	return socket.Config{
		Log:        logtest.DiscardLogger,
		TimeFunc:   func() int64 { return time.Now().Unix() },
		ReadWait:   2 * time.Hour,
		WriteWait:  2 * time.Hour,
		PingPeriod: 1 * time.Hour,
		IdlePeriod: 3 * time.Hour,
	}
}

// testConfig creates a valid server config.
func testConfig() Config {
	return Config{
		StopDur:      time.Second,
		FramePeriod:  time.Hour,
		SocketConfig: testSocketConfig(),
	}
}

// testParameters creates valid server parameters.
func testParameters() Parameters {
	return Parameters{
		Logger:    logtest.DiscardLogger,
		Tokenizer: mockTokenizer{},
		Upgrader:  mockUpgrader(nil),
		Game:      mockGame(echoGame),
	}
}

func TestNewServer(t *testing.T) {
	newServerTests := []struct {
		change func(cfg *Config, p *Parameters)
		wantOk bool
	}{
		{
			change: func(cfg *Config, p *Parameters) { p.Logger = nil },
		},
		{
			change: func(cfg *Config, p *Parameters) { p.Tokenizer = nil },
		},
		{
			change: func(cfg *Config, p *Parameters) { p.Upgrader = nil },
		},
		{
			change: func(cfg *Config, p *Parameters) { p.Game = nil },
		},
		{
			change: func(cfg *Config, p *Parameters) { cfg.Port = -1 },
		},
		{
			change: func(cfg *Config, p *Parameters) { cfg.StopDur = 0 },
		},
		{
			change: func(cfg *Config, p *Parameters) { cfg.FramePeriod = 0 },
		},
		{
			change: func(cfg *Config, p *Parameters) { cfg.Port = 8001 },
			wantOk: true,
		},
	}
	for i, test := range newServerTests {
		cfg, p := testConfig(), testParameters()
		test.change(&cfg, &p)
		s, err := cfg.NewServer(p)
		switch {
		case !test.wantOk:
			if err == nil {
				t.Errorf("Test %v: wanted error", i)
			}
		case err != nil:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		case s.httpServer.Addr != ":8001":
			t.Errorf("Test %v: wanted server address to use port, got %v", i, s.httpServer.Addr)
		}
	}
}

func TestHandleHTTP(t *testing.T) {
	handleHTTPTests := []struct {
		method   string
		url      string
		wantCode int
	}{
		{"POST", "/token", 405},
		{"GET", "/", 404},
		{"GET", "/index.html", 404},
		{"GET", "/ping", 200},
		{"GET", "/token?player=one", 400},
		{"GET", "/token?player=-1", 400},
		{"GET", "/token?preview=maybe", 400},
		{"GET", "/arena", 403},
	}
	s, err := testConfig().NewServer(testParameters())
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}
	for i, test := range handleHTTPTests {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(test.method, test.url, nil)
		s.httpServer.Handler.ServeHTTP(w, r)
		if test.wantCode != w.Code {
			t.Errorf("Test %v: wanted %v, got %v", i, test.wantCode, w.Code)
		}
	}
}

func TestHandleToken(t *testing.T) {
	var id player.ID = 4
	handleTokenTests := []struct {
		url        string
		createErr  error
		wantClaims auth.Claims
		wantCode   int
		wantBody   string
	}{
		{
			url:      "/token",
			wantCode: 200,
			wantBody: "tkn",
		},
		{
			url:        "/token?player=4&preview=true",
			wantClaims: auth.Claims{Player: &id, Preview: true},
			wantCode:   200,
			wantBody:   "tkn",
		},
		{
			url:       "/token?preview=1",
			createErr: errors.New("no key"),
			wantClaims: auth.Claims{
				Preview: true,
			},
			wantCode: 500,
		},
	}
	for i, test := range handleTokenTests {
		testLog := logtest.NewLogger()
		p := testParameters()
		p.Logger = testLog
		var gotClaims auth.Claims
		p.Tokenizer = mockTokenizer{
			CreateFunc: func(c auth.Claims) (string, error) {
				gotClaims = c
				return "tkn", test.createErr
			},
		}
		s, err := testConfig().NewServer(p)
		if err != nil {
			t.Fatalf("Test %v: creating server: %v", i, err)
		}
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", test.url, nil)
		s.httpServer.Handler.ServeHTTP(w, r)
		switch {
		case test.wantCode != w.Code:
			t.Errorf("Test %v: wanted %v, got %v", i, test.wantCode, w.Code)
		case !reflect.DeepEqual(test.wantClaims, gotClaims):
			t.Errorf("Test %v: claims not equal:\nwanted: %+v\ngot:    %+v", i, test.wantClaims, gotClaims)
		case test.wantCode != 200:
			if testLog.Empty() {
				t.Errorf("Test %v: wanted error to be logged", i)
			}
		case test.wantBody != w.Body.String():
			t.Errorf("Test %v: wanted body %q, got %q", i, test.wantBody, w.Body.String())
		}
	}
}

func TestReadClaims(t *testing.T) {
	want := auth.Claims{Preview: true}
	readClaimsTests := []struct {
		url           string
		authorization string
		wantOk        bool
	}{
		{url: "/arena"},
		{url: "/arena", authorization: "Basic abc"},
		{url: "/arena", authorization: "Bearer bad"},
		{url: "/arena?access_token=bad"},
		{url: "/arena", authorization: "Bearer good", wantOk: true},
		{url: "/arena?access_token=good", wantOk: true},
		{url: "/arena?access_token=good", authorization: "Bearer bad", wantOk: true},
	}
	s, err := testConfig().NewServer(testParameters())
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}
	s.tokenizer = mockTokenizer{
		ReadFunc: func(tokenString string) (*auth.Claims, error) {
			if tokenString != "good" {
				return nil, errors.New("bad token")
			}
			return &want, nil
		},
	}
	for i, test := range readClaimsTests {
		r := httptest.NewRequest("GET", test.url, nil)
		if len(test.authorization) != 0 {
			r.Header.Set(HeaderAuthorization, test.authorization)
		}
		got, err := s.readClaims(r)
		switch {
		case !test.wantOk:
			if err == nil {
				t.Errorf("Test %v: wanted error", i)
			}
		case err != nil:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		case want != *got:
			t.Errorf("Test %v: wanted %+v, got %+v", i, want, *got)
		}
	}
}

func TestHandleArenaUpgradeError(t *testing.T) {
	testLog := logtest.NewLogger()
	p := testParameters()
	p.Logger = testLog
	p.Tokenizer = mockTokenizer{
		ReadFunc: func(tokenString string) (*auth.Claims, error) {
			return new(auth.Claims), nil
		},
	}
	p.Upgrader = mockUpgrader(func(w http.ResponseWriter, r *http.Request) (socket.Conn, error) {
		http.Error(w, "bad handshake", http.StatusBadRequest)
		return nil, errors.New("bad handshake")
	})
	s, err := testConfig().NewServer(p)
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/arena?access_token=abc", nil)
	s.httpServer.Handler.ServeHTTP(w, r)
	if want, got := 400, w.Code; want != got {
		t.Errorf("wanted %v, got %v", want, got)
	}
	if !testLog.Contains("bad handshake") {
		t.Errorf("wanted upgrade error to be logged, got %q", testLog.String())
	}
}

func TestArenaSocket(t *testing.T) {
	var id player.ID = 1
	p := testParameters()
	p.Upgrader = socket.NewGorillaUpgrader()
	p.Tokenizer = mockTokenizer{
		ReadFunc: func(tokenString string) (*auth.Claims, error) {
			switch tokenString {
			case "player":
				return &auth.Claims{Player: &id}, nil
			case "preview":
				return &auth.Claims{Preview: true}, nil
			}
			return nil, errors.New("bad token")
		},
	}
	s, err := testConfig().NewServer(p)
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()
	s.runGame(ctx)
	ts := httptest.NewServer(s.httpServer.Handler)
	defer ts.Close()
	dial := func(token string) *websocket.Conn {
		url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/arena?access_token=" + token
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("dialing arena with %v token: %v", token, err)
		}
		return conn
	}
	playerConn := dial("player")
	defer playerConn.Close()
	previewConn := dial("preview")
	defer previewConn.Close()
	playerConn.SetReadDeadline(time.Now().Add(5 * time.Second))
	previewConn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := playerConn.WriteJSON(controller.Action{Type: controller.Move, PlayerID: 3, Direction: game.South}); err != nil {
		t.Fatalf("writing player action: %v", err)
	}
	var r controller.Result
	if err := playerConn.ReadJSON(&r); err != nil {
		t.Fatalf("reading player result: %v", err)
	}
	want := controller.Action{Type: controller.Move, PlayerID: 1, Direction: game.South}
	if want != r.Action {
		t.Errorf("wanted result of action with player from token:\nwanted: %+v\ngot:    %+v", want, r.Action)
	}
	if err := previewConn.WriteJSON(controller.Action{Type: controller.RefreshFrame}); err != nil {
		t.Fatalf("writing preview action: %v", err)
	}
	if err := previewConn.ReadJSON(&r); err != nil {
		t.Fatalf("reading preview result: %v", err)
	}
	if want := (controller.Action{Type: controller.RefreshFrame, Preview: true}); want != r.Action {
		t.Errorf("wanted preview viewer to only get preview results, got %+v", r.Action)
	}
}

func TestRunStop(t *testing.T) {
	cfg := testConfig()
	cfg.Port = 0
	s, err := cfg.NewServer(testParameters())
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}
	ctx := context.Background()
	errC := s.Run(ctx)
	if err := s.Stop(ctx); err != nil {
		t.Errorf("unwanted error stopping server: %v", err)
	}
	if err := <-errC; err != http.ErrServerClosed {
		t.Errorf("wanted server closed error, got %v", err)
	}
}
