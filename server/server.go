// Package server runs the http server which allows viewers to open websockets to watch and play in the arena.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jacobpatterson1549/selene-arena/game/controller"
	"github.com/jacobpatterson1549/selene-arena/game/player"
	"github.com/jacobpatterson1549/selene-arena/server/auth"
	"github.com/jacobpatterson1549/selene-arena/server/log"
	"github.com/jacobpatterson1549/selene-arena/server/socket"
)

type (
	// Server runs the site.
	Server struct {
		wg         sync.WaitGroup
		log        log.Logger
		tokenizer  Tokenizer
		upgrader   socket.Upgrader
		game       Game
		httpServer *http.Server
		actions    chan controller.Action
		results    chan controller.Result
		feed       *feed
		Config
	}

	// Config contains fields which describe the server.
	Config struct {
		// Port is the TCP port for server http requests.
		Port int
		// StopDur is the maximum duration the server should take to shutdown gracefully.
		StopDur time.Duration
		// FramePeriod is how often frames of the arena are sent to viewers.
		FramePeriod time.Duration
		// Debug is a flag that causes the server to log when frames are dropped for slow viewers.
		Debug bool
		// SocketConfig is used to create sockets for viewers.
		SocketConfig socket.Config
	}

	// Parameters contains the interfaces needed to create a new server.
	Parameters struct {
		log.Logger
		Tokenizer
		socket.Upgrader
		Game
	}

	// Tokenizer creates and reads viewer tokens.
	Tokenizer interface {
		Create(c auth.Claims) (string, error)
		Read(tokenString string) (*auth.Claims, error)
	}

	// Game handles actions one at a time, producing a result for each.
	Game interface {
		Run(ctx context.Context, in <-chan controller.Action, out chan<- controller.Result)
	}
)

const (
	// HeaderContentType is used to set the document type header on http responses.
	HeaderContentType = "Content-Type"
	// HeaderAuthorization is used by viewers to send tokens.
	HeaderAuthorization = "Authorization"
	// accessTokenParam is the query parameter browsers use to send tokens, since they cannot add headers to websocket requests.
	accessTokenParam = "access_token"
)

// NewServer creates a Server from the Config.
func (cfg Config) NewServer(p Parameters) (*Server, error) {
	if err := cfg.validate(p); err != nil {
		return nil, fmt.Errorf("creating server: validation: %w", err)
	}
	serveMux := new(http.ServeMux)
	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: serveMux,
	}
	f := feed{
		log:         p.Logger,
		debug:       cfg.Debug,
		framePeriod: cfg.FramePeriod,
		addC:        make(chan *socket.Socket),
	}
	s := Server{
		log:        p.Logger,
		tokenizer:  p.Tokenizer,
		upgrader:   p.Upgrader,
		game:       p.Game,
		httpServer: httpServer,
		actions:    make(chan controller.Action),
		results:    make(chan controller.Result),
		feed:       &f,
		Config:     cfg,
	}
	serveMux.HandleFunc("/", s.handleHTTP)
	return &s, nil
}

// validate ensures the configuration has no errors.
func (cfg Config) validate(p Parameters) error {
	switch {
	case p.Logger == nil:
		return fmt.Errorf("log required")
	case p.Tokenizer == nil:
		return fmt.Errorf("tokenizer required")
	case p.Upgrader == nil:
		return fmt.Errorf("websocket upgrader required")
	case p.Game == nil:
		return fmt.Errorf("game required")
	case cfg.Port < 0:
		return fmt.Errorf("non-negative port required")
	case cfg.StopDur <= 0:
		return fmt.Errorf("stop timeout duration required")
	case cfg.FramePeriod <= 0:
		return fmt.Errorf("positive frame period required")
	}
	return nil
}

// Run the server asynchronously until it receives a shutdown signal.
// When the HTTP server stops, the error is sent on the returned channel.
func (s *Server) Run(ctx context.Context) <-chan error {
	errC := make(chan error, 1)
	ctx, cancelFunc := context.WithCancel(ctx)
	s.httpServer.RegisterOnShutdown(cancelFunc)
	s.runGame(ctx)
	s.log.Printf("starting server at http://127.0.0.1%v", s.httpServer.Addr)
	go func() {
		errC <- s.httpServer.ListenAndServe()
	}()
	return errC
}

// runGame runs the game and the feed of its results to viewers until the context is done.
func (s *Server) runGame(ctx context.Context) {
	s.wg.Add(3)
	go func() {
		defer s.wg.Done()
		s.game.Run(ctx, s.actions, s.results)
	}()
	go func() {
		defer s.wg.Done()
		s.feed.run(ctx, &s.wg, s.actions, s.results)
	}()
	go func() {
		defer s.wg.Done()
		s.feed.requestFrames(ctx, s.actions)
	}()
}

// Stop asks the server to shutdown and waits for the shutdown to complete.
// An error is returned if the server if the context times out.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancelFunc := context.WithTimeout(ctx, s.StopDur)
	defer cancelFunc()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	s.wg.Wait()
	return nil
}

// handleHTTP calls handlers for endpoints.
func (s *Server) handleHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.httpError(w, http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/token":
		s.handleToken(w, r)
	case "/arena":
		s.handleArena(w, r)
	case "/ping":
		// NOOP
	default:
		s.httpError(w, http.StatusNotFound)
	}
}

// handleToken writes a token for the player in the request.
// Requests without a player get tokens that can only watch.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var c auth.Claims
	q := r.URL.Query()
	if p := q.Get("player"); len(p) != 0 {
		id, err := strconv.Atoi(p)
		if err != nil || id < 0 {
			s.httpError(w, http.StatusBadRequest)
			return
		}
		pID := player.ID(id)
		c.Player = &pID
	}
	if p := q.Get("preview"); len(p) != 0 {
		preview, err := strconv.ParseBool(p)
		if err != nil {
			s.httpError(w, http.StatusBadRequest)
			return
		}
		c.Preview = preview
	}
	token, err := s.tokenizer.Create(c)
	if err != nil {
		s.handleError(w, fmt.Errorf("creating token: %w", err))
		return
	}
	w.Header().Set(HeaderContentType, "text/plain; charset=utf-8")
	w.Write([]byte(token))
}

// handleArena upgrades the request to a websocket that receives frames of the arena.
func (s *Server) handleArena(w http.ResponseWriter, r *http.Request) {
	c, err := s.readClaims(r)
	if err != nil {
		s.log.Printf("reading viewer token: %v", err)
		s.httpError(w, http.StatusForbidden)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r)
	if err != nil {
		s.log.Printf("upgrading to websocket: %v", err)
		return // the upgrader writes the error response
	}
	sock, err := s.SocketConfig.NewSocket(conn, *c)
	if err != nil {
		s.log.Printf("creating socket: %v", err)
		conn.Close()
		return
	}
	select {
	case <-r.Context().Done():
		conn.Close()
	case s.feed.addC <- sock:
	}
}

// readClaims reads the claims of the token in the request.
func (s *Server) readClaims(r *http.Request) (*auth.Claims, error) {
	tokenString := r.URL.Query().Get(accessTokenParam)
	if authorization := r.Header.Get(HeaderAuthorization); len(tokenString) == 0 && len(authorization) != 0 {
		if len(authorization) < 7 || authorization[:7] != "Bearer " {
			return nil, fmt.Errorf("invalid authorization header: %v", authorization)
		}
		tokenString = authorization[7:]
	}
	if len(tokenString) == 0 {
		return nil, fmt.Errorf("missing token")
	}
	return s.tokenizer.Read(tokenString)
}

// handleError logs and writes the error as an internal server error (500).
func (s *Server) handleError(w http.ResponseWriter, err error) {
	s.log.Printf("server error: %v", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// httpError writes the error status code.
func (*Server) httpError(w http.ResponseWriter, statusCode int) {
	http.Error(w, http.StatusText(statusCode), statusCode)
}
