// Package main runs an arena server configured from command line flags and environment variables.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacobpatterson1549/selene-arena/server"
)

func main() {
	logFlags := log.Ldate | log.Ltime | log.LUTC | log.Lshortfile | log.Lmsgprefix
	log := log.New(os.Stdout, "", logFlags)
	m := newMainFlags(os.Args, os.LookupEnv)
	s, err := m.createServer(log)
	if err != nil {
		log.Fatalf("creating arena server: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := runServer(ctx, s, log); err != nil {
		log.Fatalf("running arena server: %v", err)
	}
	log.Println("arena server stopped")
}

// runServer runs the server until the context is done or the server fails.
func runServer(ctx context.Context, s *server.Server, log *log.Logger) error {
	errC := s.Run(ctx)
	select { // BLOCKING
	case err := <-errC:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Printf("arena server stopped unexpectedly: %v", err)
		}
	case <-ctx.Done():
		log.Printf("shutdown signal received")
	}
	// the run context may be done, so stopping gets a fresh one
	if err := s.Stop(context.Background()); err != nil {
		return fmt.Errorf("stopping arena server: %w", err)
	}
	return nil
}
