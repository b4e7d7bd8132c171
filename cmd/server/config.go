package main

import (
	crypto_rand "crypto/rand"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/jacobpatterson1549/selene-arena/game/arena"
	"github.com/jacobpatterson1549/selene-arena/game/controller"
	"github.com/jacobpatterson1549/selene-arena/game/player"
	"github.com/jacobpatterson1549/selene-arena/server"
	"github.com/jacobpatterson1549/selene-arena/server/auth"
	"github.com/jacobpatterson1549/selene-arena/server/socket"
)

// createServer creates the server and the game it runs from the flags.
func (m mainFlags) createServer(log *log.Logger) (*server.Server, error) {
	timeFunc := func() int64 {
		return time.Now().UTC().Unix()
	}
	ps, err := m.players()
	if err != nil {
		return nil, fmt.Errorf("creating players: %w", err)
	}
	arenaCfg, err := m.arenaConfig()
	if err != nil {
		return nil, fmt.Errorf("reading arena config: %w", err)
	}
	a, err := arenaCfg.New(ps)
	if err != nil {
		return nil, fmt.Errorf("creating arena: %w", err)
	}
	gameCfg := m.gameConfig(log)
	g, err := gameCfg.NewGame(a, ps)
	if err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}
	tokenizerCfg := m.tokenizerConfig(crypto_rand.Reader, timeFunc)
	tokenizer, err := tokenizerCfg.NewTokenizer()
	if err != nil {
		return nil, fmt.Errorf("creating viewer tokenizer: %w", err)
	}
	cfg := m.serverConfig(log, timeFunc)
	p := server.Parameters{
		Logger:    log,
		Tokenizer: tokenizer,
		Upgrader:  socket.NewGorillaUpgrader(),
		Game:      g,
	}
	return cfg.NewServer(p)
}

// players creates a player for each color.
func (m mainFlags) players() (player.Players, error) {
	var players []player.Player
	for _, c := range strings.Split(m.playerColors, ",") {
		c = strings.TrimSpace(c)
		if len(c) == 0 {
			continue
		}
		p := player.Player{
			ID:    player.ID(len(players)),
			Color: c,
		}
		players = append(players, p)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("at least one player color required")
	}
	return player.New(players...), nil
}

// arenaConfig reads the arena layout file, or the embedded layout if no file is specified.
func (m mainFlags) arenaConfig() (*arena.Config, error) {
	var r io.Reader = strings.NewReader(embeddedArenaLayout)
	if len(m.arenaLayoutFile) != 0 {
		f, err := os.Open(m.arenaLayoutFile)
		if err != nil {
			return nil, fmt.Errorf("trying to open arena layout file: %w", err)
		}
		defer f.Close()
		r = f
	}
	cfg, err := arena.ReadConfig(r)
	if err != nil {
		return nil, err
	}
	cfg.TimeFunc = func() int64 {
		return time.Now().UnixMilli()
	}
	cfg.RandFunc = rand.Intn
	return cfg, nil
}

// gameConfig creates the configuration for the game.
func (m mainFlags) gameConfig(log *log.Logger) controller.Config {
	cfg := controller.Config{
		Debug:    m.debugGame,
		Log:      log,
		RandFunc: rand.Intn,
	}
	return cfg
}

// tokenizerConfig creates the configuration for viewer token reader/writer.
func (m mainFlags) tokenizerConfig(keyReader io.Reader, timeFunc func() int64) auth.TokenizerConfig {
	cfg := auth.TokenizerConfig{
		KeyReader: keyReader,
		TimeFunc:  timeFunc,
		ValidSec:  int64(m.tokenValidSec),
	}
	return cfg
}

// socketConfig creates the configuration for creating new sockets (each viewer that is connected to the arena).
func (m mainFlags) socketConfig(log *log.Logger, timeFunc func() int64) socket.Config {
	cfg := socket.Config{
		Debug:      m.debugGame,
		Log:        log,
		TimeFunc:   timeFunc,
		ReadWait:   60 * time.Second,
		WriteWait:  10 * time.Second,
		PingPeriod: 20 * time.Second,
		IdlePeriod: 15 * time.Minute,
	}
	return cfg
}

// serverConfig creates the configuration for the http server.
func (m mainFlags) serverConfig(log *log.Logger, timeFunc func() int64) server.Config {
	cfg := server.Config{
		Port:         m.port,
		StopDur:      time.Second,
		FramePeriod:  time.Duration(m.framePeriodMs) * time.Millisecond,
		Debug:        m.debugGame,
		SocketConfig: m.socketConfig(log, timeFunc),
	}
	return cfg
}
