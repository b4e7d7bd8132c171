package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

const (
	environmentVariablePort            = "PORT"
	environmentVariableArenaLayoutFile = "ARENA_LAYOUT_FILE"
	environmentVariablePlayerColors    = "PLAYER_COLORS"
	environmentVariableFramePeriodMs   = "FRAME_PERIOD_MS"
	environmentVariableDebugGame       = "DEBUG_MESSAGES"
	environmentVariableTokenValidSec   = "TOKEN_VALID_SEC"
)

// mainFlags are the configuration options which can be easily configured at run startup for different environments.
type mainFlags struct {
	port            int
	arenaLayoutFile string
	playerColors    string
	framePeriodMs   int
	debugGame       bool
	tokenValidSec   int
}

const (
	defaultPort          = 8000
	defaultPlayerColors  = "#e6194b,#3cb44b,#4363d8,#f58231"
	defaultFramePeriodMs = 250
	defaultTokenValidSec = 60 * 60 * 24 // 1 day
)

// usage prints how to run the server to the flagset's output.
func usage(fs *flag.FlagSet) {
	envVars := []string{
		environmentVariablePort,
		environmentVariableArenaLayoutFile,
		environmentVariablePlayerColors,
		environmentVariableFramePeriodMs,
		environmentVariableDebugGame,
		environmentVariableTokenValidSec,
	}
	fmt.Fprintf(fs.Output(), "Runs the server\n")
	fmt.Fprintf(fs.Output(), "Reads environment variables when possible: [%s]\n", strings.Join(envVars, ","))
	fmt.Fprintf(fs.Output(), "Usage of %s:\n", fs.Name())
	fs.PrintDefaults()
}

// newFlagSet creates a flagSet that populates the specified mainFlags.
func (m *mainFlags) newFlagSet(osLookupEnvFunc func(string) (string, bool)) *flag.FlagSet {
	fs := flag.NewFlagSet("main", flag.ExitOnError)
	fs.Usage = func() {
		usage(fs) // [lazy evaluation]
	}
	envValue := func(key, defaultValue string) string {
		if envValue, ok := osLookupEnvFunc(key); ok {
			return envValue
		}
		return defaultValue
	}
	envValueInt := func(key string, defaultValue int) int {
		v1 := envValue(key, "")
		v2, err := strconv.Atoi(v1)
		if err != nil {
			return defaultValue
		}
		return v2
	}
	envPresent := func(key string) bool {
		_, ok := osLookupEnvFunc(key)
		return ok
	}
	fs.IntVar(&m.port, "port", envValueInt(environmentVariablePort, defaultPort), "The TCP port for server http requests.")
	fs.StringVar(&m.arenaLayoutFile, "arena-layout-file", envValue(environmentVariableArenaLayoutFile, ""), "The json file describing the tiles of the arena.")
	fs.StringVar(&m.playerColors, "player-colors", envValue(environmentVariablePlayerColors, defaultPlayerColors), "The comma-separated colors of the players.  The number of colors is the number of players.")
	fs.IntVar(&m.framePeriodMs, "frame-period-ms", envValueInt(environmentVariableFramePeriodMs, defaultFramePeriodMs), "The number of milliseconds between frames of the arena sent to viewers.")
	fs.BoolVar(&m.debugGame, "debug-game", envPresent(environmentVariableDebugGame), "Logs action types in the console when actions are passed between components.")
	fs.IntVar(&m.tokenValidSec, "token-valid-sec", envValueInt(environmentVariableTokenValidSec, defaultTokenValidSec), "The number of seconds viewer tokens are valid.")
	return fs
}

// newMainFlags creates a new, populated mainFlags structure.
// Fields are populated from command line arguments.
// If fields are not specified on the command line, environment variable values are used before defaulting to other defaults.
func newMainFlags(osArgs []string, osLookupEnvFunc func(string) (string, bool)) mainFlags {
	if len(osArgs) == 0 {
		osArgs = []string{""}
	}
	programArgs := osArgs[1:]
	var m mainFlags
	fs := m.newFlagSet(osLookupEnvFunc)
	fs.Parse(programArgs)
	return m
}
