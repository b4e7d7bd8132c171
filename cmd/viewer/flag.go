package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

const (
	environmentVariableServerURL = "ARENA_SERVER_URL"
	environmentVariablePlayer    = "ARENA_PLAYER"
	environmentVariablePreview   = "ARENA_PREVIEW"
)

// mainFlags are the options used to connect to an arena server.
type mainFlags struct {
	serverURL string
	player    int
	preview   bool
}

const (
	defaultServerURL = "http://127.0.0.1:8000"
	// watchOnlyPlayer is the player used by viewers that only watch the arena.
	watchOnlyPlayer = -1
)

// usage prints how to run the viewer to the flagset's output.
func usage(fs *flag.FlagSet) {
	envVars := []string{
		environmentVariableServerURL,
		environmentVariablePlayer,
		environmentVariablePreview,
	}
	fmt.Fprintf(fs.Output(), "Shows an arena in the terminal\n")
	fmt.Fprintf(fs.Output(), "Reads environment variables when possible: [%s]\n", strings.Join(envVars, ","))
	fmt.Fprintf(fs.Output(), "Usage of %s:\n", fs.Name())
	fs.PrintDefaults()
}

// newFlagSet creates a flagSet that populates the specified mainFlags.
func (m *mainFlags) newFlagSet(osLookupEnvFunc func(string) (string, bool)) *flag.FlagSet {
	fs := flag.NewFlagSet("viewer", flag.ExitOnError)
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
		v, err := strconv.Atoi(envValue(key, ""))
		if err != nil {
			return defaultValue
		}
		return v
	}
	envPresent := func(key string) bool {
		_, ok := osLookupEnvFunc(key)
		return ok
	}
	fs.StringVar(&m.serverURL, "server-url", envValue(environmentVariableServerURL, defaultServerURL), "The http url of the arena server.")
	fs.IntVar(&m.player, "player", envValueInt(environmentVariablePlayer, watchOnlyPlayer), "The zero-based id of the player to act as.  Negative ids only watch the arena.")
	fs.BoolVar(&m.preview, "preview", envPresent(environmentVariablePreview), "Shows previews of the arena, hiding the owners of tiles.")
	return fs
}

// newMainFlags creates a new, populated mainFlags structure.
// Command line arguments are used before environment variable values and defaults.
func newMainFlags(osArgs []string, osLookupEnvFunc func(string) (string, bool)) mainFlags {
	if len(osArgs) == 0 {
		osArgs = []string{""}
	}
	var m mainFlags
	fs := m.newFlagSet(osLookupEnvFunc)
	fs.Parse(osArgs[1:])
	return m
}
