package main

import (
	"bytes"
	"flag"
	"strings"
	"testing"
)

func TestNewMainFlags(t *testing.T) {
	defaults := mainFlags{
		port:          defaultPort,
		playerColors:  defaultPlayerColors,
		framePeriodMs: defaultFramePeriodMs,
		tokenValidSec: defaultTokenValidSec,
	}
	newMainFlagsTests := []struct {
		osArgs  []string
		envVars map[string]string
		want    func(m *mainFlags)
	}{
		{}, // defaults
		{
			osArgs: []string{"name"},
		},
		{
			osArgs: []string{"", "port=8001"}, // not a flag
		},
		{
			osArgs: []string{"", "-port=8001"},
			want:   func(m *mainFlags) { m.port = 8001 },
		},
		{
			osArgs: []string{"", "--port=8001"},
			want:   func(m *mainFlags) { m.port = 8001 },
		},
		{
			envVars: map[string]string{"PORT": "8002"},
			want:    func(m *mainFlags) { m.port = 8002 },
		},
		{
			envVars: map[string]string{"PORT": "eighty"},
		},
		{
			osArgs:  []string{"", "-port=8003"},
			envVars: map[string]string{"PORT": "8004"},
			want:    func(m *mainFlags) { m.port = 8003 },
		},
		{
			osArgs: []string{"", "-debug-game"},
			want:   func(m *mainFlags) { m.debugGame = true },
		},
		{
			envVars: map[string]string{"DEBUG_MESSAGES": ""},
			want:    func(m *mainFlags) { m.debugGame = true },
		},
		{ // all command line
			osArgs: []string{
				"",
				"-port=1",
				"-arena-layout-file=2",
				"-player-colors=red,blue",
				"-frame-period-ms=4",
				"-debug-game",
				"-token-valid-sec=5",
			},
			want: func(m *mainFlags) {
				*m = mainFlags{
					port:            1,
					arenaLayoutFile: "2",
					playerColors:    "red,blue",
					framePeriodMs:   4,
					debugGame:       true,
					tokenValidSec:   5,
				}
			},
		},
		{ // all environment variables
			envVars: map[string]string{
				"PORT":              "1",
				"ARENA_LAYOUT_FILE": "2",
				"PLAYER_COLORS":     "red,blue",
				"FRAME_PERIOD_MS":   "4",
				"DEBUG_MESSAGES":    "",
				"TOKEN_VALID_SEC":   "5",
			},
			want: func(m *mainFlags) {
				*m = mainFlags{
					port:            1,
					arenaLayoutFile: "2",
					playerColors:    "red,blue",
					framePeriodMs:   4,
					debugGame:       true,
					tokenValidSec:   5,
				}
			},
		},
	}
	for i, test := range newMainFlagsTests {
		osLookupEnvFunc := func(key string) (string, bool) {
			v, ok := test.envVars[key]
			return v, ok
		}
		want := defaults
		if test.want != nil {
			test.want(&want)
		}
		got := newMainFlags(test.osArgs, osLookupEnvFunc)
		if want != got {
			t.Errorf("Test %v:\nwanted: %+v\ngot:    %+v", i, want, got)
		}
	}
}

func TestUsage(t *testing.T) {
	var m mainFlags
	osLookupEnvFunc := func(key string) (string, bool) {
		return "", false
	}
	fs := m.newFlagSet(osLookupEnvFunc)
	var buf bytes.Buffer
	fs.SetOutput(&buf)
	fs.Init("selene-arena", flag.ContinueOnError)
	fs.Usage()
	got := buf.String()
	wantParts := []string{
		"selene-arena",
		"PORT",
		"ARENA_LAYOUT_FILE",
		"PLAYER_COLORS",
		"FRAME_PERIOD_MS",
		"DEBUG_MESSAGES",
		"TOKEN_VALID_SEC",
		"-port",
		"-arena-layout-file",
	}
	for _, w := range wantParts {
		if !strings.Contains(got, w) {
			t.Errorf("wanted usage to contain %q, got:\n%v", w, got)
		}
	}
}
