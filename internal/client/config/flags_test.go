package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		start       *Config
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK",
			args:  []string{"cmd", "-a", "http://127.0.0.1:9090", "-i", "10", "-t", "5", "-d", "x.db", "-l", "debug"},
			start: &Config{},
			expected: &Config{ServerBaseURL: "http://127.0.0.1:9090", OnlineCheckInterval: 10 * time.Second,
				RequestTimeout: 5 * time.Second, DatabasePath: "x.db", LogLevel: "debug"}},
		{name: "Test2 unknown flags ignored",
			args:     []string{"cmd", "-c", "cfg.json", "-x", "-a", "http://h"},
			start:    &Config{},
			expected: &Config{ServerBaseURL: "http://h"}},
		{name: "Test3 sub-second values survive",
			args:     []string{"cmd"},
			start:    &Config{RequestTimeout: 1500 * time.Millisecond},
			expected: &Config{RequestTimeout: 1500 * time.Millisecond}},
		{name: "Test4 incorrect check interval", args: []string{"cmd", "-i", "abc"}, start: &Config{}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := tt.start

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
