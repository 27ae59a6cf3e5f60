package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-s", "mongo", "-d", "db", "-m", "mongodb://m:27017", "-n", "users",
				"-f", "/tmp/a.db", "-t", "2s", "-l", "debug", "-o", "json",
			},
			expected: &Config{
				Storage:          "mongo",
				DatabaseDSN:      "db",
				MongoURI:         "mongodb://m:27017",
				MongoDatabase:    "users",
				SQLitePath:       "/tmp/a.db",
				OperationTimeout: 2 * time.Second,
				LogLevel:         "debug",
				LogFormat:        "json",
			},
		},
		{
			name:     "config flag is ignored",
			args:     []string{"-c", "cfg.json", "-s", "postgres"},
			expected: &Config{Storage: "postgres"},
		},
		{
			name:    "bad duration",
			args:    []string{"-t", "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			err := parseFlags(config, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
