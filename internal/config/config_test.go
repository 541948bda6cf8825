package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Parser.ExtraKeywords = []string{"TELEBIRR"}
	cfg.Parser.Banks = []string{"CBE", "Awash"}
	cfg.Source.Senders = []string{"CBE", "Awash"}

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "Africa/Addis_Ababa", cfg.Parser.Location)
	assert.Empty(t, cfg.Parser.Banks)
	assert.Equal(t, "smsbackup", cfg.Source.Format)
	assert.Equal(t, 7, cfg.Source.LookbackDays)
	assert.Equal(t, 100, cfg.Source.MaxMessages)
	assert.Equal(t, "csv", cfg.Export.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOptional_MissingFile(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("export:\n  format: json\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Export.Format)
	assert.Equal(t, DefaultLocation, cfg.Parser.Location)
	assert.Equal(t, DefaultMaxMessages, cfg.Source.MaxMessages)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	t.Setenv("SMSLEDGER_LOG_LEVEL", "debug")
	t.Setenv("SMSLEDGER_PARSER_LOCATION", "UTC")
	t.Setenv("SMSLEDGER_SOURCE_SENDERS", "CBE,Dashen")
	t.Setenv("SMSLEDGER_SOURCE_MAX_MESSAGES", "25")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "UTC", cfg.Parser.Location)
	assert.Equal(t, []string{"CBE", "Dashen"}, cfg.Source.Senders)
	assert.Equal(t, 25, cfg.Source.MaxMessages)
	assert.Equal(t, "csv", cfg.Export.Format, "unset variables keep file values")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad zone", "parser:\n  location: Mars/Olympus\n", "parser"},
		{"bad export", "export:\n  format: xlsx\n", "export"},
		{"bad level", "log:\n  level: loud\n", "log"},
		{"bad log format", "log:\n  format: xml\n", "log"},
		{"negative lookback", "source:\n  lookback_days: -1\n", "source"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, Default())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "location: Africa/Addis_Ababa")
	assert.Contains(t, contents, "lookback_days: 7")
	assert.Contains(t, contents, "max_messages: 100")
	assert.NotContains(t, contents, "extra_keywords")
}

func TestLocationAndSince(t *testing.T) {
	cfg := Default()
	cfg.Parser.Location = "UTC"

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	now := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), cfg.Since(now))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	require.NoError(t, err)

	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	log.Info("hidden")
	log.WithField("bank_id", "CBE").Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"bank_id":"CBE"`)

	_, err = LogConfig{Level: "nope"}.NewLogger(&buf)
	assert.Error(t, err)
}
