package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		env  string
		want log.Level
	}{
		{"", log.InfoLevel},
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{" error ", log.ErrorLevel},
		{"loud", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Setenv(envLogLevel, tt.env)
		if got := LevelFromEnv(log.InfoLevel); got != tt.want {
			t.Errorf("LevelFromEnv() with %q = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	t.Setenv(envLogLevel, "")
	os.Unsetenv(envLogLevel)

	// No file is not an error.
	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() without file error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, envFile), []byte(envLogLevel+"=debug\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if got := os.Getenv(envLogLevel); got != "debug" {
		t.Errorf("%s = %q, want debug", envLogLevel, got)
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}
