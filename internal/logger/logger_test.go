package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
)

func TestSetup_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := LogConfig{Level: "debug", Format: "json", Output: path}
	if err := Setup(cfg); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = Setup(DefaultConfig()) })

	l := WithComponent("ingest")
	l.Info().Int("rows", 3).Msg("imported")
	log.Debug().Msg("debug line")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %s", len(lines), raw)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["component"] != "ingest" || entry["rows"] != 3.0 || entry["message"] != "imported" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestSetup_InvalidLevel(t *testing.T) {
	if err := Setup(LogConfig{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
