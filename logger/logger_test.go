package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHelpersWriteToReplacedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Replace(zap.New(core))
	defer Replace(prev)

	Info("catalog loaded", Int("beats", 7), String("source", "fixtures"))
	Warn("consent store unavailable", ErrorField(errors.New("dial tcp: refused")))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "catalog loaded" {
		t.Errorf("unexpected message %q", entries[0].Message)
	}
	fields := entries[0].ContextMap()
	if fields["beats"] != int64(7) || fields["source"] != "fixtures" {
		t.Errorf("unexpected fields %v", fields)
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Errorf("expected warn level, got %v", entries[1].Level)
	}
}

func TestReplaceNilFallsBackToNop(t *testing.T) {
	prev := Replace(nil)
	defer Replace(prev)

	if L() == nil {
		t.Fatal("expected non-nil logger after Replace(nil)")
	}
	Debug("dropped")
}

func TestNewWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "beatwave.log")
	l, err := New(Config{Level: InfoLevel, OutputPath: path, MaxSize: 1})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	l.Debug("filtered out")
	l.Info("server started")
	_ = l.Sync()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "server started") {
		t.Errorf("expected info entry in file, got %q", content)
	}
	if strings.Contains(string(content), "filtered out") {
		t.Errorf("debug entry should be filtered at info level")
	}
}
