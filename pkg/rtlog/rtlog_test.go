package rtlog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lumenray/tracer/pkg/core"
)

func TestLogger_PrintfWritesFormattedMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.InfoLevel)

	logger.Printf("Pass %d: %d samples per pixel", 3, 16)

	out := buf.String()
	if !strings.Contains(out, "Pass 3: 16 samples per pixel") {
		t.Errorf("expected formatted message in output, got %q", out)
	}
}

func TestLogger_ImplementsCoreLogger(t *testing.T) {
	var _ core.Logger = New(&bytes.Buffer{}, zerolog.InfoLevel)
}

func TestLogger_LevelFiltersBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.ErrorLevel)

	logger.Printf("this is an info message and should be filtered")

	if buf.Len() != 0 {
		t.Errorf("expected info-level Printf to be suppressed at error level, got %q", buf.String())
	}
}

func TestLogger_ErrorfWritesEvenAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.ErrorLevel)

	logger.Errorf("pool worker failed: %v", "boom")

	if !strings.Contains(buf.String(), "pool worker failed: boom") {
		t.Errorf("expected Errorf message in output, got %q", buf.String())
	}
}

func TestLogger_WithAddsField(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.InfoLevel).With("tile", 7)

	logger.Printf("rendering")

	out := buf.String()
	if !strings.Contains(out, "tile") || !strings.Contains(out, "7") {
		t.Errorf("expected tile field in output, got %q", out)
	}
}
