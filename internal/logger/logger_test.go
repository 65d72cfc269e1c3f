package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewWithWriterEmitsServiceField(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("api", &buf)

	log.Info().Str("key", "value").Msg("hello")

	out := buf.String()
	for _, want := range []string{`"service":"api"`, `"key":"value"`, `"message":"hello"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("worker", &buf)

	ctx := WithContext(context.Background(), log)
	got := FromContext(ctx)

	got.Info().Msg("from context")
	if !strings.Contains(buf.String(), `"service":"worker"`) {
		t.Errorf("logger from context did not write to the attached writer: %q", buf.String())
	}
}

func TestFromContextFallsBack(t *testing.T) {
	// Must not panic and must return a usable logger.
	log := FromContext(context.Background())
	log.Debug().Msg("noop")
}
