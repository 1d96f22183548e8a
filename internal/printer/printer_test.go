package printer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/broadcast/internal/core/config"
	"github.com/hay-kot/broadcast/internal/core/scenario"
)

func newPlain(buf *bytes.Buffer) *Printer {
	return NewWithColor(buf, config.ColorNever)
}

func TestPrinter_FatalError(t *testing.T) {
	var buf bytes.Buffer
	newPlain(&buf).FatalError(errors.New("something broke"))

	out := buf.String()
	assert.Contains(t, out, "╭ Error")
	assert.Contains(t, out, "something broke")
	assert.NotContains(t, out, "\033[", "no color codes in never mode")
}

func TestPrinter_FatalErrorNil(t *testing.T) {
	var buf bytes.Buffer
	newPlain(&buf).FatalError(nil)
	assert.Empty(t, buf.String())
}

func TestPrinter_FatalErrorValidation(t *testing.T) {
	var errs criterio.FieldErrorsBuilder
	errs = errs.Append("publishers[0]", errors.New("name is required"))
	err := fmt.Errorf("validate scenario: %w", errs.ToError())

	var buf bytes.Buffer
	newPlain(&buf).FatalError(err)

	out := buf.String()
	assert.Contains(t, out, "╭ Validation Error")
	assert.Contains(t, out, "validate scenario")
	assert.Contains(t, out, "publishers[0]: name is required")
}

func TestPrinter_ColorAlways(t *testing.T) {
	var buf bytes.Buffer
	NewWithColor(&buf, config.ColorAlways).Errorf("bad %d", 1)

	assert.Contains(t, buf.String(), ColorRed)
	assert.Contains(t, buf.String(), "bad 1")
}

func TestPrinter_AutoColorNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Successf("done")

	assert.Equal(t, Check+" done\n", buf.String())
}

func TestPrinter_Ctx(t *testing.T) {
	var buf bytes.Buffer
	p := newPlain(&buf)

	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))
	assert.NotNil(t, Ctx(context.Background()))
}

func runDemo(t *testing.T) *scenario.Result {
	t.Helper()
	at := time.Date(2024, 6, 1, 15, 30, 45, 0, time.Local)
	res, err := scenario.NewRunner(zerolog.Nop()).
		WithClock(func() time.Time { return at }).
		Run(context.Background(), scenario.Demo())
	require.NoError(t, err)
	return res
}

func TestPrinter_Transcript(t *testing.T) {
	res := runDemo(t)

	var buf bytes.Buffer
	cfg := config.DefaultConfig()
	newPlain(&buf).Transcript(res, cfg.Transcript)

	out := buf.String()
	for _, want := range []string{
		"Event-Based Messaging Demo",
		"Interests",
		"Ali: Haber",
		"Ayşe: Haber, Spor",
		"Activity",
		"Test 1: Haber Mesajı",
		"Haber TV published [15:30:45] Haber TV (Haber): Seçim sonuçları açıklandı!",
		Mail + " Ali received",
		"filtered by every subscriber",
		"Received Messages",
		"no messages received",
		"Publisher History",
		"  [15:30:45] Spor Kanalı (Spor): Fenerbahçe şampiyon oldu!",
	} {
		assert.Contains(t, out, want)
	}
}

func TestPrinter_TranscriptSectionsDisabled(t *testing.T) {
	res := runDemo(t)

	off := false
	tc := config.TranscriptConfig{
		ShowInterests: &off,
		ShowActivity:  &off,
		ShowHistory:   &off,
	}

	var buf bytes.Buffer
	newPlain(&buf).Transcript(res, tc)

	out := buf.String()
	assert.Contains(t, out, "Received Messages")
	assert.NotContains(t, out, "Interests")
	assert.NotContains(t, out, "Activity")
	assert.NotContains(t, out, "Publisher History")
}
