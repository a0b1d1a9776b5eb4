package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop([]UseCaseObserver{nil}))

	a, b := &recordingObserver{}, &recordingObserver{}
	assert.Same(t, a, useCaseObserverOrNoop([]UseCaseObserver{nil, a}))

	fan := useCaseObserverOrNoop([]UseCaseObserver{a, b})
	fan.ObserveUseCase(context.Background(), UseCaseEvent{Name: "x"})
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}

func TestObserve_ReportsNamedError(t *testing.T) {
	rec := &recordingObserver{}
	run := func(fail bool) (err error) {
		defer observe(context.Background(), rec, "demo", time.Now(), map[string]any{"k": 1}, &err)
		if fail {
			return errors.New("boom")
		}
		return nil
	}

	require.NoError(t, run(false))
	require.Error(t, run(true))

	require.Len(t, rec.events, 2)
	assert.True(t, rec.events[0].Success)
	assert.False(t, rec.events[1].Success)
	assert.EqualError(t, rec.events[1].Err, "boom")
	assert.Equal(t, 1, rec.events[1].Fields["k"])
}

func TestSlogUseCaseObserver_LevelByOutcome(t *testing.T) {
	var buf bytes.Buffer
	obs := NewSlogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "ok-case", Success: true})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "bad-case", Err: errors.New("nope")})

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "use_case=ok-case")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "error=nope")

	buf.Reset()
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "create-object",
		Err: fmt.Errorf("%w: name is required", ErrValidation), Fields: map[string]any{"b": 2, "a": 1}})
	out = buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Less(t, strings.Index(out, "a=1"), strings.Index(out, "b=2"))

	assert.IsType(t, NoopUseCaseObserver{}, NewSlogUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
