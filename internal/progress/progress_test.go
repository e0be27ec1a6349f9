package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventString(t *testing.T) {
	assert.Equal(t, "Found 3 file(s)", Event{Message: "Found 3 file(s)"}.String())
	assert.Equal(t, "a.pdf: Saved as Acme.pdf", Event{Item: "a.pdf", Message: "Saved as Acme.pdf"}.String())
	assert.Equal(t, "a.pdf: Could not read PDF text: boom",
		Event{Item: "a.pdf", Message: "Could not read PDF text", Err: errors.New("boom")}.String())
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusReady.Terminal())
	assert.False(t, StatusProcessing.Terminal())
	for _, s := range []Status{StatusDone, StatusFailed, StatusError, StatusWarning} {
		assert.True(t, s.Terminal(), s)
	}
}

func TestChannelEmitter(t *testing.T) {
	ch := make(chan Event, 1)
	em := NewChannelEmitter(context.Background(), ch)

	Info(em, "%d of %d", 1, 2)
	assert.Equal(t, "1 of 2", (<-ch).Message)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	blocked := NewChannelEmitter(ctx, make(chan Event))
	blocked.Emit(Event{Message: "dropped"}) // returns instead of blocking forever
}

func TestChannelEmitterAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := make(chan Event, 2)
	em := NewChannelEmitter(ctx, ch)
	for _, msg := range []string{"Interrupted", "Finished: 1 of 3 succeeded", "overflow"} {
		em.Emit(Event{Message: msg})
	}
	close(ch)

	var got []string
	for e := range ch {
		got = append(got, e.Message)
	}
	assert.Equal(t, []string{"Interrupted", "Finished: 1 of 3 succeeded"}, got, "buffered events survive cancellation in order")
}

func TestRecorderStatuses(t *testing.T) {
	rec := &Recorder{}
	Warn(rec, "run-level")
	Item(rec, "b.pdf", StatusProcessing, LevelInfo, "Processing", nil)
	Item(rec, "a.pdf", StatusProcessing, LevelInfo, "Processing", nil)
	Item(rec, "b.pdf", StatusDone, LevelSuccess, "Saved", nil)
	Item(rec, "a.pdf", StatusFailed, LevelWarning, "No name", nil)

	order, last := rec.Statuses()
	assert.Equal(t, []string{"b.pdf", "a.pdf"}, order)
	assert.Equal(t, StatusDone, last["b.pdf"])
	assert.Equal(t, StatusFailed, last["a.pdf"])
	assert.Len(t, rec.Events, 5)
	assert.Equal(t, LevelWarning, rec.Events[0].Level)
}
