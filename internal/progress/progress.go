// =============================================================================
// docbatch - Progress Events
// =============================================================================
//
// A batch worker never touches presentation state. It describes what is
// happening as a stream of Events sent over a single channel; the presenter
// is the only consumer of that channel.
//
//   worker goroutine ──Event──▶ chan ──▶ presenter (CLI)
//
// =============================================================================

package progress

import (
	"context"
	"fmt"
)

// Status is the per-item state shown next to each input.
type Status string

const (
	StatusReady      Status = "Ready"
	StatusProcessing Status = "Processing"
	StatusDone       Status = "Done"
	StatusFailed     Status = "Failed"
	StatusError      Status = "Error"
	StatusWarning    Status = "Warning"
)

// Terminal reports whether s ends an item's lifecycle.
func (s Status) Terminal() bool {
	switch s {
	case StatusDone, StatusFailed, StatusError, StatusWarning:
		return true
	}
	return false
}

// Level is the severity tag of an activity-log line.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Event is one entry in the activity stream.
type Event struct {
	// Item identifies the input the event is about (file name, page label
	// or group key). Empty for run-level messages.
	Item string

	// Status is the item's new status. Empty for plain log lines.
	Status Status

	// Level is the severity used for the log line.
	Level Level

	// Message is the human-readable text.
	Message string

	// Err is the cause for error events.
	Err error
}

// String renders the event the way the activity log shows it.
func (e Event) String() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Item == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Item, msg)
}

// =============================================================================
// EMITTER
// =============================================================================

// Emitter is the sending half of the event channel as seen by a worker.
type Emitter interface {
	Emit(Event)
}

// ChannelEmitter sends events to a channel. Sends block until the presenter
// receives them or ctx is done, so a slow presenter back-pressures the
// worker instead of losing lines. Once ctx is done an event is still
// delivered when the channel has room, and dropped only when it is full.
type ChannelEmitter struct {
	ctx context.Context
	ch  chan<- Event
}

// NewChannelEmitter wraps ch.
func NewChannelEmitter(ctx context.Context, ch chan<- Event) *ChannelEmitter {
	return &ChannelEmitter{ctx: ctx, ch: ch}
}

// Emit implements Emitter.
func (c *ChannelEmitter) Emit(e Event) {
	if c.ctx.Err() == nil {
		select {
		case c.ch <- e:
			return
		case <-c.ctx.Done():
		}
	}

	select {
	case c.ch <- e:
	default:
	}
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Event)

// Emit implements Emitter.
func (f EmitterFunc) Emit(e Event) { f(e) }

// Discard drops every event.
var Discard Emitter = EmitterFunc(func(Event) {})

// Recorder collects events in memory. It is not safe for concurrent use; the
// single-worker model means only one goroutine ever emits.
type Recorder struct {
	Events []Event
}

// Emit implements Emitter.
func (r *Recorder) Emit(e Event) {
	r.Events = append(r.Events, e)
}

// Statuses returns the last status recorded for every item, in first-seen
// order of the items.
func (r *Recorder) Statuses() ([]string, map[string]Status) {
	var order []string
	last := make(map[string]Status)
	for _, e := range r.Events {
		if e.Item == "" || e.Status == "" {
			continue
		}
		if _, seen := last[e.Item]; !seen {
			order = append(order, e.Item)
		}
		last[e.Item] = e.Status
	}
	return order, last
}

// =============================================================================
// HELPERS
// =============================================================================

// Info emits a run-level info line.
func Info(em Emitter, format string, args ...interface{}) {
	em.Emit(Event{Level: LevelInfo, Message: fmt.Sprintf(format, args...)})
}

// Warn emits a run-level warning line.
func Warn(em Emitter, format string, args ...interface{}) {
	em.Emit(Event{Level: LevelWarning, Message: fmt.Sprintf(format, args...)})
}

// Item emits a status change for one item.
func Item(em Emitter, item string, status Status, level Level, message string, err error) {
	em.Emit(Event{Item: item, Status: status, Level: level, Message: message, Err: err})
}
