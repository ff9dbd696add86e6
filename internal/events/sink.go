package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// Sink receives events in the order operations commit.
type Sink interface {
	Notify(e Event)
}

// Discard drops every event.
type Discard struct{}

func (Discard) Notify(Event) {}

// LogSink writes every event to a logger.
type LogSink struct {
	Logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{Logger: logger}
}

func (s *LogSink) Notify(e Event) {
	ev := s.Logger.Info().
		Str("event", e.Name()).
		Uint64("cycle_id", uint64(e.Cycle()))

	switch v := e.(type) {
	case CycleCreated:
		ev = ev.Uint64("bounty", uint64(v.Bounty)).Stringer("creator", v.Creator)
	case HashReceived:
		ev = ev.Stringer("sender", v.Sender).Stringer("hash", v.Hash)
	case SecretReceived:
		ev = ev.Stringer("sender", v.Sender)
	case CycleCompleted:
		ev = ev.Stringer("creator", v.Creator).Uint64("random_number", v.RandomNumber)
	case CycleFailed:
		ev = ev.Stringer("creator", v.Creator)
	case EscrowSwept:
		ev = ev.Stringer("destination", v.Destination).Uint64("amount", uint64(v.Amount))
	}
	ev.Msg("event")
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Last returns the most recent event, or nil.
func (r *Recorder) Last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Fanout forwards each event to every sink in order.
type Fanout []Sink

func (f Fanout) Notify(e Event) {
	for _, s := range f {
		s.Notify(e)
	}
}
