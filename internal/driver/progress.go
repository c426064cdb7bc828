package driver

import "time"

// Stage describes a high-level pipeline phase for progress reporting.
type Stage string

const (
	// StageScan is the tokenize/load stage.
	StageScan Stage = "scan"
	// StageResolve is the command/entity resolution stage.
	StageResolve Stage = "resolve"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the unit is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the unit is being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the unit completed.
	StatusDone Status = "done"
	// StatusError indicates the unit failed or aborted.
	StatusError Status = "error"
)

// Event reports progress for one translation unit.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must tolerate
// concurrent OnEvent calls.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// nopSink discards events.
type nopSink struct{}

func (nopSink) OnEvent(Event) {}
