package driver

import "time"

// Stage describes a high-level translation phase for one top-level
// declaration.
type Stage string

const (
	// StageLoad covers reading and decoding a declaration-tree fixture.
	StageLoad Stage = "load"
	// StageBootstrap covers NodeTranslator's synchronous bootstrap pass.
	StageBootstrap Stage = "bootstrap"
	// StageFinish covers draining deferred composite-value computations.
	StageFinish Stage = "finish"
	// StageCache covers a disk-cache lookup or write.
	StageCache Stage = "cache"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
)

// Event reports progress for one declaration (or for the overall run when
// Decl is empty).
type Event struct {
	Decl    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
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

func emitStage(sink ProgressSink, declName string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Decl: declName, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}
