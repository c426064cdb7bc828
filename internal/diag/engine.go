package diag

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Engine accumulates and emits diagnostics for one compilation run. It is
// constructed once and shared by every translation-unit worker: the
// counters are atomic and emission is serialized, so no external locking
// is needed.
type Engine struct {
	mu   sync.Mutex
	sink io.Writer

	errorCount atomic.Uint32
	warnCount  atomic.Uint32
	fatalCount atomic.Uint32
}

// NewEngine creates an engine writing to sink. A nil sink means stderr.
func NewEngine(sink io.Writer) *Engine {
	if sink == nil {
		sink = os.Stderr
	}
	return &Engine{sink: sink}
}

// Error reports a user error at ctx and increments the error counter.
func (e *Engine) Error(ctx Context, format string, args ...any) {
	e.errorCount.Add(1)
	e.emit(Render("error", ctx, format, args...))
}

// Warning reports a warning at ctx and increments the warning counter.
func (e *Engine) Warning(ctx Context, format string, args ...any) {
	e.warnCount.Add(1)
	e.emit(Render("warning", ctx, format, args...))
}

// Note emits an informational message at ctx. Counters are unaffected.
func (e *Engine) Note(ctx Context, format string, args ...any) {
	e.emit(Render("note", ctx, format, args...))
}

// FatalError reports an unrecoverable user error and aborts the current
// translation-unit job. It never returns.
func (e *Engine) FatalError(ctx Context, format string, args ...any) {
	e.fatalCount.Add(1)
	e.emit(Render("fatal error", ctx, format, args...))
	Halt()
}

// RegisterErrors adds n to the error counter for collaborators that detect
// batched failures without individual contexts. n may be zero.
func (e *Engine) RegisterErrors(n uint32) {
	e.errorCount.Add(n)
}

// HasError reports whether any error or fatal error has been recorded.
func (e *Engine) HasError() bool {
	return e.errorCount.Load() > 0 || e.fatalCount.Load() > 0
}

// ErrorCount returns the number of recorded errors.
func (e *Engine) ErrorCount() uint32 { return e.errorCount.Load() }

// WarnCount returns the number of recorded warnings.
func (e *Engine) WarnCount() uint32 { return e.warnCount.Load() }

// FatalCount returns the number of recorded fatal errors.
func (e *Engine) FatalCount() uint32 { return e.fatalCount.Load() }

// emit writes one rendered diagnostic as a single contiguous block so that
// concurrent workers never interleave partial lines.
func (e *Engine) emit(msg string) {
	buf := make([]byte, 0, len(msg)+1)
	buf = append(buf, msg...)
	buf = append(buf, '\n')

	e.mu.Lock()
	defer e.mu.Unlock()
	_, _ = e.sink.Write(buf)
}
