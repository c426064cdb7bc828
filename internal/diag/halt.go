package diag

// haltSignal is the payload-free abort signal thrown by FatalError. It is
// deliberately unexported: RunJob is the only place allowed to recover it.
type haltSignal struct{}

// Halt unwinds the current translation-unit job up to its RunJob boundary.
// FatalError calls this after rendering; collaborators that must abort
// without emitting anything may call it directly.
func Halt() {
	panic(haltSignal{})
}

// RunJob executes one translation-unit job and converts a halt signal into
// a normal return. It reports whether the job ran to completion. Any other
// panic is a genuine defect and propagates.
func RunJob(fn func()) (completed bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(haltSignal); ok {
				completed = false
				return
			}
			panic(r)
		}
	}()
	fn()
	return true
}
