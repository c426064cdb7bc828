package token

import "sync"

// StreamID is a weak handle to a Stream held by syntax nodes. The stream it
// names may be released once its translation unit finishes; holders must
// resolve the ID at use time and treat a nil result as expired.
type StreamID uint32

// NoStreamID never resolves to a stream.
const NoStreamID StreamID = 0

// Registry maps StreamIDs to live streams. It is safe for concurrent use:
// each translation-unit job registers its streams at start and releases
// them when the job completes or aborts.
type Registry struct {
	mu      sync.RWMutex
	streams map[StreamID]*Stream
	nextID  StreamID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		streams: make(map[StreamID]*Stream),
		nextID:  1,
	}
}

// Register adds a stream and returns its handle.
func (r *Registry) Register(s *Stream) StreamID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.streams[id] = s
	return id
}

// Get resolves a handle. It returns nil when the handle was never issued
// or the stream has been released.
func (r *Registry) Get(id StreamID) *Stream {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.streams[id]
}

// Release drops a stream; subsequent Get calls return nil.
func (r *Registry) Release(id StreamID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.streams, id)
}
