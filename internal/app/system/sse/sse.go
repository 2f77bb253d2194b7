// internal/app/system/sse/sse.go
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// Stream writes server-sent events to one client. Snapshots arriving
// while a write is in flight replace any queued snapshot, so a slow
// client only ever sees the latest state, never a backlog.
type Stream struct {
	w       http.ResponseWriter
	flusher http.Flusher

	mu      sync.Mutex
	pending any
	kick    chan struct{}
}

// NewStream prepares the response for event streaming. It returns an
// error when the writer cannot flush incrementally.
func NewStream(w http.ResponseWriter) (*Stream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &Stream{
		w:       w,
		flusher: flusher,
		kick:    make(chan struct{}, 1),
	}, nil
}

// Send queues v as the next snapshot, replacing any not-yet-written one.
// Safe to call from the subscription goroutine.
func (s *Stream) Send(v any) {
	s.mu.Lock()
	s.pending = v
	s.mu.Unlock()

	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// Serve writes queued snapshots until done is closed or a write fails.
// It runs on the handler goroutine.
func (s *Stream) Serve(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-s.kick:
			s.mu.Lock()
			v := s.pending
			s.pending = nil
			s.mu.Unlock()
			if v == nil {
				continue
			}

			payload, err := json.Marshal(v)
			if err != nil {
				return
			}
			if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
				return
			}
			s.flusher.Flush()
		}
	}
}
