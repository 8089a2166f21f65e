// Package notifytest provides an in-memory dispatcher for tests.
package notifytest

import "sync"

type Presented struct {
	Title string
	Body  string
}

// Recorder keeps everything it was asked to present. Safe for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	presented []Presented
	cues      int
}

func (r *Recorder) Present(title, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presented = append(r.presented, Presented{Title: title, Body: body})
}

func (r *Recorder) PlayCue() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues++
}

func (r *Recorder) Presented() []Presented {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Presented, len(r.presented))
	copy(out, r.presented)
	return out
}

func (r *Recorder) Cues() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cues
}
