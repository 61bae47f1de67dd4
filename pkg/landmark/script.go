package landmark

import (
	"image"
	"sync"
)

// Step is one scripted tick.
type Step struct {
	Face  *Face       // nil means no face in view
	Image *image.RGBA // optional picture
	Fail  bool        // simulate a capture failure (ErrNoFrame)
}

// Script implements Source from an in-memory list of steps.
// It stands in for the camera in tests and in the headless simulator.
type Script struct {
	mu     sync.Mutex
	steps  []Step
	pos    int
	loop   bool
	closed bool
	calls  int
}

// NewScript creates a script that plays steps once, then reports ErrEndOfStream.
func NewScript(steps ...Step) *Script {
	return &Script{steps: steps}
}

// Loop makes the script restart from the first step instead of ending.
func (s *Script) Loop() *Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loop = true
	return s
}

// Append adds steps to the end of the script.
func (s *Script) Append(steps ...Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, steps...)
}

// Next returns the next scripted frame.
func (s *Script) Next() (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.closed || len(s.steps) == 0 {
		return Frame{}, ErrEndOfStream
	}
	if s.pos >= len(s.steps) {
		if !s.loop {
			return Frame{}, ErrEndOfStream
		}
		s.pos = 0
	}

	step := s.steps[s.pos]
	s.pos++
	if step.Fail {
		return Frame{}, ErrNoFrame
	}
	return Frame{Face: step.Face, Image: step.Image}, nil
}

// Close marks the script closed; later calls to Next end the stream.
func (s *Script) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Calls returns how many times Next was invoked.
func (s *Script) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Closed reports whether Close was called.
func (s *Script) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Repeat returns n copies of step.
func Repeat(step Step, n int) []Step {
	out := make([]Step, n)
	for i := range out {
		out[i] = step
	}
	return out
}
