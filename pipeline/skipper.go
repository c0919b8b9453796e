package pipeline

// Skipper is the load shedding policy for image stream events. The flag flips
// on every event, processed or not, so exactly every other event is kept.
type Skipper struct {
	skip bool
}

// NewSkipper returns a skipper whose flag starts at initial. With false the
// first event is dropped and the second processed.
func NewSkipper(initial bool) *Skipper {
	return &Skipper{skip: initial}
}

// CanSkipFrame flips the flag and reports whether this event must be dropped
func (s *Skipper) CanSkipFrame() bool {
	s.skip = !s.skip
	return s.skip
}
