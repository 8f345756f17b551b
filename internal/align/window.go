package align

// Window bounds the current content chunk on the source video's timeline,
// in seconds. A zero-valued window has zero duration, so Rebase drops
// every entry starting after zero; callers that want the whole track use
// a window covering the full timeline instead.
type Window struct {
	Start float64
	End   float64
}

// Duration returns the window length in seconds, never negative.
func (w Window) Duration() float64 {
	if w.End <= w.Start {
		return 0
	}
	return w.End - w.Start
}

// Clamp converts an absolute playback time into a window-relative time,
// clamped into [0, Duration].
func (w Window) Clamp(currentTime float64) float64 {
	t := currentTime - w.Start
	if t < 0 {
		return 0
	}
	if d := w.Duration(); t > d {
		return d
	}
	return t
}
