// Package style derives the status line's accent color from buffer
// state, so an unsaved buffer left idle grows visibly more insistent
// over time.
package style

import colorful "github.com/lucasb-eyer/go-colorful"

// idleWarningSeconds is how long a buffer can sit idle before its
// accent has fully shifted to the warning color.
const idleWarningSeconds = 30.0

var (
	calmSaved    = colorful.Color{R: 0.20, G: 0.45, B: 0.75} // steady blue
	calmModified = colorful.Color{R: 0.55, G: 0.45, B: 0.15} // amber
	warning      = colorful.Color{R: 0.80, G: 0.15, B: 0.15} // red
)

// AccentFor returns the status line's accent color. A saved buffer
// stays calm regardless of idle time; a modified buffer's accent
// blends from amber toward warning red as idleSeconds approaches
// idleWarningSeconds, in the perceptually uniform Luv space so the
// transition doesn't wash out through a dull midpoint.
func AccentFor(modified bool, idleSeconds float64) colorful.Color {
	if !modified {
		return calmSaved
	}
	t := idleSeconds / idleWarningSeconds
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	// The Luv round trip is not exact, so the endpoints are returned as is.
	if t == 0 {
		return calmModified
	}
	if t == 1 {
		return warning
	}
	return calmModified.BlendLuv(warning, t)
}
