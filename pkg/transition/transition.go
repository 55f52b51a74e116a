// Package transition animates the visible font size from its current
// value toward a target over a fixed short duration with a cubic
// ease-in-ease-out curve. It is a presentation concern layered on top of
// the fit solver: the solver decides the target, this package decides
// what size is on screen while getting there.
//
// The controller owns no clock and starts no goroutines. Callers pass the
// current time into every method and drive it from whatever tick source
// the front-end already has, which keeps it trivially testable.
package transition

import (
	"math"
	"time"
)

// DefaultDuration is the standard animation length.
const DefaultDuration = 200 * time.Millisecond

// Controller interpolates an integer font size over time.
//
// Retargeting before an animation completes cancels the in-flight run and
// restarts from the current interpolated value toward the new target:
// last write wins, nothing is queued.
type Controller struct {
	duration  time.Duration
	from      int
	target    int
	startedAt time.Time
	animating bool
}

// NewController returns a Controller with the given duration. A duration
// of zero or less snaps immediately on every AnimateTo.
func NewController(d time.Duration) *Controller {
	return &Controller{duration: d}
}

// Set snaps the controller to size with no animation, cancelling any
// in-flight run. Used to establish the initial size.
func (c *Controller) Set(size int) {
	c.from = size
	c.target = size
	c.animating = false
}

// AnimateTo starts animating from the current interpolated value toward
// target. If target already equals the current value the controller
// settles immediately.
func (c *Controller) AnimateTo(target int, now time.Time) {
	current := c.Value(now)
	c.from = current
	c.target = target
	c.startedAt = now
	c.animating = current != target && c.duration > 0
}

// Value returns the size to display at time now: the eased interpolation
// between the animation endpoints, or the settled target when no
// animation is running.
func (c *Controller) Value(now time.Time) int {
	if !c.animating {
		return c.target
	}
	t := float64(now.Sub(c.startedAt)) / float64(c.duration)
	if t >= 1 {
		return c.target
	}
	if t < 0 {
		return c.from
	}
	eased := easeInOutCubic(t)
	return c.from + int(math.Round(eased*float64(c.target-c.from)))
}

// Animating reports whether an animation is still in progress at now.
func (c *Controller) Animating(now time.Time) bool {
	return c.animating && now.Sub(c.startedAt) < c.duration
}

// Target returns the size the controller is settling toward.
func (c *Controller) Target() int {
	return c.target
}

// easeInOutCubic is the standard cubic ease-in-ease-out curve: slow
// start, fast middle, slow stop. t is in [0, 1].
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}
