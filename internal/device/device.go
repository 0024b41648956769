// Package device decides whether to show the touch interface.
package device

import "regexp"

// SmallScreenWidth is the widest viewport, in CSS pixels, treated as mobile.
const SmallScreenWidth = 768

var mobileUA = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// Probe is what the platform reports about itself.
type Probe struct {
	HasTouch  bool
	UserAgent string
	Width     int // viewport width; 0 when unknown
}

// Mobile is true if any of touch support, a mobile user agent or a small
// viewport is present.
func (p Probe) Mobile() bool {
	if p.HasTouch || mobileUA.MatchString(p.UserAgent) {
		return true
	}
	return p.Width > 0 && p.Width <= SmallScreenWidth
}

// Detector combines the startup probe with touches seen at runtime, so a
// desktop build on a touch screen switches to the mobile controls after the
// first tap.
type Detector struct {
	probe Probe
}

// NewDetector probes the current platform.
func NewDetector() *Detector {
	return &Detector{probe: probe()}
}

// NewDetectorFrom wraps a fixed probe.
func NewDetectorFrom(p Probe) *Detector {
	return &Detector{probe: p}
}

// Probe returns the current probe values.
func (d *Detector) Probe() Probe { return d.probe }

// ObserveTouch records that the platform delivered a touch event.
func (d *Detector) ObserveTouch() { d.probe.HasTouch = true }

// SetWidth records the current viewport width.
func (d *Detector) SetWidth(w int) { d.probe.Width = w }

// Mobile reports whether the touch interface should be shown.
func (d *Detector) Mobile() bool { return d.probe.Mobile() }
