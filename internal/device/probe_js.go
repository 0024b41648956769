//go:build js && wasm

package device

import "syscall/js"

func probe() Probe {
	var p Probe
	win := js.Global()
	if nav := win.Get("navigator"); !nav.IsUndefined() {
		if ua := nav.Get("userAgent"); ua.Type() == js.TypeString {
			p.UserAgent = ua.String()
		}
		if mtp := nav.Get("maxTouchPoints"); mtp.Type() == js.TypeNumber && mtp.Int() > 0 {
			p.HasTouch = true
		}
	}
	if !win.Get("ontouchstart").IsUndefined() {
		p.HasTouch = true
	}
	if w := win.Get("innerWidth"); w.Type() == js.TypeNumber {
		p.Width = w.Int()
	}
	return p
}
