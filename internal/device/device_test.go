package device

import "testing"

func TestProbe_Mobile(t *testing.T) {
	cases := []struct {
		name string
		p    Probe
		want bool
	}{
		{"desktop", Probe{UserAgent: "Mozilla/5.0 (X11; Linux x86_64) Firefox/128.0", Width: 1920}, false},
		{"touch", Probe{HasTouch: true, Width: 1920}, true},
		{"iphone ua", Probe{UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", Width: 1024}, true},
		{"lowercase android", Probe{UserAgent: "some android webview", Width: 1024}, true},
		{"opera mini", Probe{UserAgent: "Opera Mini/8.0", Width: 1024}, true},
		{"small screen", Probe{Width: 768}, true},
		{"just above small", Probe{Width: 769}, false},
		{"unknown width", Probe{}, false},
	}
	for _, tc := range cases {
		if got := tc.p.Mobile(); got != tc.want {
			t.Errorf("%s: Mobile() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDetector_ObservedTouchSwitchesToMobile(t *testing.T) {
	d := NewDetectorFrom(Probe{Width: 1280})
	if d.Mobile() {
		t.Fatal("wide desktop should not be mobile")
	}
	d.ObserveTouch()
	if !d.Mobile() {
		t.Fatal("a touch should switch to mobile")
	}
}

func TestDetector_Resize(t *testing.T) {
	d := NewDetectorFrom(Probe{Width: 1280})
	d.SetWidth(600)
	if !d.Mobile() || d.Probe().Width != 600 {
		t.Fatal("narrow viewport should be mobile")
	}
}
