//go:build !(js && wasm)

package device

import "os"

// probe on native builds reports desktop. NIGHTCHASE_MOBILE=1 forces the
// touch interface for testing layouts without a phone.
func probe() Probe {
	return Probe{HasTouch: os.Getenv("NIGHTCHASE_MOBILE") == "1"}
}
