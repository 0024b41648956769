//go:build js

package client

import "log"

// The browser clipboard API is asynchronous and permission gated, so the
// wasm build does not paste.
func readClipboard() string {
	log.Printf("client: clipboard paste is unavailable in the browser build")
	return ""
}

func writeClipboard(string) {}
