//go:build !js

package client

import (
	"log"

	"github.com/atotto/clipboard"
)

func readClipboard() string {
	s, err := clipboard.ReadAll()
	if err != nil {
		log.Printf("client: clipboard read: %v", err)
		return ""
	}
	return s
}

func writeClipboard(s string) {
	if err := clipboard.WriteAll(s); err != nil {
		log.Printf("client: clipboard write: %v", err)
	}
}
