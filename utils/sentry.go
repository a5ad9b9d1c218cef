package utils

import "github.com/projecteru2/tetris/log"

// SentryGo wraps goroutine spawn to report panics
func SentryGo(f func()) {
	go func() {
		defer log.SentryDefer()
		f()
	}()
}
