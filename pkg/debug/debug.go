// Package debug provides global debug logging switches
package debug

import "github.com/teslashibe/gaze-swarm/internal/log"

// Enabled controls whether debug logging is active
var Enabled bool

// Gaze controls whether per-frame gaze logs are shown (ratios, targets, lid gaps).
// Use --debug-gaze to enable these very verbose logs
var Gaze bool

// Log emits a message only if debug mode is enabled
func Log(msg string, args ...any) {
	if Enabled {
		log.Info(msg, args...)
	}
}

// GazeLog emits a message only if gaze debug mode is enabled
func GazeLog(msg string, args ...any) {
	if Gaze {
		log.Info(msg, args...)
	}
}
