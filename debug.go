package easel

import "time"

// drawStats holds timings for one View.Draw call.
// Only populated when the stage is in debug mode.
type drawStats struct {
	view      string
	clearTime time.Duration
	sceneTime time.Duration
}

// debugLog reports draw timings through the package logger.
func (s *Stage) debugLog(stats drawStats) {
	if !s.debug {
		return
	}
	Logger().Debug("easel: draw",
		"view", stats.view,
		"clear", stats.clearTime,
		"scene", stats.sceneTime,
		"total", stats.clearTime+stats.sceneTime)
}
