package easel

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame event and timing metrics.
// Only populated when the editor's debug mode is on.
type debugStats struct {
	events     int
	updateTime time.Duration
	drawTime   time.Duration
	placements int
}

// debugLog prints the stats for the frame that was just rendered to stderr.
// Only frames that actually redrew the canvas are logged, so an idle editor
// stays quiet.
func (e *Editor) debugLog() {
	if !e.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[easel] update: %v | draw: %v | events: %d | state: %s | placements: %d\n",
		e.stats.updateTime, e.stats.drawTime, e.stats.events,
		e.machine.State(), e.stats.placements)
}
