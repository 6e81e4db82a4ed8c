package script

import (
	"math"
	"time"
)

// Game time zero is midnight, January 1st 3200 UTC.
var gameEpoch = time.Date(3200, time.January, 1, 0, 0, 0, 0, time.UTC)

// FormatDate renders a game time (seconds since the game epoch) the way the
// cockpit displays dates, e.g. "14:32:07 3 Feb 3200".
func FormatDate(t float64) string {
	sec, frac := math.Modf(t)
	when := gameEpoch.Add(time.Duration(sec)*time.Second + time.Duration(frac*float64(time.Second)))
	return when.Format("15:04:05 2 Jan 2006")
}
