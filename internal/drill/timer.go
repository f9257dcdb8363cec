package drill

import (
	"fmt"
	"time"
)

// FormatElapsed renders a duration as zero-padded MM:SS. Durations are
// expected to stay under an hour; minutes keep counting past 59 rather than
// rolling over.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
