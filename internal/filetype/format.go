package filetype

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatSize renders a byte count as e.g. "1.5 KB", using base 1024 and at
// most two decimals.
func FormatSize(bytes uint64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	value := math.Round(float64(bytes)/math.Pow(1024, float64(i))*100) / 100
	return humanize.FtoaWithDigits(value, 2) + " " + sizeUnits[i]
}

// FormatOpenedAt renders a timestamp relative to now the way the recent
// files list shows it.
func FormatOpenedAt(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))
	switch {
	case days <= 1:
		return "Today"
	case days == 2:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days-1)
	default:
		return t.Local().Format("2006-01-02")
	}
}
