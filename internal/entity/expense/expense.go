package expense

import (
	"fmt"
	"time"
)

// Timestamp layouts used in the expense file. Records written by the
// authenticated tracker carry seconds, legacy single-user files do not.
const (
	TimeLayout       = "2006-01-02 15:04:05"
	LegacyTimeLayout = "2006-01-02 15:04"
)

type Record struct {
	// CreatedText is the timestamp exactly as stored. It is rendered
	// verbatim and never reformatted.
	CreatedText string
	// AmountText is the stored amount field. Kept next to the parsed
	// value because a row whose amount does not parse is still shown
	// (as 0.00) and counted as zero.
	AmountText string
	Amount     float64
	Category   string
	Note       string
}

// Render returns the display string for the record. Delete operations
// match on this exact text, so the format must stay stable.
func (r Record) Render() string {
	return fmt.Sprintf("%s | ₹%.2f | %s (%s)", r.CreatedText, r.Amount, r.Category, r.Note)
}

// CreatedAt parses the stored timestamp. The second return is false for
// timestamps that match neither layout.
func (r Record) CreatedAt() (time.Time, bool) {
	if t, err := time.Parse(TimeLayout, r.CreatedText); err == nil {
		return t, true
	}
	if t, err := time.Parse(LegacyTimeLayout, r.CreatedText); err == nil {
		return t, true
	}
	return time.Time{}, false
}
