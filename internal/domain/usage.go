package domain

import "time"

// UsageDays is the length of the usage window shown to users.
const UsageDays = 7

// DailyUsage is the number of words a user produced on one calendar day (UTC).
type DailyUsage struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Name  string `json:"name"` // short weekday, e.g. "Mon"
	Words int    `json:"words"`
}

// UsageSummary is a zero-filled, oldest-first series of daily word counts.
type UsageSummary struct {
	Days       []DailyUsage `json:"days"`
	TotalWords int          `json:"total_words"`
}

// BuildUsageSummary lays words (keyed by YYYY-MM-DD) onto the days ending at
// today, oldest first. Days with no entry are zero.
func BuildUsageSummary(today time.Time, days int, words map[string]int) UsageSummary {
	today = today.UTC()
	summary := UsageSummary{Days: make([]DailyUsage, 0, days)}
	for i := days - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		key := d.Format(time.DateOnly)
		entry := DailyUsage{
			Date:  key,
			Name:  d.Format("Mon"),
			Words: words[key],
		}
		summary.TotalWords += entry.Words
		summary.Days = append(summary.Days, entry)
	}
	return summary
}
