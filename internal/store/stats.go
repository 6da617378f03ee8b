package store

import "github.com/vinay71-re/MEDBUD/internal/models"

// QueueStats is the derived view of one doctor's queue for one day. It is
// always recomputed from the full token set, never cached, so out-of-band
// writes cannot make it drift.
type QueueStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Waiting   int `json:"waiting"`
}

func ComputeQueueStats(tokens []models.Token) QueueStats {
	stats := QueueStats{Total: len(tokens)}
	for _, token := range tokens {
		switch token.Status {
		case models.StatusCompleted:
			stats.Completed++
		case models.StatusWaiting:
			stats.Waiting++
		}
	}
	return stats
}
