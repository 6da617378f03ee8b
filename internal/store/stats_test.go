package store

import (
	"testing"

	"github.com/vinay71-re/MEDBUD/internal/models"
)

func TestComputeQueueStats(t *testing.T) {
	tokens := []models.Token{
		{TokenNumber: 1, Status: models.StatusCompleted},
		{TokenNumber: 2, Status: models.StatusCompleted},
		{TokenNumber: 3, Status: models.StatusInProgress},
		{TokenNumber: 4, Status: models.StatusWaiting},
		{TokenNumber: 5, Status: models.StatusWaiting},
		{TokenNumber: 6, Status: models.StatusCancelled},
	}

	stats := ComputeQueueStats(tokens)
	if stats.Total != 6 {
		t.Fatalf("total=%d, want 6", stats.Total)
	}
	if stats.Completed != 2 {
		t.Fatalf("completed=%d, want 2", stats.Completed)
	}
	if stats.Waiting != 2 {
		t.Fatalf("waiting=%d, want 2", stats.Waiting)
	}
}

func TestComputeQueueStatsEmpty(t *testing.T) {
	stats := ComputeQueueStats(nil)
	if stats != (QueueStats{}) {
		t.Fatalf("empty queue should yield zero stats, got %+v", stats)
	}
}

func TestComputeQueueStatsCancelledNotWaiting(t *testing.T) {
	tokens := []models.Token{
		{TokenNumber: 1, Status: models.StatusCancelled},
	}
	stats := ComputeQueueStats(tokens)
	if stats.Total != 1 || stats.Waiting != 0 || stats.Completed != 0 {
		t.Fatalf("cancelled token miscounted: %+v", stats)
	}
}
