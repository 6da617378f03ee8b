package store

import "github.com/vinay71-re/MEDBUD/internal/models"

// transitionMap is the single source of truth for legal queue actions. A token
// can only be called while waiting, completed while in progress, and cancelled
// while waiting; completed and cancelled are terminal.
var transitionMap = map[string][]string{
	"call":     {models.StatusWaiting},
	"complete": {models.StatusInProgress},
	"cancel":   {models.StatusWaiting},
}

// targetStatus maps each action to the status it moves a token into.
var targetStatus = map[string]string{
	"call":     models.StatusInProgress,
	"complete": models.StatusCompleted,
	"cancel":   models.StatusCancelled,
}

func ValidTransition(action, fromStatus string) bool {
	allowed, ok := transitionMap[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == fromStatus {
			return true
		}
	}
	return false
}

func TargetStatus(action string) (string, bool) {
	status, ok := targetStatus[action]
	return status, ok
}
