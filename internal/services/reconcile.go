package services

import "tablemate/internal/models"

// ReconcileStatus derives an order's composite status from its kitchen and
// bar ticket statuses. An empty set vacuously satisfies the all-SERVED and
// all-READY predicates, so an order with tickets on one station alone tracks
// that station. Callers must not invoke it with zero tickets overall; an
// order without tickets keeps its self-managed status.
func ReconcileStatus(kitchen, bar []models.Status) models.Status {
	if allHave(kitchen, models.StatusServed) && allHave(bar, models.StatusServed) {
		return models.StatusServed
	}
	if allHave(kitchen, models.StatusReady) && allHave(bar, models.StatusReady) {
		return models.StatusReady
	}
	if anyHas(kitchen, models.StatusInProgress) || anyHas(bar, models.StatusInProgress) {
		return models.StatusInProgress
	}
	return models.StatusPending
}

func allHave(statuses []models.Status, want models.Status) bool {
	for _, s := range statuses {
		if s != want {
			return false
		}
	}
	return true
}

func anyHas(statuses []models.Status, want models.Status) bool {
	for _, s := range statuses {
		if s == want {
			return true
		}
	}
	return false
}
