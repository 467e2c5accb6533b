// Package progress derives a project's completion percentage from its task statuses.
package progress

import "github.com/oksasatya/planify/internal/domain/entity"

// Of returns round(100 * done / total) with halves rounded up, or 0 for no tasks.
func Of(statuses []entity.TaskStatus) int {
	total := len(statuses)
	if total == 0 {
		return 0
	}
	done := 0
	for _, s := range statuses {
		if s == entity.StatusDone {
			done++
		}
	}
	// floor(100*done/total + 1/2)
	return (200*done + total) / (2 * total)
}

// OfTasks is Of over the statuses of tasks.
func OfTasks(tasks []entity.Task) int {
	statuses := make([]entity.TaskStatus, len(tasks))
	for i, t := range tasks {
		statuses[i] = t.Status
	}
	return Of(statuses)
}
