// Package integrations ingests pick tasks from external WMS exports.
package integrations

import (
	"io"

	"pickroute/internal/model"
)

// TaskSource defines the minimal interface for pick-task import adapters.
type TaskSource interface {
	Name() string
	ParseTasks(r io.Reader) ([]model.PickTaskIn, error)
}

// ParseTasksCSV parses a CSV task export with the default adapter.
func ParseTasksCSV(r io.Reader) ([]model.PickTaskIn, error) {
	return CSVAdapter{}.ParseTasks(r)
}
