// Package model defines the domain models for Workflowr.
package model

// Record keys under which each collection is persisted as a JSON list.
const (
	KeyPrefix      = "workflowr-"
	KeyProjects    = "workflowr-projects"
	KeyTasks       = "workflowr-tasks"
	KeyTimeHistory = "workflowr-time-history"
)

// RecordKeys lists every persisted record, in load order.
var RecordKeys = []string{KeyProjects, KeyTasks, KeyTimeHistory}

// Identifiable is implemented by every entity that is stored in a collection.
type Identifiable interface {
	// GetID returns the entity identifier.
	GetID() string
}

// IndexOf returns the position of the entity with the given ID, or -1.
func IndexOf[T Identifiable](items []T, id string) int {
	for i, item := range items {
		if item.GetID() == id {
			return i
		}
	}
	return -1
}
