package models

// Task is a single to-do item. Lower Priority values sort first in
// listings. OwnerID ties the task to exactly one user; every query and
// mutation must filter on it.
type Task struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Priority  int    `json:"priority"`
	OwnerID   int64  `json:"user_id"`
	Completed bool   `json:"completed"`
}
