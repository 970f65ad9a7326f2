package domain

import "time"

// Task is a work item owned by an account. Account is a plain back-reference,
// the store does not enforce it.
type Task struct {
	ID       int64     `db:"id"`
	Account  string    `db:"account"`
	DueDate  time.Time `db:"due_date"`
	Content  string    `db:"content"`
	Complete bool      `db:"complete"`
}
