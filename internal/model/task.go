package model

import "time"

// Task represents a single item on the board.
type Task struct {
	ID          uint `gorm:"primaryKey"`
	Title       string
	Description string
	Completed   bool `gorm:"default:false"`
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
