package models

import "time"

// Category is a named, colored grouping a task can belong to
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"unique;not null;size:50"`
	Color     string    `json:"color" gorm:"size:7"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for Category Model
func (Category) TableName() string {
	return "categories"
}

// Tag is a named, colored label attached to tasks many-to-many
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"unique;not null;size:50"`
	Color     string    `json:"color" gorm:"size:7"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for Tag Model
func (Tag) TableName() string {
	return "tags"
}
