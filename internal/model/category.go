package model

import "time"

const (
	MaxCategoryNameLen        = 100
	MaxCategoryDescriptionLen = 500
)

type Category struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type UpdateCategoryParams struct {
	Name        *string
	Description *string
}
