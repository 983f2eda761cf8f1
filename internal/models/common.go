package models

import "time"

// AuditFields holds the audit columns shared by every table.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// Name is the JSON shape of one localized name in a names column.
type Name struct {
	Name     string `json:"name"`
	Language string `json:"language"`
}
