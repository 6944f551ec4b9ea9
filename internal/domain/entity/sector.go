package entity

import "time"

// Sector representa un sector físico de almacenamiento dentro de la empresa.
type Sector struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
