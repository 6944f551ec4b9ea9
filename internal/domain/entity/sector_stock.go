package entity

import "time"

// SectorStock representa la cantidad de un producto ubicada físicamente en un sector.
// Una fila con cantidad <= 0 nunca se persiste: se elimina al llegar a cero.
type SectorStock struct {
	ProductID string
	SectorID  string
	Quantity  int
	UpdatedAt time.Time
}
