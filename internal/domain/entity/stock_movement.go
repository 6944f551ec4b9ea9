package entity

import "time"

// Pools de stock tocados por una asignación.
const (
	PoolUnsectorized = "UNSECTORIZED" // remanente sin sector asignado
	PoolSector       = "SECTOR"       // fila producto+sector
)

// StockMovement es una línea del recibo de asignación persistida para auditoría.
// TransactionID agrupa todas las líneas de una misma llamada al motor.
type StockMovement struct {
	ID            string
	TransactionID string
	CompanyID     string
	ProductID     string
	SectorID      *string // nil para el pool sin sectorizar
	Pool          string  // PoolUnsectorized | PoolSector
	Quantity      int     // positivo entrada, negativo salida
	Resulting     int     // cantidad resultante del pool tocado
	RowDeleted    bool    // true si la fila de sector quedó en 0 y fue eliminada
	Reason        string
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string
}
