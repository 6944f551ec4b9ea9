package dto

import "time"

// AllocateStockRequest entrada para aplicar un delta al libro de stock.
// Delta positivo entra al pool sin sectorizar; negativo sale según el orden
// de extracción del motor.
type AllocateStockRequest struct {
	Delta  int    `json:"delta" validate:"required"`
	Reason string `json:"reason" validate:"required,min=1,max=200"`
}

// AssignSectorRequest entrada para mover unidades entre el pool sin
// sectorizar y una fila de sector.
type AssignSectorRequest struct {
	SectorID string `json:"sector_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// ReceiptLineResponse una línea del recibo de asignación.
type ReceiptLineResponse struct {
	Pool       string `json:"pool"`
	SectorID   string `json:"sector_id,omitempty"`
	Quantity   int    `json:"quantity"`
	Resulting  int    `json:"resulting"`
	RowDeleted bool   `json:"row_deleted,omitempty"`
}

// AllocationReceiptResponse recibo ordenado de una asignación.
type AllocationReceiptResponse struct {
	TransactionID string                `json:"transaction_id"`
	ProductID     string                `json:"product_id"`
	Delta         int                   `json:"delta"`
	Reason        string                `json:"reason"`
	Lines         []ReceiptLineResponse `json:"lines"`
}

// ConsistencyReportResponse estado del libro de stock de un producto.
type ConsistencyReportResponse struct {
	ProductID    string   `json:"product_id"`
	TotalStock   int      `json:"total_stock"`
	SectorSum    int      `json:"sector_sum"`
	Unsectorized int      `json:"unsectorized"`
	NegativeRows []string `json:"negative_rows,omitempty"`
	ZeroRows     []string `json:"zero_rows,omitempty"`
	IsConsistent bool     `json:"is_consistent"`
	Details      []string `json:"details,omitempty"`
}

// StockMovementResponse una línea persistida del rastro de asignaciones.
type StockMovementResponse struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	ProductID     string    `json:"product_id"`
	SectorID      *string   `json:"sector_id,omitempty"`
	Pool          string    `json:"pool"`
	Quantity      int       `json:"quantity"`
	Resulting     int       `json:"resulting"`
	RowDeleted    bool      `json:"row_deleted,omitempty"`
	Reason        string    `json:"reason"`
	Date          time.Time `json:"date"`
	CreatedBy     string    `json:"created_by"`
}

// SectorStockResponse una fila producto+sector del libro.
type SectorStockResponse struct {
	ProductID string    `json:"product_id"`
	SectorID  string    `json:"sector_id"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}
