package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSessionRequest entrada para crear una sesión de conteo de un sector.
type CreateSessionRequest struct {
	SectorID string `json:"sector_id" validate:"required"`
}

// AssignCountersRequest entrada para asignar los dos contadores ciegos.
type AssignCountersRequest struct {
	CounterAID string `json:"counter_a_id" validate:"required"`
	CounterBID string `json:"counter_b_id" validate:"required"`
}

// SubmitCountRequest entrada para registrar el conteo de un producto.
// Formula es la justificación libre del contador (ej. "3 cajas x 12").
type SubmitCountRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=0"`
	Formula   string `json:"formula"`
}

// SessionResponse salida de una sesión de inventario.
type SessionResponse struct {
	ID                      string     `json:"id"`
	CompanyID               string     `json:"company_id"`
	SectorID                string     `json:"sector_id"`
	Estado                  string     `json:"estado"`
	CounterAID              string     `json:"counter_a_id,omitempty"`
	CounterBID              string     `json:"counter_b_id,omitempty"`
	TotalProducts           int        `json:"total_products"`
	CountedProducts         int        `json:"counted_products"`
	ProductsWithDiscrepancy int        `json:"products_with_discrepancy"`
	RecountAttempts         int        `json:"recount_attempts"`
	PercentComplete         float64    `json:"percent_complete"`
	CreatedBy               string     `json:"created_by"`
	StartedAt               *time.Time `json:"started_at,omitempty"`
	FinishedAt              *time.Time `json:"finished_at,omitempty"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// CountDetailResponse salida de un detalle de conteo. Los conteos del otro
// contador se omiten mientras la sesión siga abierta (conteo ciego); el
// handler decide qué campos exponer según el rol del solicitante.
type CountDetailResponse struct {
	ID                string          `json:"id"`
	SessionID         string          `json:"session_id"`
	ProductID         string          `json:"product_id"`
	Round             int             `json:"round"`
	SystemStock       int             `json:"system_stock"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	CountA            *int            `json:"count_a,omitempty"`
	CountB            *int            `json:"count_b,omitempty"`
	FormulaA          string          `json:"formula_a,omitempty"`
	FormulaB          string          `json:"formula_b,omitempty"`
	DiffBetweenCounts *int            `json:"diff_between_counts,omitempty"`
	FinalQuantity     *int            `json:"final_quantity,omitempty"`
	DiffVsSystem      *int            `json:"diff_vs_system,omitempty"`
	ValueOfDiff       decimal.Decimal `json:"value_of_diff"`
	Estado            string          `json:"estado"`
	Superseded        bool            `json:"superseded,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// SessionDetailResponse sesión con sus detalles (todas las rondas).
type SessionDetailResponse struct {
	Session SessionResponse       `json:"session"`
	Details []CountDetailResponse `json:"details"`
}

// SessionResultResponse desenlace de un intento de finalización.
type SessionResultResponse struct {
	SessionID               string `json:"session_id"`
	Estado                  string `json:"estado"`
	TotalProducts           int    `json:"total_products"`
	CountedProducts         int    `json:"counted_products"`
	ProductsWithDiscrepancy int    `json:"products_with_discrepancy"`
	RecountAttempts         int    `json:"recount_attempts"`
}

// SessionListResponse lista paginada de sesiones.
type SessionListResponse struct {
	Items []SessionResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
