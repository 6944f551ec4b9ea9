package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un detalle de conteo.
const (
	DetailPendiente  = "PENDIENTE"  // sin conteos
	DetailContado1   = "CONTADO_1"  // un contador ya registró
	DetailDiferencia = "DIFERENCIA" // ambos contaron y no coinciden
	DetailConciliado = "CONCILIADO" // ambos contaron y el detalle quedó resuelto
)

// CountDetail es el registro por producto de una ronda de conteo de una sesión.
// SystemStock y UnitPrice son instantáneas tomadas al crear la sesión (el alcance
// queda congelado). CountA/CountB quedan nil hasta que cada contador registra.
// Las rondas anteriores se marcan Superseded, nunca se eliminan.
type CountDetail struct {
	ID                string
	SessionID         string
	ProductID         string
	Round             int
	SystemStock       int
	UnitPrice         decimal.Decimal
	CountA            *int
	CountB            *int
	FormulaA          string // justificación libre del contador A
	FormulaB          string
	DiffBetweenCounts *int // CountB - CountA, calculado con ambos presentes
	FinalQuantity     *int
	DiffVsSystem      *int
	ValueOfDiff       decimal.Decimal
	Estado            string
	Eliminado         bool // soft delete: fila retirada antes de finalizar
	Superseded        bool // ronda anterior reemplazada por un reconteo
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsActive indica si el detalle cuenta para el cierre de la sesión.
func (d *CountDetail) IsActive() bool { return !d.Eliminado && !d.Superseded }

// IsComplete indica si ambos contadores ya registraron su cantidad.
func (d *CountDetail) IsComplete() bool { return d.CountA != nil && d.CountB != nil }

// HasDiscrepancy indica si los dos conteos difieren (con ambos presentes).
func (d *CountDetail) HasDiscrepancy() bool {
	return d.DiffBetweenCounts != nil && *d.DiffBetweenCounts != 0
}
