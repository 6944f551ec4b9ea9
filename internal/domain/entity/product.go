package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// TotalStock es siempre la suma del remanente sin sectorizar más las cantidades
// por sector (SectorStock); el motor de asignación mantiene ese invariante.
// SectorTag es una etiqueta informativa del último sector asignado y se limpia
// cuando el stock llega a 0.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta unitario
	TotalStock  int
	SectorTag   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
