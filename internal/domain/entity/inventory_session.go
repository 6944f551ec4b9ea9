package entity

import "time"

// Estados de una sesión de inventario por sector.
// PENDIENTE -> EN_PROGRESO -> CON_DIFERENCIAS | COMPLETADO.
// CON_DIFERENCIAS habilita una nueva ronda de conteo; COMPLETADO es terminal.
const (
	SessionPendiente      = "PENDIENTE"
	SessionEnProgreso     = "EN_PROGRESO"
	SessionConDiferencias = "CON_DIFERENCIAS"
	SessionCompletado     = "COMPLETADO"
)

// InventorySession representa un ciclo de doble conteo ciego de un sector.
// Dos contadores asignados cuentan de forma independiente; las discrepancias
// fuerzan rondas de reconteo. Las sesiones nunca se eliminan físicamente.
type InventorySession struct {
	ID                      string
	CompanyID               string
	SectorID                string
	Estado                  string
	CounterAID              string
	CounterBID              string
	TotalProducts           int
	CountedProducts         int
	ProductsWithDiscrepancy int
	RecountAttempts         int
	PercentComplete         float64
	CreatedBy               string // admin que creó la sesión
	StartedAt               *time.Time
	FinishedAt              *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsTerminal indica si la sesión ya no admite más conteos.
func (s *InventorySession) IsTerminal() bool {
	return s.Estado == SessionCompletado
}

// IsAssigned indica si userID es uno de los dos contadores asignados.
func (s *InventorySession) IsAssigned(userID string) bool {
	return userID != "" && (userID == s.CounterAID || userID == s.CounterBID)
}
