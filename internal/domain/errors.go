package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrSessionActive      = errors.New("ya existe una sesión de inventario activa para el sector")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
	ErrNotAssigned        = errors.New("usuario no asignado a la sesión")
	ErrInvalidRole        = errors.New("rol no permitido para la operación")
	ErrIncompleteCount    = errors.New("conteo incompleto")
)

// InsufficientStockError identifica el producto y el faltante cuando una salida
// excede el stock disponible. Compatible con errors.Is(err, ErrInsufficientStock).
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: solicitado %d, disponible %d (faltante %d)",
		e.ProductID, e.Requested, e.Available, e.Requested-e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// SessionAlreadyActiveError identifica el sector con una sesión no terminal en curso.
type SessionAlreadyActiveError struct {
	SectorID  string
	SessionID string
}

func (e *SessionAlreadyActiveError) Error() string {
	return fmt.Sprintf("el sector %s ya tiene la sesión de inventario %s activa", e.SectorID, e.SessionID)
}

func (e *SessionAlreadyActiveError) Is(target error) bool { return target == ErrSessionActive }

// InvalidTransitionError describe un cambio de estado no permitido en la sesión.
type InvalidTransitionError struct {
	SessionID string
	From      string
	To        string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("sesión %s: transición inválida %s -> %s", e.SessionID, e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// NotAssignedError indica que el usuario no es uno de los dos contadores asignados.
type NotAssignedError struct {
	SessionID string
	UserID    string
}

func (e *NotAssignedError) Error() string {
	return fmt.Sprintf("el usuario %s no está asignado a la sesión %s", e.UserID, e.SessionID)
}

func (e *NotAssignedError) Is(target error) bool { return target == ErrNotAssigned }

// RoleError indica que el rol del usuario no habilita la operación solicitada.
type RoleError struct {
	UserID   string
	Role     string
	Required string
}

func (e *RoleError) Error() string {
	return fmt.Sprintf("el usuario %s tiene rol %s; la operación requiere rol %s", e.UserID, e.Role, e.Required)
}

func (e *RoleError) Is(target error) bool { return target == ErrInvalidRole }

// IncompleteCountError detalla cuántos productos siguen sin conteo de cada contador.
type IncompleteCountError struct {
	SessionID    string
	MissingFromA int
	MissingFromB int
}

func (e *IncompleteCountError) Error() string {
	return fmt.Sprintf("sesión %s: faltan conteos (%d del contador A, %d del contador B)",
		e.SessionID, e.MissingFromA, e.MissingFromB)
}

func (e *IncompleteCountError) Is(target error) bool { return target == ErrIncompleteCount }
