package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sectorial-api/internal/application/dto"
	appsession "github.com/jhoicas/sectorial-api/internal/application/session"
	appstock "github.com/jhoicas/sectorial-api/internal/application/stock"
	"github.com/jhoicas/sectorial-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SessionHandler expone el ciclo de doble conteo ciego por HTTP.
type SessionHandler struct {
	uc         *appsession.SessionUseCase
	allocateUC *appstock.AllocateUseCase
}

// NewSessionHandler construye el handler. allocateUC se usa solo para aplicar
// ajustes de sesiones completadas al libro vivo.
func NewSessionHandler(uc *appsession.SessionUseCase, allocateUC *appstock.AllocateUseCase) *SessionHandler {
	return &SessionHandler{uc: uc, allocateUC: allocateUC}
}

// Create godoc
// @Summary      Crear sesión de conteo para un sector
// @Description  Congela el alcance: un detalle por producto presente en el sector, con instantáneas de stock y precio. Solo admin.
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSessionRequest  true  "Sector a contar"
// @Success      201  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SectorID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sector_id es requerido"})
	}
	sessionID, err := h.uc.CreateSession(c.UserContext(), GetCompanyID(c), in.SectorID, GetUserID(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session_id": sessionID})
}

// AssignCounters godoc
// @Summary      Asignar los dos contadores ciegos
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.AssignCountersRequest  true  "Contadores A y B"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/counters [put]
func (h *SessionHandler) AssignCounters(c *fiber.Ctx) error {
	var in dto.AssignCountersRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.AssignCounters(c.UserContext(), GetCompanyID(c), c.Params("id"), in.CounterAID, in.CounterBID); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Start godoc
// @Summary      Iniciar el conteo
// @Tags         sessions
// @Security     Bearer
// @Param        id  path  string  true  "ID de la sesión"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/start [post]
func (h *SessionHandler) Start(c *fiber.Ctx) error {
	if err := h.uc.StartSession(c.UserContext(), GetCompanyID(c), c.Params("id"), GetUserID(c)); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SubmitCount godoc
// @Summary      Registrar un conteo
// @Description  Registra la cantidad contada por el contador autenticado para el producto. El conteo del otro contador nunca se revela mientras la sesión siga abierta.
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.SubmitCountRequest  true  "Producto, cantidad y justificación"
// @Success      200  {object}  dto.CountDetailResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/counts [post]
func (h *SessionHandler) SubmitCount(c *fiber.Ctx) error {
	var in dto.SubmitCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	callerID := GetUserID(c)
	detail, err := h.uc.SubmitCount(c.UserContext(), GetCompanyID(c), c.Params("id"), in.ProductID, callerID, in.Quantity, in.Formula)
	if err != nil {
		return mapDomainError(c, err)
	}
	session, _, err := h.uc.GetSession(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toDetailResponse(detail, session, callerID))
}

// Finalize godoc
// @Summary      Finalizar la ronda de conteo vigente
// @Description  Con discrepancias pasa a CON_DIFERENCIAS y abre una nueva ronda para los productos discrepantes; sin discrepancias cierra en COMPLETADO.
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResultResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/finalize [post]
func (h *SessionHandler) Finalize(c *fiber.Ctx) error {
	result, err := h.uc.FinalizeSession(c.UserContext(), GetCompanyID(c), c.Params("id"), GetUserID(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.SessionResultResponse{
		SessionID:               result.SessionID,
		Estado:                  result.Estado,
		TotalProducts:           result.TotalProducts,
		CountedProducts:         result.CountedProducts,
		ProductsWithDiscrepancy: result.ProductsWithDiscrepancy,
		RecountAttempts:         result.RecountAttempts,
	})
}

// ApplyAdjustments godoc
// @Summary      Aplicar al libro las diferencias de una sesión completada
// @Description  Acción explícita de admin: cada diferencia contra el sistema pasa por el motor de asignación y deja su propio recibo.
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {array}  dto.AllocationReceiptResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/adjustments [post]
func (h *SessionHandler) ApplyAdjustments(c *fiber.Ctx) error {
	receipts, err := h.uc.ApplyAdjustments(c.UserContext(), GetCompanyID(c), c.Params("id"), GetUserID(c), h.allocateUC)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.AllocationReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		out = append(out, toReceiptResponse(r))
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener sesión con sus detalles
// @Description  Mientras la sesión siga abierta, un contador solo ve sus propios conteos (conteo ciego).
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	session, details, err := h.uc.GetSession(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	callerID := GetUserID(c)
	out := dto.SessionDetailResponse{Session: toSessionResponse(session)}
	out.Details = make([]dto.CountDetailResponse, 0, len(details))
	for _, d := range details {
		out.Details = append(out.Details, toDetailResponse(d, session, callerID))
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar sesiones de la empresa
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.SessionListResponse
// @Router       /api/sessions [get]
func (h *SessionHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	sessions, err := h.uc.ListByCompany(c.UserContext(), GetCompanyID(c), limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toSessionListResponse(sessions, limit, offset))
}

// ListMine godoc
// @Summary      Listar sesiones asignadas al usuario autenticado
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.SessionListResponse
// @Router       /api/sessions/mine [get]
func (h *SessionHandler) ListMine(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	sessions, err := h.uc.ListAssignedTo(c.UserContext(), GetCompanyID(c), GetUserID(c), limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toSessionListResponse(sessions, limit, offset))
}

func toSessionResponse(s *entity.InventorySession) dto.SessionResponse {
	return dto.SessionResponse{
		ID:                      s.ID,
		CompanyID:               s.CompanyID,
		SectorID:                s.SectorID,
		Estado:                  s.Estado,
		CounterAID:              s.CounterAID,
		CounterBID:              s.CounterBID,
		TotalProducts:           s.TotalProducts,
		CountedProducts:         s.CountedProducts,
		ProductsWithDiscrepancy: s.ProductsWithDiscrepancy,
		RecountAttempts:         s.RecountAttempts,
		PercentComplete:         s.PercentComplete,
		CreatedBy:               s.CreatedBy,
		StartedAt:               s.StartedAt,
		FinishedAt:              s.FinishedAt,
		CreatedAt:               s.CreatedAt,
		UpdatedAt:               s.UpdatedAt,
	}
}

func toSessionListResponse(sessions []*entity.InventorySession, limit, offset int) dto.SessionListResponse {
	items := make([]dto.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, toSessionResponse(s))
	}
	return dto.SessionListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}
}

// toDetailResponse arma la vista de un detalle respetando el conteo ciego:
// mientras la sesión no esté COMPLETADO, cada contador ve solo su propio
// conteo y ningún campo derivado. El admin y las sesiones cerradas ven todo.
func toDetailResponse(d *entity.CountDetail, s *entity.InventorySession, callerID string) dto.CountDetailResponse {
	out := dto.CountDetailResponse{
		ID:                d.ID,
		SessionID:         d.SessionID,
		ProductID:         d.ProductID,
		Round:             d.Round,
		SystemStock:       d.SystemStock,
		UnitPrice:         d.UnitPrice,
		CountA:            d.CountA,
		CountB:            d.CountB,
		FormulaA:          d.FormulaA,
		FormulaB:          d.FormulaB,
		DiffBetweenCounts: d.DiffBetweenCounts,
		FinalQuantity:     d.FinalQuantity,
		DiffVsSystem:      d.DiffVsSystem,
		ValueOfDiff:       d.ValueOfDiff,
		Estado:            d.Estado,
		Superseded:        d.Superseded,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	if !s.IsTerminal() && s.IsAssigned(callerID) {
		if callerID == s.CounterAID {
			out.CountB, out.FormulaB = nil, ""
		} else {
			out.CountA, out.FormulaA = nil, ""
		}
		out.DiffBetweenCounts, out.FinalQuantity, out.DiffVsSystem = nil, nil, nil
		out.ValueOfDiff = decimal.Zero
	}
	return out
}
