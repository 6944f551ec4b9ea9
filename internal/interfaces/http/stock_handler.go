package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sectorial-api/internal/application/dto"
	appstock "github.com/jhoicas/sectorial-api/internal/application/stock"
	"github.com/jhoicas/sectorial-api/internal/domain/entity"
	domstock "github.com/jhoicas/sectorial-api/internal/domain/stock"
)

// StockHandler expone el motor de asignación por HTTP: entradas y salidas con
// recibo, sectorización, verificación de consistencia y compactación.
type StockHandler struct {
	allocateUC    *appstock.AllocateUseCase
	assignUC      *appstock.AssignSectorUseCase
	consistencyUC *appstock.ConsistencyUseCase
	queryUC       *appstock.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	allocateUC *appstock.AllocateUseCase,
	assignUC *appstock.AssignSectorUseCase,
	consistencyUC *appstock.ConsistencyUseCase,
	queryUC *appstock.StockQueryUseCase,
) *StockHandler {
	return &StockHandler{allocateUC: allocateUC, assignUC: assignUC, consistencyUC: consistencyUC, queryUC: queryUC}
}

// Allocate godoc
// @Summary      Aplicar entrada o salida de stock
// @Description  Delta positivo entra al pool sin sectorizar; negativo sale en el orden de extracción del motor. Devuelve el recibo de la asignación.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AllocateStockRequest  true  "Delta y motivo"
// @Success      200  {object}  dto.AllocationReceiptResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/allocations [post]
func (h *StockHandler) Allocate(c *fiber.Ctx) error {
	productID := c.Params("id")
	var in dto.AllocateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Delta == 0 || in.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "delta distinto de cero y reason son requeridos"})
	}
	receipt, err := h.allocateUC.Allocate(c.UserContext(), GetCompanyID(c), GetUserID(c), productID, in.Delta, in.Reason)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toReceiptResponse(receipt))
}

// AssignSector godoc
// @Summary      Sectorizar stock
// @Description  Mueve unidades del pool sin sectorizar a la fila del sector. El stock total no cambia.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AssignSectorRequest  true  "Sector y cantidad"
// @Success      200  {object}  dto.AllocationReceiptResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/sectorize [post]
func (h *StockHandler) AssignSector(c *fiber.Ctx) error {
	productID := c.Params("id")
	var in dto.AssignSectorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	receipt, err := h.assignUC.AssignToSector(c.UserContext(), GetCompanyID(c), GetUserID(c), productID, in.SectorID, in.Quantity)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toReceiptResponse(receipt))
}

// ReturnToUnsectorized godoc
// @Summary      Devolver stock al pool sin sectorizar
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AssignSectorRequest  true  "Sector y cantidad"
// @Success      200  {object}  dto.AllocationReceiptResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/desectorize [post]
func (h *StockHandler) ReturnToUnsectorized(c *fiber.Ctx) error {
	productID := c.Params("id")
	var in dto.AssignSectorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	receipt, err := h.assignUC.ReturnToUnsectorized(c.UserContext(), GetCompanyID(c), GetUserID(c), productID, in.SectorID, in.Quantity)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toReceiptResponse(receipt))
}

// Verify godoc
// @Summary      Verificar consistencia del libro de stock
// @Description  Recalcula la suma por sectores contra el stock total. Solo reporta, nunca corrige.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ConsistencyReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/consistency [get]
func (h *StockHandler) Verify(c *fiber.Ctx) error {
	report, err := h.consistencyUC.Verify(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ConsistencyReportResponse{
		ProductID:    report.ProductID,
		TotalStock:   report.TotalStock,
		SectorSum:    report.SectorSum,
		Unsectorized: report.Unsectorized,
		NegativeRows: report.NegativeRows,
		ZeroRows:     report.ZeroRows,
		IsConsistent: report.IsConsistent,
		Details:      report.Details,
	})
}

// Compact godoc
// @Summary      Compactar el libro de stock de un producto
// @Description  Elimina filas de sector con cantidad <= 0 y limpia la etiqueta de sector si el total quedó en 0. Idempotente.
// @Tags         stock
// @Security     Bearer
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/compact [post]
func (h *StockHandler) Compact(c *fiber.Ctx) error {
	if err := h.consistencyUC.Compact(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PruneOrphans godoc
// @Summary      Eliminar filas de sector huérfanas
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /api/stock/prune-orphans [post]
func (h *StockHandler) PruneOrphans(c *fiber.Ctx) error {
	pruned, err := h.consistencyUC.PruneOrphans(c.UserContext())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"pruned": pruned})
}

// ListProductSectors godoc
// @Summary      Listar filas de sector de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.SectorStockResponse
// @Router       /api/products/{id}/sectors [get]
func (h *StockHandler) ListProductSectors(c *fiber.Ctx) error {
	rows, err := h.queryUC.ListProductSectors(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toSectorStockResponses(rows))
}

// ListSectorStock godoc
// @Summary      Listar stock presente en un sector
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del sector"
// @Success      200  {array}  dto.SectorStockResponse
// @Router       /api/sectors/{id}/stock [get]
func (h *StockHandler) ListSectorStock(c *fiber.Ctx) error {
	rows, err := h.queryUC.ListSectorStock(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toSectorStockResponses(rows))
}

// ListMovements godoc
// @Summary      Listar el rastro de asignaciones de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/products/{id}/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	movements, err := h.queryUC.ListMovements(c.UserContext(), GetCompanyID(c), c.Params("id"), limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toMovementResponses(movements))
}

// GetReceipt godoc
// @Summary      Obtener las líneas persistidas de un recibo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        txId  path  string  true  "ID de transacción del recibo"
// @Success      200  {array}  dto.StockMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/receipts/{txId} [get]
func (h *StockHandler) GetReceipt(c *fiber.Ctx) error {
	movements, err := h.queryUC.GetReceipt(c.UserContext(), GetCompanyID(c), c.Params("txId"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toMovementResponses(movements))
}

func toReceiptResponse(r *domstock.AllocationReceipt) dto.AllocationReceiptResponse {
	lines := make([]dto.ReceiptLineResponse, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, dto.ReceiptLineResponse{
			Pool:       l.Pool,
			SectorID:   l.SectorID,
			Quantity:   l.Quantity,
			Resulting:  l.Resulting,
			RowDeleted: l.RowDeleted,
		})
	}
	return dto.AllocationReceiptResponse{
		TransactionID: r.TransactionID,
		ProductID:     r.ProductID,
		Delta:         r.Delta,
		Reason:        r.Reason,
		Lines:         lines,
	}
}

func toSectorStockResponses(rows []entity.SectorStock) []dto.SectorStockResponse {
	out := make([]dto.SectorStockResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.SectorStockResponse{
			ProductID: row.ProductID,
			SectorID:  row.SectorID,
			Quantity:  row.Quantity,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out
}

func toMovementResponses(movements []*entity.StockMovement) []dto.StockMovementResponse {
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.StockMovementResponse{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			ProductID:     m.ProductID,
			SectorID:      m.SectorID,
			Pool:          m.Pool,
			Quantity:      m.Quantity,
			Resulting:     m.Resulting,
			RowDeleted:    m.RowDeleted,
			Reason:        m.Reason,
			Date:          m.Date,
			CreatedBy:     m.CreatedBy,
		})
	}
	return out
}
