package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/application/inventory"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// StockHandler expone el ledger de movimientos y los saldos de stock
// (protegido). Las escrituras van al caso de uso transaccional; las lecturas
// al de consultas.
type StockHandler struct {
	movementUC  *inventory.CreateMovementUseCase
	reconcileUC *inventory.ReconcileUseCase
	queryUC     *inventory.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	movementUC *inventory.CreateMovementUseCase,
	reconcileUC *inventory.ReconcileUseCase,
	queryUC *inventory.StockQueryUseCase,
) *StockHandler {
	return &StockHandler{movementUC: movementUC, reconcileUC: reconcileUC, queryUC: queryUC}
}

// CreateMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  IN/OUT/TRANSFER. Un traslado materializa dos movimientos (débito en origen, crédito en destino) en una transacción.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) CreateMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.ProductID == "" || in.WarehouseID == "" {
		return badRequest(c, "VALIDATION", "product_id y warehouse_id son requeridos")
	}
	if !entity.ValidMovementType(in.MovementType) {
		return badRequest(c, "VALIDATION", "movement_type debe ser IN, OUT o TRANSFER")
	}
	if !entity.ValidReason(in.Reason) {
		return badRequest(c, "VALIDATION", "reason no soportado")
	}
	movement, err := h.movementUC.CreateMovement(c.UserContext(), inventory.MovementInput{
		CompanyID:         GetCompanyID(c),
		AccountID:         GetUserID(c),
		ProductID:         in.ProductID,
		WarehouseID:       in.WarehouseID,
		ToWarehouseID:     in.ToWarehouseID,
		MovementType:      in.MovementType,
		Quantity:          in.Quantity,
		Reason:            in.Reason,
		ReferenceDocument: in.ReferenceDocument,
		Notes:             in.Notes,
		UnitCost:          in.UnitCost,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// Adjust godoc
// @Summary      Ajustar stock a una cantidad objetivo
// @Description  Deriva un movimiento IN u OUT por la diferencia con el saldo actual, con motivo adjustment.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "Ajuste"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements/adjustment [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.ProductID == "" || in.WarehouseID == "" {
		return badRequest(c, "VALIDATION", "product_id y warehouse_id son requeridos")
	}
	movement, err := h.movementUC.Adjust(c.UserContext(), inventory.AdjustmentInput{
		CompanyID:   GetCompanyID(c),
		AccountID:   GetUserID(c),
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		NewQuantity: in.NewQuantity,
		Notes:       in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// GetMovement godoc
// @Summary      Obtener movimiento por ID
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/{id} [get]
func (h *StockHandler) GetMovement(c *fiber.Ctx) error {
	movement, err := h.queryUC.GetMovement(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementResponse(movement))
}

// ListMovements godoc
// @Summary      Listar movimientos de la empresa
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        movement_type  query  string  false  "IN | OUT | TRANSFER"
// @Param        reason         query  string  false  "Motivo"
// @Param        from           query  string  false  "Fecha desde (RFC3339 o YYYY-MM-DD)"
// @Param        to             query  string  false  "Fecha hasta (RFC3339 o YYYY-MM-DD)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	filter := repository.MovementFilter{
		MovementType: c.Query("movement_type"),
		Reason:       c.Query("reason"),
		Limit:        limit,
		Offset:       offset,
	}
	var err error
	if filter.From, err = parseDateQuery(c.Query("from")); err != nil {
		return badRequest(c, "VALIDATION", "from: fecha inválida")
	}
	if filter.To, err = parseDateQuery(c.Query("to")); err != nil {
		return badRequest(c, "VALIDATION", "to: fecha inválida")
	}
	movements, err := h.queryUC.ListMovements(c.UserContext(), GetCompanyID(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, *toMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// DeleteMovement godoc
// @Summary      Eliminar movimiento (siempre rechazado)
// @Description  El ledger es append-only: la corrección se hace con un ajuste, nunca borrando.
// @Tags         stock
// @Security     Bearer
// @Param        id  path  string  true  "ID del movimiento"
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/{id} [delete]
func (h *StockHandler) DeleteMovement(c *fiber.Ctx) error {
	err := h.movementUC.DeleteMovement(c.UserContext(), c.Params("id"))
	return respondError(c, err)
}

// Summary godoc
// @Summary      Resumen de movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha desde"
// @Param        to    query  string  false  "Fecha hasta"
// @Success      200   {object}  dto.MovementSummaryResponse
// @Router       /api/stock/movements/summary [get]
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return badRequest(c, "VALIDATION", "from: fecha inválida")
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return badRequest(c, "VALIDATION", "to: fecha inválida")
	}
	summary, err := h.queryUC.Summary(c.UserContext(), GetCompanyID(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MovementSummaryResponse{
		TotalMovements: summary.TotalMovements,
		TotalIn:        summary.TotalIn,
		TotalOut:       summary.TotalOut,
		TotalTransfers: summary.TotalTransfers,
		ByType:         summary.ByType,
		ByReason:       summary.ByReason,
	})
}

// Recent godoc
// @Summary      Movimientos recientes
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        days   query  int  false  "Días hacia atrás"  default(7)
// @Param        limit  query  int  false  "Límite"            default(50)
// @Success      200    {array}  dto.MovementResponse
// @Router       /api/stock/movements/recent [get]
func (h *StockHandler) Recent(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	limit := c.QueryInt("limit", 50)
	movements, err := h.queryUC.Recent(c.UserContext(), GetCompanyID(c), days, limit)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, *toMovementResponse(m))
	}
	return c.JSON(items)
}

// GetRecord godoc
// @Summary      Obtener saldo de stock por ID
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.StockRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/records/{id} [get]
func (h *StockHandler) GetRecord(c *fiber.Ctx) error {
	record, err := h.queryUC.GetRecord(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockRecordResponse(record))
}

// ListRecords godoc
// @Summary      Listar saldos de stock de la empresa
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {object}  dto.StockRecordListResponse
// @Router       /api/stock/records [get]
func (h *StockHandler) ListRecords(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	var records []*entity.StockRecord
	var err error
	if warehouseID := c.Query("warehouse_id"); warehouseID != "" {
		records, err = h.queryUC.ListRecordsByWarehouse(c.UserContext(), GetCompanyID(c), warehouseID, limit, offset)
	} else {
		records, err = h.queryUC.ListRecords(c.UserContext(), GetCompanyID(c), limit, offset)
	}
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.StockRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, *toStockRecordResponse(r))
	}
	return c.JSON(dto.StockRecordListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// MovementHistory godoc
// @Summary      Historial completo de un registro de stock
// @Description  Movimientos en orden cronológico ascendente (el orden de reconciliación).
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {array}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/records/{id}/movements [get]
func (h *StockHandler) MovementHistory(c *fiber.Ctx) error {
	movements, err := h.queryUC.MovementHistory(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, *toMovementResponse(m))
	}
	return c.JSON(items)
}

// ProductStock godoc
// @Summary      Saldos de un producto en todas sus bodegas
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.StockRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [get]
func (h *StockHandler) ProductStock(c *fiber.Ctx) error {
	records, err := h.queryUC.RecordsByProduct(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.StockRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, *toStockRecordResponse(r))
	}
	return c.JSON(items)
}

// ProductMovements godoc
// @Summary      Historial de movimientos de un producto
// @Description  Movimientos de todas las bodegas del producto, registro por registro en orden ascendente.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *StockHandler) ProductMovements(c *fiber.Ctx) error {
	movements, err := h.queryUC.MovementsByProduct(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, *toMovementResponse(m))
	}
	return c.JSON(items)
}

// WarehouseInventory godoc
// @Summary      Inventario de una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.StockRecordListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/inventory [get]
func (h *StockHandler) WarehouseInventory(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	records, err := h.queryUC.ListRecordsByWarehouse(c.UserContext(), GetCompanyID(c), c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.StockRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, *toStockRecordResponse(r))
	}
	return c.JSON(dto.StockRecordListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// Reconcile godoc
// @Summary      Reconciliar un saldo contra su historial
// @Description  Recalcula el saldo reproduciendo todos los movimientos y lo corrige si hay deriva.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/records/{id}/reconcile [post]
func (h *StockHandler) Reconcile(c *fiber.Ctx) error {
	recordID := c.Params("id")
	result, err := h.reconcileUC.Reconcile(c.UserContext(), GetCompanyID(c), recordID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReconcileResponse{
		StockRecordID: recordID,
		Reconciled:    result.Reconciled,
		OldQuantity:   result.OldQuantity,
		NewQuantity:   result.NewQuantity,
		Difference:    result.Difference,
	})
}

// parseDateQuery acepta RFC3339 o YYYY-MM-DD; cadena vacía devuelve nil.
func parseDateQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:                m.ID,
		StockRecordID:     m.StockRecordID,
		MovementType:      m.MovementType,
		Quantity:          m.Quantity,
		ResultingBalance:  m.ResultingBalance,
		Reason:            m.Reason,
		AccountID:         m.AccountID,
		UnitCost:          m.UnitCost,
		ReferenceDocument: m.ReferenceDocument,
		Notes:             m.Notes,
		FromWarehouseID:   m.FromWarehouseID,
		ToWarehouseID:     m.ToWarehouseID,
		CreatedAt:         m.CreatedAt,
	}
}

func toStockRecordResponse(r *entity.StockRecord) *dto.StockRecordResponse {
	if r == nil {
		return nil
	}
	return &dto.StockRecordResponse{
		ID:              r.ID,
		ProductID:       r.ProductID,
		WarehouseID:     r.WarehouseID,
		CurrentQuantity: r.CurrentQuantity,
		IsActive:        r.IsActive,
		UpdatedAt:       r.UpdatedAt,
	}
}
