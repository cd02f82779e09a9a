package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Acciones registradas en el log de operaciones.
const (
	ActionRegister     = "REGISTER"
	ActionLogin        = "LOGIN"
	ActionCreate       = "CREATE"
	ActionUpdate       = "UPDATE"
	ActionDelete       = "DELETE"
	ActionStockIn      = "STOCK_IN"
	ActionStockOut     = "STOCK_OUT"
	ActionAdjust       = "ADJUST"
	ActionMarkRead     = "MARK_READ"
	ActionMarkAllRead  = "MARK_ALL_READ"
	ActionClearRead    = "CLEAR_READ"
	ActionCleanup      = "CLEANUP"
)

// sideEffects agrupa lo que ocurre después de una operación exitosa: auditoría e
// invalidación de la caché del tablero. Ambos campos pueden ser nil.
type sideEffects struct {
	audit *usecase.AuditUseCase
	dash  *analytics.DashboardUseCase
}

// record escribe en el log con la identidad del token (o la indicada si aún no hay sesión).
func (s sideEffects) record(c *fiber.Ctx, action, module, details string) {
	s.recordAs(c, GetUserID(c), GetEmail(c), action, module, details)
}

func (s sideEffects) recordAs(c *fiber.Ctx, userID int64, email, action, module, details string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(entity.OperationLog{
		UserID:    userID,
		UserEmail: email,
		Action:    action,
		Module:    module,
		Details:   details,
		IPAddress: c.IP(),
	})
}

// changed invalida los KPIs cacheados tras mutar stock, catálogo o alertas.
func (s sideEffects) changed(ctx context.Context) {
	if s.dash != nil {
		s.dash.Invalidate(ctx)
	}
}
