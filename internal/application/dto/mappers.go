package dto

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// NewProductResponse mapea la entidad a su DTO de salida.
func NewProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Category:     p.Category,
		Unit:         p.Unit,
		MinStock:     p.MinStock,
		MaxStock:     p.MaxStock,
		CurrentStock: p.CurrentStock,
		UnitPrice:    p.UnitPrice,
		ImageURL:     p.ImageURL,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// NewMovementResponse mapea un movimiento del ledger.
func NewMovementResponse(m *entity.StockMovement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		BeforeStock: m.BeforeStock,
		AfterStock:  m.AfterStock,
		OperatorID:  m.OperatorID,
		Supplier:    m.Supplier,
		Department:  m.Department,
		BatchNo:     m.BatchNo,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt,
	}
}

// NewMovementDetailResponse mapea un movimiento con datos de producto y operador.
func NewMovementDetailResponse(d *entity.StockMovementDetail) MovementResponse {
	out := *NewMovementResponse(&d.StockMovement)
	out.ProductName = d.ProductName
	out.ProductCode = d.ProductCode
	out.OperatorName = d.OperatorName
	return out
}

// NewMovementListResponse mapea un listado de movimientos (nunca items nil).
func NewMovementListResponse(list []*entity.StockMovementDetail) *MovementListResponse {
	items := make([]MovementResponse, 0, len(list))
	for _, d := range list {
		items = append(items, NewMovementDetailResponse(d))
	}
	return &MovementListResponse{Items: items, Total: len(items)}
}

// NewAlertResponse mapea una alerta con datos del producto.
func NewAlertResponse(a *entity.AlertDetail) AlertResponse {
	return AlertResponse{
		ID:           a.ID,
		ProductID:    a.ProductID,
		ProductName:  a.ProductName,
		ProductCode:  a.ProductCode,
		CurrentStock: a.CurrentStock,
		Type:         a.Type,
		Message:      a.Message,
		IsRead:       a.IsRead,
		CreatedAt:    a.CreatedAt,
	}
}

// NewUserResponse mapea un usuario sin exponer el hash.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// NewOperationLogResponse mapea una entrada del log.
func NewOperationLogResponse(l *entity.OperationLog) OperationLogResponse {
	return OperationLogResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		UserEmail: l.UserEmail,
		UserName:  l.UserName,
		Action:    l.Action,
		Module:    l.Module,
		Details:   l.Details,
		IPAddress: l.IPAddress,
		CreatedAt: l.CreatedAt,
	}
}
