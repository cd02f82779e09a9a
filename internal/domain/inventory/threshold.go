package inventory

import (
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// CheckThreshold evalúa el stock resultante contra los umbrales del producto (servicio de dominio).
// Usa la foto del producto leída antes de actualizar el stock. Devuelve nil si está dentro de rango.
// Bajo mínimo tiene prioridad sobre exceso.
func CheckThreshold(product *entity.Product, afterStock int64) *entity.Alert {
	if product == nil {
		return nil
	}
	switch {
	case afterStock < product.MinStock:
		return &entity.Alert{
			ProductID: product.ID,
			Type:      entity.AlertTypeLowStock,
			Message: fmt.Sprintf("Producto %s con stock bajo: actual %d, mínimo %d",
				product.Name, afterStock, product.MinStock),
		}
	case afterStock > product.MaxStock:
		return &entity.Alert{
			ProductID: product.ID,
			Type:      entity.AlertTypeHighStock,
			Message: fmt.Sprintf("Producto %s con exceso de stock: actual %d, máximo %d",
				product.Name, afterStock, product.MaxStock),
		}
	}
	return nil
}
