package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/ports"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func TestGenerateMovementReport_GeneraPDF(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	report := ports.MovementReport{
		Title:       "Reporte de movimientos",
		GeneratedAt: time.Now(),
		From:        &from,
		Movements: []*entity.StockMovementDetail{
			{
				StockMovement: entity.StockMovement{ID: 1, ProductID: 1, Type: entity.MovementTypeIn, Quantity: 50, BeforeStock: 0, AfterStock: 50, CreatedAt: time.Now()},
				ProductName:   "Tornillo 3/8",
				ProductCode:   "P001",
				OperatorName:  "Ana",
			},
			{
				StockMovement: entity.StockMovement{ID: 2, ProductID: 1, Type: entity.MovementTypeOut, Quantity: 45, BeforeStock: 50, AfterStock: 5, CreatedAt: time.Now()},
				ProductName:   "Tornillo 3/8",
				ProductCode:   "P001",
			},
		},
	}

	out, err := NewMovementReportGenerator().GenerateMovementReport(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestGenerateMovementReport_SinMovimientos(t *testing.T) {
	out, err := NewMovementReportGenerator().GenerateMovementReport(context.Background(),
		ports.MovementReport{Title: "Vacío", GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateMovementReport_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMovementReportGenerator().GenerateMovementReport(ctx, ports.MovementReport{Title: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatQty(t *testing.T) {
	assert.Equal(t, "0", formatQty(0))
	assert.Equal(t, "999", formatQty(999))
	assert.Equal(t, "1.000", formatQty(1000))
	assert.Equal(t, "1.000.000", formatQty(1000000))
	assert.Equal(t, "-12.345", formatQty(-12345))
}

func TestPeriodLabel(t *testing.T) {
	d := time.Date(2026, 3, 5, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "todo el historial", periodLabel(nil, nil))
	assert.Equal(t, "desde 05/03/2026", periodLabel(&d, nil))
	assert.Equal(t, "hasta 05/03/2026", periodLabel(nil, &d))
	assert.Equal(t, "05/03/2026 a 05/03/2026", periodLabel(&d, &d))
}
