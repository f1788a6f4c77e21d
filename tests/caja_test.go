package tests

import (
	"context"
	"testing"

	"github.com/Nikise23/optica-mia/internal/dto"
	"github.com/Nikise23/optica-mia/internal/model"
	"github.com/Nikise23/optica-mia/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sembrarPago(e *pagoEnv, recetaID uuid.UUID, metodo, monto, fecha string) {
	_ = e.pagos.CreateTx(nil, &model.Pago{
		RecetaID:   recetaID,
		MetodoPago: metodo,
		Monto:      decimal.RequireFromString(monto),
		Fecha:      fechaDe(fecha),
	})
}

func TestCajaAutoAperturaConTotalesEnCero(t *testing.T) {
	e := newPagoEnv()

	resp, err := e.cajaSvc.Obtener(context.Background(), fechaDe("2026-03-02"))
	require.NoError(t, err)

	assert.True(t, resp.Abierta)
	assert.Equal(t, "2026-03-02", resp.Fecha)
	assert.True(t, resp.Totales.General.IsZero())

	// The lazy open persisted a row.
	assert.Len(t, e.caja.dias, 1)
}

func TestCierreCalculaTotalesPorMetodo(t *testing.T) {
	e := newPagoEnv()
	receta := e.sembrarReceta(t, "1000")
	sembrarPago(e, receta.ID, "Efectivo", "150", "2026-03-02")
	sembrarPago(e, receta.ID, "Tarjeta", "50", "2026-03-02")

	resp, err := e.cajaSvc.Cerrar(context.Background(), fechaDe("2026-03-02"))
	require.NoError(t, err)

	assert.False(t, resp.Abierta)
	assert.Equal(t, "150.00", resp.Totales.Efectivo.StringFixed(2))
	assert.Equal(t, "50.00", resp.Totales.Tarjeta.StringFixed(2))
	assert.Equal(t, "0.00", resp.Totales.Transferencia.StringFixed(2))
	assert.Equal(t, "200.00", resp.Totales.General.StringFixed(2))
}

func TestCierreAgrupaVariantesDeTarjetaYDesconocidos(t *testing.T) {
	e := newPagoEnv()
	receta := e.sembrarReceta(t, "1000")
	sembrarPago(e, receta.ID, "debito", "30", "2026-03-02")
	sembrarPago(e, receta.ID, "CREDITO", "20", "2026-03-02")
	sembrarPago(e, receta.ID, "cheque", "15", "2026-03-02")

	resp, err := e.cajaSvc.Cerrar(context.Background(), fechaDe("2026-03-02"))
	require.NoError(t, err)

	// debito/credito fold into tarjeta; unknown methods count only in General.
	assert.Equal(t, "50.00", resp.Totales.Tarjeta.StringFixed(2))
	assert.Equal(t, "0.00", resp.Totales.Efectivo.StringFixed(2))
	assert.Equal(t, "65.00", resp.Totales.General.StringFixed(2))
}

func TestReabrirConservaTotalesCongelados(t *testing.T) {
	e := newPagoEnv()
	receta := e.sembrarReceta(t, "1000")
	sembrarPago(e, receta.ID, "efectivo", "100", "2026-03-02")
	ctx := context.Background()

	_, err := e.cajaSvc.Cerrar(ctx, fechaDe("2026-03-02"))
	require.NoError(t, err)

	resp, err := e.cajaSvc.Reabrir(ctx, fechaDe("2026-03-02"))
	require.NoError(t, err)

	assert.True(t, resp.Abierta)
	assert.Equal(t, "100.00", resp.Totales.General.StringFixed(2))

	require.NoError(t, e.cajaSvc.VerificarAbierta(ctx, fechaDe("2026-03-02")))
}

func TestRecerrarRecalculaDesdeLosPagosActuales(t *testing.T) {
	e := newPagoEnv()
	receta := e.sembrarReceta(t, "1000")
	sembrarPago(e, receta.ID, "efectivo", "100", "2026-03-02")
	sembrarPago(e, receta.ID, "efectivo", "60", "2026-03-02")
	ctx := context.Background()

	primero, err := e.cajaSvc.Cerrar(ctx, fechaDe("2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, "160.00", primero.Totales.General.StringFixed(2))

	// Drop one pago and reopen; closing again must ignore the stale totals.
	for id, p := range e.pagos.pagos {
		if p.Monto.Equal(decimal.NewFromInt(60)) {
			delete(e.pagos.pagos, id)
		}
	}
	_, err = e.cajaSvc.Reabrir(ctx, fechaDe("2026-03-02"))
	require.NoError(t, err)

	segundo, err := e.cajaSvc.Cerrar(ctx, fechaDe("2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, "100.00", segundo.Totales.General.StringFixed(2))
}

func TestCerrarDiaSinMovimientos(t *testing.T) {
	e := newPagoEnv()

	resp, err := e.cajaSvc.Cerrar(context.Background(), fechaDe("2026-03-02"))
	require.NoError(t, err)
	assert.False(t, resp.Abierta)
	assert.Equal(t, "0.00", resp.Totales.General.StringFixed(2))
}

func TestGastoGateadoPorCaja(t *testing.T) {
	e := newPagoEnv()
	gastoSvc := service.NewGastoService(e.gastos, e.cajaSvc, nil)
	ctx := context.Background()

	_, err := e.cajaSvc.Cerrar(ctx, fechaDe("2026-03-02"))
	require.NoError(t, err)

	_, err = gastoSvc.Crear(ctx, dto.CrearGastoRequest{
		Fecha:     "2026-03-02",
		Categoria: "insumos",
		Monto:     decimal.NewFromInt(40),
	})
	require.ErrorIs(t, err, service.ErrCajaCerrada)

	// Open day works; deleting afterwards is not gated even once closed.
	resp, err := gastoSvc.Crear(ctx, dto.CrearGastoRequest{
		Fecha:     "2026-03-03",
		Categoria: "insumos",
		Monto:     decimal.NewFromInt(40),
	})
	require.NoError(t, err)

	_, err = e.cajaSvc.Cerrar(ctx, fechaDe("2026-03-03"))
	require.NoError(t, err)
	require.NoError(t, gastoSvc.Eliminar(ctx, uuid.MustParse(resp.ID)))
}
