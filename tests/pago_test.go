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

// pagoEnv bundles the stub repos and services for payment tests.
type pagoEnv struct {
	pacientes *stubPacienteRepo
	medicos   *stubMedicoRepo
	productos *stubProductoRepo
	recetas   *stubRecetaRepo
	pagos     *stubPagoRepo
	gastos    *stubGastoRepo
	caja      *stubCajaRepo
	cajaSvc   service.CajaService
	pagoSvc   service.PagoService
}

func newPagoEnv() *pagoEnv {
	e := &pagoEnv{
		pacientes: newStubPacienteRepo(),
		medicos:   newStubMedicoRepo(),
		productos: newStubProductoRepo(),
		gastos:    newStubGastoRepo(),
		caja:      newStubCajaRepo(),
	}
	e.recetas = newStubRecetaRepo(e.pacientes, e.medicos, e.productos)
	e.pagos = newStubPagoRepo(e.recetas)
	e.cajaSvc = service.NewCajaService(e.caja, e.pagos, e.gastos, nil, nil, "", "")
	e.pagoSvc = service.NewPagoService(e.pagos, e.recetas, e.cajaSvc, nil)
	return e
}

// sembrarReceta stores a receta with the given total and returns it.
func (e *pagoEnv) sembrarReceta(t *testing.T, total string) *model.Receta {
	t.Helper()
	paciente := &model.Paciente{Nombre: "Ana", Apellido: "Gomez", DNI: "30111222"}
	require.NoError(t, e.pacientes.Create(context.Background(), paciente))
	receta := &model.Receta{
		PacienteID: paciente.ID,
		Fecha:      fechaDe("2026-03-02"),
		Total:      decimal.RequireFromString(total),
	}
	require.NoError(t, e.recetas.CreateTx(nil, receta))
	return receta
}

func TestPrimerPagoConDescuentoPliegaElTotal(t *testing.T) {
	e := newPagoEnv()
	receta := e.sembrarReceta(t, "1000")
	ctx := context.Background()

	resp, err := e.pagoSvc.Registrar(ctx, receta.ID, dto.RegistrarPagoRequest{
		MetodoPago: "efectivo",
		Monto:      decimal.NewFromInt(1000),
		Descuento:  decimal.NewFromInt(20),
		Fecha:      "2026-03-02",
	})
	require.NoError(t, err)

	// Total and pago amount both shrink by 20%; the pago stores descuento 0.
	assert.Equal(t, "800.00", receta.Total.StringFixed(2))
	assert.True(t, receta.DescuentoAplicado)
	assert.Equal(t, "800.00", resp.Monto.StringFixed(2))
	assert.True(t, resp.Descuento.IsZero())
	assert.Equal(t, "800.00", resp.Neto.StringFixed(2))

	estado, err := e.pagoSvc.EstadoCuenta(ctx, receta.ID)
	require.NoError(t, err)
	assert.Equal(t, "800.00", estado.Pagado.StringFixed(2))
	assert.Equal(t, "0.00", estado.Saldo.StringFixed(2))

	// Balance is exhausted: any further pago must be rejected.
	_, err = e.pagoSvc.Registrar(ctx, receta.ID, dto.RegistrarPagoRequest{
		MetodoPago: "efectivo",
		Monto:      decimal.NewFromInt(1),
		Fecha:      "2026-03-02",
	})
	require.ErrorIs(t, err, service.ErrSaldoInsuficiente)
}

func TestDescuentoNoSePliegaDosVeces(t *testing.T) {
	e := newPagoEnv()
	receta := e.sembrarReceta(t, "1000")
	ctx := context.Background()

	primero, err := e.pagoSvc.Registrar(ctx, receta.ID, dto.RegistrarPagoRequest{
		MetodoPago: "efectivo",
		Monto:      decimal.NewFromInt(100),
		Descuento:  decimal.NewFromInt(10),
		Fecha:      "2026-03-02",
	})
	require.NoError(t, err)
	assert.Equal(t, "900.00", receta.Total.StringFixed(2))
	assert.Equal(t, "90.00", primero.Neto.StringFixed(2))

	// Deleting every pago does not re-arm the fold.
	require.NoError(t, e.pagoSvc.Eliminar(ctx, uuid.MustParse(primero.ID)))

	segundo, err := e.pagoSvc.Registrar(ctx, receta.ID, dto.RegistrarPagoRequest{
		MetodoPago: "efectivo",
		Monto:      decimal.NewFromInt(100),
		Descuento:  decimal.NewFromInt(50),
		Fecha:      "2026-03-02",
	})
	require.NoError(t, err)

	// Total untouched; this pago keeps its own per-payment discount.
	assert.Equal(t, "900.00", receta.Total.StringFixed(2))
	assert.Equal(t, "50.00", segundo.Descuento.StringFixed(2))
	assert.Equal(t, "50.00", segundo.Neto.StringFixed(2))
}

func TestPagoSinDescuentoNoTocaElTotal(t *testing.T) {
	e := newPagoEnv()
	receta := e.sembrarReceta(t, "500")
	ctx := context.Background()

	_, err := e.pagoSvc.Registrar(ctx, receta.ID, dto.RegistrarPagoRequest{
		MetodoPago: "tarjeta",
		Monto:      decimal.NewFromInt(200),
		Fecha:      "2026-03-02",
	})
	require.NoError(t, err)

	assert.Equal(t, "500.00", receta.Total.StringFixed(2))
	assert.False(t, receta.DescuentoAplicado)

	// A later pago with a discount still does not fold: the fold belongs to
	// the FIRST pago only.
	resp, err := e.pagoSvc.Registrar(ctx, receta.ID, dto.RegistrarPagoRequest{
		MetodoPago: "tarjeta",
		Monto:      decimal.NewFromInt(100),
		Descuento:  decimal.NewFromInt(10),
		Fecha:      "2026-03-02",
	})
	require.NoError(t, err)
	assert.Equal(t, "500.00", receta.Total.StringFixed(2))
	assert.Equal(t, "90.00", resp.Neto.StringFixed(2))
}

func TestPagoQueExcedeSaldoNoMutaNada(t *testing.T) {
	e := newPagoEnv()
	receta := e.sembrarReceta(t, "300")
	ctx := context.Background()

	_, err := e.pagoSvc.Registrar(ctx, receta.ID, dto.RegistrarPagoRequest{
		MetodoPago: "efectivo",
		Monto:      decimal.NewFromInt(301),
		Fecha:      "2026-03-02",
	})
	require.ErrorIs(t, err, service.ErrSaldoInsuficiente)

	assert.Empty(t, e.pagos.pagos)
	assert.Equal(t, "300.00", receta.Total.StringFixed(2))
	assert.False(t, receta.DescuentoAplicado)
}

func TestPagoConCajaCerradaFalla(t *testing.T) {
	e := newPagoEnv()
	receta := e.sembrarReceta(t, "300")
	ctx := context.Background()

	_, err := e.cajaSvc.Cerrar(ctx, fechaDe("2026-03-02"))
	require.NoError(t, err)

	_, err = e.pagoSvc.Registrar(ctx, receta.ID, dto.RegistrarPagoRequest{
		MetodoPago: "efectivo",
		Monto:      decimal.NewFromInt(50),
		Fecha:      "2026-03-02",
	})
	require.ErrorIs(t, err, service.ErrCajaCerrada)

	// A different, open date is unaffected.
	_, err = e.pagoSvc.Registrar(ctx, receta.ID, dto.RegistrarPagoRequest{
		MetodoPago: "efectivo",
		Monto:      decimal.NewFromInt(50),
		Fecha:      "2026-03-03",
	})
	require.NoError(t, err)
}

func TestEliminarPagoIgnoraEstadoDeCaja(t *testing.T) {
	e := newPagoEnv()
	receta := e.sembrarReceta(t, "300")
	ctx := context.Background()

	resp, err := e.pagoSvc.Registrar(ctx, receta.ID, dto.RegistrarPagoRequest{
		MetodoPago: "efectivo",
		Monto:      decimal.NewFromInt(300),
		Fecha:      "2026-03-02",
	})
	require.NoError(t, err)

	_, err = e.cajaSvc.Cerrar(ctx, fechaDe("2026-03-02"))
	require.NoError(t, err)

	// Deletion stays allowed on a closed day; the saldo grows back.
	require.NoError(t, e.pagoSvc.Eliminar(ctx, uuid.MustParse(resp.ID)))

	estado, err := e.pagoSvc.EstadoCuenta(ctx, receta.ID)
	require.NoError(t, err)
	assert.Equal(t, "300.00", estado.Saldo.StringFixed(2))
}

func TestPagoSobreRecetaInexistente(t *testing.T) {
	e := newPagoEnv()

	_, err := e.pagoSvc.Registrar(context.Background(), uuid.New(), dto.RegistrarPagoRequest{
		MetodoPago: "efectivo",
		Monto:      decimal.NewFromInt(10),
		Fecha:      "2026-03-02",
	})
	require.ErrorIs(t, err, service.ErrNoEncontrado)
}

func TestPagoValidaciones(t *testing.T) {
	e := newPagoEnv()
	receta := e.sembrarReceta(t, "100")
	ctx := context.Background()

	_, err := e.pagoSvc.Registrar(ctx, receta.ID, dto.RegistrarPagoRequest{
		MetodoPago: "efectivo",
		Monto:      decimal.NewFromInt(-5),
		Fecha:      "2026-03-02",
	})
	require.ErrorIs(t, err, service.ErrValidacion)

	_, err = e.pagoSvc.Registrar(ctx, receta.ID, dto.RegistrarPagoRequest{
		MetodoPago: "efectivo",
		Monto:      decimal.NewFromInt(10),
		Descuento:  decimal.NewFromInt(101),
		Fecha:      "2026-03-02",
	})
	require.ErrorIs(t, err, service.ErrValidacion)

	_, err = e.pagoSvc.Registrar(ctx, receta.ID, dto.RegistrarPagoRequest{
		MetodoPago: "efectivo",
		Monto:      decimal.NewFromInt(10),
		Fecha:      "02/03/2026",
	})
	require.ErrorIs(t, err, service.ErrValidacion)
}
