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

type recetaEnv struct {
	*pagoEnv
	recetaSvc service.RecetaService
}

func newRecetaEnv() *recetaEnv {
	e := newPagoEnv()
	return &recetaEnv{
		pagoEnv:   e,
		recetaSvc: service.NewRecetaService(e.recetas, e.pagos, e.pacientes, e.medicos, e.productos),
	}
}

func (e *recetaEnv) sembrarPaciente(t *testing.T) *model.Paciente {
	t.Helper()
	p := &model.Paciente{Nombre: "Ana", Apellido: "Gomez", DNI: "30111222"}
	require.NoError(t, e.pacientes.Create(context.Background(), p))
	return p
}

func (e *recetaEnv) sembrarArmazon(t *testing.T, cantidad int) *model.Producto {
	t.Helper()
	p := &model.Producto{
		Codigo:         "ARM-" + uuid.NewString()[:8],
		Nombre:         "Armazon Vulk",
		Categoria:      "armazon",
		PrecioUnitario: decimal.NewFromInt(90),
		Cantidad:       cantidad,
		StockMinimo:    0,
	}
	require.NoError(t, e.productos.Create(context.Background(), p))
	return p
}

func ptr(s string) *string { return &s }

func TestCrearRecetaReservaUnaUnidadDeArmazon(t *testing.T) {
	e := newRecetaEnv()
	paciente := e.sembrarPaciente(t)
	armazon := e.sembrarArmazon(t, 1)
	ctx := context.Background()

	resp, err := e.recetaSvc.Crear(ctx, dto.CrearRecetaRequest{
		PacienteID: paciente.ID.String(),
		Fecha:      "2026-03-02",
		Total:      decimal.NewFromInt(500),
		ArmazonID:  ptr(armazon.ID.String()),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, armazon.Cantidad)
	require.NotNil(t, resp.Armazon)
	assert.Equal(t, "Armazon Vulk", *resp.Armazon)

	// Same frame on a second receta: out of stock, quantity untouched.
	_, err = e.recetaSvc.Crear(ctx, dto.CrearRecetaRequest{
		PacienteID: paciente.ID.String(),
		Fecha:      "2026-03-02",
		Total:      decimal.NewFromInt(400),
		ArmazonID:  ptr(armazon.ID.String()),
	})
	require.ErrorIs(t, err, service.ErrSinStock)
	assert.Equal(t, 0, armazon.Cantidad)
}

func TestCrearRecetaSinStockNoPersisteLaReceta(t *testing.T) {
	e := newRecetaEnv()
	paciente := e.sembrarPaciente(t)
	armazon := e.sembrarArmazon(t, 0)

	_, err := e.recetaSvc.Crear(context.Background(), dto.CrearRecetaRequest{
		PacienteID: paciente.ID.String(),
		Fecha:      "2026-03-02",
		Total:      decimal.NewFromInt(500),
		ArmazonID:  ptr(armazon.ID.String()),
	})
	require.ErrorIs(t, err, service.ErrSinStock)
	assert.Empty(t, e.recetas.recetas)
	assert.Equal(t, 0, armazon.Cantidad)
}

func TestActualizarRecetaCambiaDeArmazon(t *testing.T) {
	e := newRecetaEnv()
	paciente := e.sembrarPaciente(t)
	viejo := e.sembrarArmazon(t, 2)
	nuevo := e.sembrarArmazon(t, 1)
	ctx := context.Background()

	resp, err := e.recetaSvc.Crear(ctx, dto.CrearRecetaRequest{
		PacienteID: paciente.ID.String(),
		Fecha:      "2026-03-02",
		Total:      decimal.NewFromInt(500),
		ArmazonID:  ptr(viejo.ID.String()),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, viejo.Cantidad)

	_, err = e.recetaSvc.Actualizar(ctx, uuid.MustParse(resp.ID), dto.ActualizarRecetaRequest{
		Fecha:     "2026-03-02",
		ArmazonID: ptr(nuevo.ID.String()),
	})
	require.NoError(t, err)

	// The old unit returns, the new one is reserved.
	assert.Equal(t, 2, viejo.Cantidad)
	assert.Equal(t, 0, nuevo.Cantidad)
}

func TestActualizarRecetaDesvinculaArmazon(t *testing.T) {
	e := newRecetaEnv()
	paciente := e.sembrarPaciente(t)
	armazon := e.sembrarArmazon(t, 1)
	ctx := context.Background()

	resp, err := e.recetaSvc.Crear(ctx, dto.CrearRecetaRequest{
		PacienteID: paciente.ID.String(),
		Fecha:      "2026-03-02",
		Total:      decimal.NewFromInt(500),
		ArmazonID:  ptr(armazon.ID.String()),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, armazon.Cantidad)

	actualizado, err := e.recetaSvc.Actualizar(ctx, uuid.MustParse(resp.ID), dto.ActualizarRecetaRequest{
		Fecha: "2026-03-02",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, armazon.Cantidad)
	assert.Nil(t, actualizado.ArmazonID)
}

func TestActualizarSinCambioDeArmazonNoTocaStock(t *testing.T) {
	e := newRecetaEnv()
	paciente := e.sembrarPaciente(t)
	armazon := e.sembrarArmazon(t, 1)
	ctx := context.Background()

	resp, err := e.recetaSvc.Crear(ctx, dto.CrearRecetaRequest{
		PacienteID: paciente.ID.String(),
		Fecha:      "2026-03-02",
		Total:      decimal.NewFromInt(500),
		ArmazonID:  ptr(armazon.ID.String()),
	})
	require.NoError(t, err)

	_, err = e.recetaSvc.Actualizar(ctx, uuid.MustParse(resp.ID), dto.ActualizarRecetaRequest{
		Fecha:         "2026-03-05",
		ArmazonID:     ptr(armazon.ID.String()),
		Observaciones: ptr("cliente pasa a retirar"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, armazon.Cantidad)
}

func TestEliminarRecetaBorraSusPagos(t *testing.T) {
	e := newRecetaEnv()
	paciente := e.sembrarPaciente(t)
	armazon := e.sembrarArmazon(t, 1)
	ctx := context.Background()

	resp, err := e.recetaSvc.Crear(ctx, dto.CrearRecetaRequest{
		PacienteID: paciente.ID.String(),
		Fecha:      "2026-03-02",
		Total:      decimal.NewFromInt(500),
		ArmazonID:  ptr(armazon.ID.String()),
	})
	require.NoError(t, err)
	recetaID := uuid.MustParse(resp.ID)

	_, err = e.pagoSvc.Registrar(ctx, recetaID, dto.RegistrarPagoRequest{
		MetodoPago: "efectivo",
		Monto:      decimal.NewFromInt(200),
		Fecha:      "2026-03-02",
	})
	require.NoError(t, err)

	require.NoError(t, e.recetaSvc.Eliminar(ctx, recetaID))
	assert.Empty(t, e.recetas.recetas)
	assert.Empty(t, e.pagos.pagos)

	// The reserved unit is not restored on delete.
	assert.Equal(t, 0, armazon.Cantidad)
}

func TestCrearRecetaConPacienteInexistente(t *testing.T) {
	e := newRecetaEnv()

	_, err := e.recetaSvc.Crear(context.Background(), dto.CrearRecetaRequest{
		PacienteID: uuid.NewString(),
		Fecha:      "2026-03-02",
		Total:      decimal.NewFromInt(500),
	})
	require.ErrorIs(t, err, service.ErrNoEncontrado)
}

func TestCrearRecetaConMedicoInexistente(t *testing.T) {
	e := newRecetaEnv()
	paciente := e.sembrarPaciente(t)

	_, err := e.recetaSvc.Crear(context.Background(), dto.CrearRecetaRequest{
		PacienteID: paciente.ID.String(),
		MedicoID:   ptr(uuid.NewString()),
		Fecha:      "2026-03-02",
		Total:      decimal.NewFromInt(500),
	})
	require.ErrorIs(t, err, service.ErrNoEncontrado)
}
