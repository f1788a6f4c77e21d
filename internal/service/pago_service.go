package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Nikise23/optica-mia/internal/dto"
	"github.com/Nikise23/optica-mia/internal/infra"
	"github.com/Nikise23/optica-mia/internal/model"
	"github.com/Nikise23/optica-mia/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// epsilonSaldo is the tolerance applied to the balance check: a pago is
// rejected when its net contribution exceeds saldo + 1e-6.
var epsilonSaldo = decimal.New(1, -6)

var cien = decimal.NewFromInt(100)

// PagoService implements the partial-payment rules against a receta:
//
//   - The FIRST pago of a receta that carries a discount folds that discount
//     permanently into Receta.Total (total *= 1 - descuento/100); the pago's
//     own amount shrinks by the same factor and is stored with descuento = 0.
//     The discount lives in the total from then on, never on the pago row, so
//     it can never be counted twice. The fold happens at most once per receta
//     (Receta.DescuentoAplicado), even if every pago is later deleted.
//   - Cumulative net pagos may never exceed the (possibly already reduced)
//     total; a violating pago fails with ErrSaldoInsuficiente and leaves the
//     stored state untouched.
//   - Creation is gated on the pago date's register day being open; deletion
//     is not gated.
type PagoService interface {
	Registrar(ctx context.Context, recetaID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	EstadoCuenta(ctx context.Context, recetaID uuid.UUID) (*dto.EstadoCuentaResponse, error)
}

type pagoService struct {
	repo    repository.PagoRepository
	recetas repository.RecetaRepository
	caja    CajaService
	cache   *infra.ReporteCache
}

func NewPagoService(
	repo repository.PagoRepository,
	recetas repository.RecetaRepository,
	caja CajaService,
	cache *infra.ReporteCache,
) PagoService {
	return &pagoService{repo: repo, recetas: recetas, caja: caja, cache: cache}
}

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode with in-memory repos).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Registrar ─────────────────────────────────────────────────────────────────

func (s *pagoService) Registrar(ctx context.Context, recetaID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error) {
	if req.Descuento.IsNegative() || req.Descuento.GreaterThan(cien) {
		return nil, fmt.Errorf("%w: descuento fuera de rango 0-100", ErrValidacion)
	}
	if !req.Monto.IsPositive() {
		return nil, fmt.Errorf("%w: monto debe ser positivo", ErrValidacion)
	}
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha inválida %q", ErrValidacion, req.Fecha)
	}

	receta, err := s.recetas.FindByID(ctx, recetaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: receta %s", ErrNoEncontrado, recetaID)
		}
		return nil, err
	}

	// Gate on the register day of the pago's date (auto-opened when absent).
	if err := s.caja.VerificarAbierta(ctx, fecha); err != nil {
		return nil, err
	}

	existentes, err := s.repo.ListByReceta(ctx, recetaID)
	if err != nil {
		return nil, err
	}

	// One-shot discount fold on the receta's first pago: both the receta
	// total and the pago amount shrink by the same factor, and the pago is
	// stored with descuento 0 so the discount can never be counted twice.
	total := receta.Total
	monto := req.Monto
	descuento := req.Descuento
	aplicarFold := len(existentes) == 0 && !receta.DescuentoAplicado && descuento.IsPositive()
	if aplicarFold {
		total = total.Mul(cien.Sub(descuento)).Div(cien).Round(2)
		monto = monto.Mul(cien.Sub(descuento)).Div(cien).Round(2)
		descuento = decimal.Zero
	}

	pagadoNeto := decimal.Zero
	for i := range existentes {
		pagadoNeto = pagadoNeto.Add(existentes[i].Neto())
	}
	saldo := total.Sub(pagadoNeto)

	neto := monto.Mul(cien.Sub(descuento)).Div(cien)
	if neto.GreaterThan(saldo.Add(epsilonSaldo)) {
		return nil, fmt.Errorf("%w: saldo %s, pago neto %s",
			ErrSaldoInsuficiente, saldo.StringFixed(2), neto.StringFixed(2))
	}

	pago := &model.Pago{
		RecetaID:   recetaID,
		MetodoPago: req.MetodoPago,
		Monto:      monto,
		Descuento:  descuento,
		Fecha:      normalizarFecha(fecha),
	}

	// Pago row and (when folding) the reduced receta total commit together.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if aplicarFold {
			if err := s.recetas.UpdateTotalTx(tx, recetaID, total, true); err != nil {
				return err
			}
		}
		return s.repo.CreateTx(tx, pago)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.cache.InvalidarDiario(ctx, pago.Fecha)

	return pagoToResponse(pago), nil
}

// ── Eliminar ──────────────────────────────────────────────────────────────────
// Not gated on the register day state; a close after a deletion simply
// recomputes totals without the deleted pago.

func (s *pagoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	pago, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: pago %s", ErrNoEncontrado, id)
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidarDiario(ctx, pago.Fecha)
	return nil
}

// ── EstadoCuenta ──────────────────────────────────────────────────────────────

func (s *pagoService) EstadoCuenta(ctx context.Context, recetaID uuid.UUID) (*dto.EstadoCuentaResponse, error) {
	receta, err := s.recetas.FindByID(ctx, recetaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: receta %s", ErrNoEncontrado, recetaID)
		}
		return nil, err
	}

	pagos, err := s.repo.ListByReceta(ctx, recetaID)
	if err != nil {
		return nil, err
	}

	resp := &dto.EstadoCuentaResponse{
		RecetaID: recetaID.String(),
		Total:    receta.Total,
		Pagado:   decimal.Zero,
		Pagos:    make([]dto.PagoResponse, 0, len(pagos)),
	}
	for i := range pagos {
		resp.Pagado = resp.Pagado.Add(pagos[i].Neto())
		resp.Pagos = append(resp.Pagos, *pagoToResponse(&pagos[i]))
	}
	resp.Saldo = receta.Total.Sub(resp.Pagado)
	return resp, nil
}

func pagoToResponse(p *model.Pago) *dto.PagoResponse {
	return &dto.PagoResponse{
		ID:         p.ID.String(),
		RecetaID:   p.RecetaID.String(),
		MetodoPago: p.MetodoPago,
		Monto:      p.Monto,
		Descuento:  p.Descuento,
		Neto:       p.Neto(),
		Fecha:      p.Fecha.Format("2006-01-02"),
	}
}
