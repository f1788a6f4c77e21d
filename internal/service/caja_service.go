package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Nikise23/optica-mia/internal/dto"
	"github.com/Nikise23/optica-mia/internal/infra"
	"github.com/Nikise23/optica-mia/internal/model"
	"github.com/Nikise23/optica-mia/internal/repository"
	"github.com/Nikise23/optica-mia/internal/worker"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CajaService manages the daily register lifecycle:
//
//	(auto-open) → Abierta → Cerrar → Cerrada → Reabrir → Abierta → …
//
// A date with no row is auto-opened with zero totals the first time it is
// consulted. Cerrar freezes per-method net totals from that day's pagos and
// may be repeated (each close recomputes from the pagos that exist at that
// moment). Reabrir only flips the flag. While a day is Cerrada, pago and
// gasto creation for that date is rejected; deletion stays allowed.
type CajaService interface {
	Obtener(ctx context.Context, fecha time.Time) (*dto.CajaDiaResponse, error)
	Cerrar(ctx context.Context, fecha time.Time) (*dto.CajaDiaResponse, error)
	Reabrir(ctx context.Context, fecha time.Time) (*dto.CajaDiaResponse, error)
	// VerificarAbierta is called by PagoService and GastoService before any
	// money-movement creation for the given date.
	VerificarAbierta(ctx context.Context, fecha time.Time) error
}

type cajaService struct {
	repo       repository.CajaRepository
	pagos      repository.PagoRepository
	gastos     repository.GastoRepository
	dispatcher *worker.Dispatcher
	cache      *infra.ReporteCache
	pdfPath    string
	reporteTo  string
}

func NewCajaService(
	repo repository.CajaRepository,
	pagos repository.PagoRepository,
	gastos repository.GastoRepository,
	dispatcher *worker.Dispatcher,
	cache *infra.ReporteCache,
	pdfPath, reporteTo string,
) CajaService {
	return &cajaService{
		repo:       repo,
		pagos:      pagos,
		gastos:     gastos,
		dispatcher: dispatcher,
		cache:      cache,
		pdfPath:    pdfPath,
		reporteTo:  reporteTo,
	}
}

// ── Obtener ───────────────────────────────────────────────────────────────────
// Lazy auto-open: consulting a date with no record creates it, zero totals,
// abierta. The unique index on fecha keeps a concurrent race to one row.

func (s *cajaService) Obtener(ctx context.Context, fecha time.Time) (*dto.CajaDiaResponse, error) {
	dia, err := s.obtenerODiaNuevo(ctx, normalizarFecha(fecha))
	if err != nil {
		return nil, err
	}
	return cierreToResponse(dia), nil
}

// ── Cerrar ────────────────────────────────────────────────────────────────────

func (s *cajaService) Cerrar(ctx context.Context, fecha time.Time) (*dto.CajaDiaResponse, error) {
	fecha = normalizarFecha(fecha)
	dia, err := s.obtenerODiaNuevo(ctx, fecha)
	if err != nil {
		return nil, err
	}

	totales, err := s.totalesDelDia(ctx, fecha)
	if err != nil {
		return nil, err
	}

	dia.TotalEfectivo = totales.Efectivo
	dia.TotalTarjeta = totales.Tarjeta
	dia.TotalTransferencia = totales.Transferencia
	dia.TotalGeneral = totales.General
	dia.Abierta = false
	if err := s.repo.Update(ctx, dia); err != nil {
		return nil, err
	}

	s.cache.InvalidarDiario(ctx, fecha)
	s.enviarReporteCierre(ctx, dia)

	return cierreToResponse(dia), nil
}

// ── Reabrir ───────────────────────────────────────────────────────────────────
// Flips the flag only: the frozen totals of the previous close stay in place
// until the next Cerrar recomputes them.

func (s *cajaService) Reabrir(ctx context.Context, fecha time.Time) (*dto.CajaDiaResponse, error) {
	fecha = normalizarFecha(fecha)
	dia, err := s.obtenerODiaNuevo(ctx, fecha)
	if err != nil {
		return nil, err
	}
	if !dia.Abierta {
		dia.Abierta = true
		if err := s.repo.Update(ctx, dia); err != nil {
			return nil, err
		}
	}
	return cierreToResponse(dia), nil
}

// ── VerificarAbierta ──────────────────────────────────────────────────────────

func (s *cajaService) VerificarAbierta(ctx context.Context, fecha time.Time) error {
	dia, err := s.obtenerODiaNuevo(ctx, normalizarFecha(fecha))
	if err != nil {
		return err
	}
	if !dia.Abierta {
		return fmt.Errorf("%w (%s)", ErrCajaCerrada, fecha.Format("2006-01-02"))
	}
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *cajaService) obtenerODiaNuevo(ctx context.Context, fecha time.Time) (*model.CierreCaja, error) {
	dia, err := s.repo.FindByFecha(ctx, fecha)
	if err == nil {
		return dia, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	nuevo := &model.CierreCaja{
		Fecha:              fecha,
		TotalEfectivo:      decimal.Zero,
		TotalTarjeta:       decimal.Zero,
		TotalTransferencia: decimal.Zero,
		TotalGeneral:       decimal.Zero,
		Abierta:            true,
	}
	if err := s.repo.Create(ctx, nuevo); err != nil {
		return nil, err
	}
	return nuevo, nil
}

// totalesDelDia buckets the day's net pagos into the three canonical methods.
// Unknown methods still count toward General.
func (s *cajaService) totalesDelDia(ctx context.Context, fecha time.Time) (dto.MontosPorMetodo, error) {
	rows, err := s.pagos.SumNetoPorMetodo(ctx, fecha)
	if err != nil {
		return dto.MontosPorMetodo{}, err
	}

	totales := dto.MontosPorMetodo{
		Efectivo:      decimal.Zero,
		Tarjeta:       decimal.Zero,
		Transferencia: decimal.Zero,
		General:       decimal.Zero,
	}
	for _, row := range rows {
		switch bucketMetodo(row.MetodoPago) {
		case "efectivo":
			totales.Efectivo = totales.Efectivo.Add(row.Neto)
		case "tarjeta":
			totales.Tarjeta = totales.Tarjeta.Add(row.Neto)
		case "transferencia":
			totales.Transferencia = totales.Transferencia.Add(row.Neto)
		}
		totales.General = totales.General.Add(row.Neto)
	}
	return totales, nil
}

// bucketMetodo maps a free-text metodo_pago onto one of the three totals
// columns. Card variants (debito/credito) fold into tarjeta.
func bucketMetodo(metodo string) string {
	switch strings.ToLower(strings.TrimSpace(metodo)) {
	case "efectivo":
		return "efectivo"
	case "tarjeta", "debito", "credito":
		return "tarjeta"
	case "transferencia":
		return "transferencia"
	default:
		return ""
	}
}

// enviarReporteCierre generates the cierre PDF and enqueues its email.
// Best effort: a failure here never fails the close itself.
func (s *cajaService) enviarReporteCierre(ctx context.Context, dia *model.CierreCaja) {
	if s.dispatcher == nil || s.reporteTo == "" {
		return
	}

	gastos, err := s.gastos.SumByFecha(ctx, dia.Fecha)
	if err != nil {
		log.Warn().Err(err).Msg("caja: no se pudieron sumar los gastos para el PDF de cierre")
		gastos = decimal.Zero
	}

	pdfPath, err := infra.GenerarCierrePDF(dia, gastos, s.pdfPath)
	if err != nil {
		log.Error().Err(err).Msg("caja: error generando PDF de cierre")
		return
	}

	fecha := dia.Fecha.Format("2006-01-02")
	payload := worker.EmailJobPayload{
		ToEmail: s.reporteTo,
		Subject: "Cierre de caja " + fecha,
		Body:    fmt.Sprintf("Cierre de caja del %s. Total general: %s", fecha, dia.TotalGeneral.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Error().Err(err).Msg("caja: no se pudo encolar el email de cierre")
	}
}

func cierreToResponse(c *model.CierreCaja) *dto.CajaDiaResponse {
	return &dto.CajaDiaResponse{
		Fecha:   c.Fecha.Format("2006-01-02"),
		Abierta: c.Abierta,
		Totales: dto.MontosPorMetodo{
			Efectivo:      c.TotalEfectivo,
			Tarjeta:       c.TotalTarjeta,
			Transferencia: c.TotalTransferencia,
			General:       c.TotalGeneral,
		},
	}
}

// normalizarFecha truncates to a UTC calendar date, the granularity every
// caja, pago and gasto operation works at.
func normalizarFecha(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
