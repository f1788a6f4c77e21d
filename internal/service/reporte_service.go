package service

import (
	"context"
	"encoding/csv"
	"io"
	"sort"
	"time"

	"github.com/Nikise23/optica-mia/internal/dto"
	"github.com/Nikise23/optica-mia/internal/infra"
	"github.com/Nikise23/optica-mia/internal/repository"

	"github.com/shopspring/decimal"
)

// ReporteService is the read side: pure aggregation of net pagos and gross
// gastos over date ranges. Month boundaries are computed with time.Date
// arithmetic, never date-string formatting.
type ReporteService interface {
	Diario(ctx context.Context, fecha time.Time) (*dto.ReporteDiarioResponse, error)
	Mensual(ctx context.Context, anio, mes int) (*dto.ReporteMensualResponse, error)
	// ExportarDia writes one CSV record per pago and gasto of the date:
	// tipo, fecha, paciente, medico, metodo, monto (gastos negative), detalle.
	ExportarDia(ctx context.Context, fecha time.Time, w io.Writer) error
	Dashboard(ctx context.Context, hoy time.Time) (*dto.DashboardResponse, error)
}

type reporteService struct {
	pagos      repository.PagoRepository
	gastos     repository.GastoRepository
	recetas    repository.RecetaRepository
	productos  repository.ProductoRepository
	caja       CajaService
	comisiones ComisionService
	cache      *infra.ReporteCache
}

func NewReporteService(
	pagos repository.PagoRepository,
	gastos repository.GastoRepository,
	recetas repository.RecetaRepository,
	productos repository.ProductoRepository,
	caja CajaService,
	comisiones ComisionService,
	cache *infra.ReporteCache,
) ReporteService {
	return &reporteService{
		pagos:      pagos,
		gastos:     gastos,
		recetas:    recetas,
		productos:  productos,
		caja:       caja,
		comisiones: comisiones,
		cache:      cache,
	}
}

// ── Diario ────────────────────────────────────────────────────────────────────

func (s *reporteService) Diario(ctx context.Context, fecha time.Time) (*dto.ReporteDiarioResponse, error) {
	fecha = normalizarFecha(fecha)

	if cached, ok := s.cache.ObtenerDiario(ctx, fecha); ok {
		return cached, nil
	}

	rows, err := s.pagos.SumNetoPorMetodo(ctx, fecha)
	if err != nil {
		return nil, err
	}
	ingresos := dto.MontosPorMetodo{
		Efectivo:      decimal.Zero,
		Tarjeta:       decimal.Zero,
		Transferencia: decimal.Zero,
		General:       decimal.Zero,
	}
	for _, row := range rows {
		switch bucketMetodo(row.MetodoPago) {
		case "efectivo":
			ingresos.Efectivo = ingresos.Efectivo.Add(row.Neto)
		case "tarjeta":
			ingresos.Tarjeta = ingresos.Tarjeta.Add(row.Neto)
		case "transferencia":
			ingresos.Transferencia = ingresos.Transferencia.Add(row.Neto)
		}
		ingresos.General = ingresos.General.Add(row.Neto)
	}

	gastos, err := s.gastos.SumByFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReporteDiarioResponse{
		Fecha:    fecha.Format("2006-01-02"),
		Ingresos: ingresos,
		Gastos:   gastos,
		Balance:  ingresos.General.Sub(gastos),
	}
	s.cache.GuardarDiario(ctx, fecha, resp)
	return resp, nil
}

// ── Mensual ───────────────────────────────────────────────────────────────────

func (s *reporteService) Mensual(ctx context.Context, anio, mes int) (*dto.ReporteMensualResponse, error) {
	desde := time.Date(anio, time.Month(mes), 1, 0, 0, 0, 0, time.UTC)
	hasta := desde.AddDate(0, 1, 0)

	ingresosRows, err := s.pagos.SumNetoPorFecha(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	gastosRows, err := s.gastos.SumPorFecha(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	comisiones, err := s.comisiones.Calcular(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	// Merge both aggregates on the calendar date.
	type diaAcum struct {
		ingresos decimal.Decimal
		gastos   decimal.Decimal
	}
	dias := make(map[string]*diaAcum)
	ordenadas := make([]string, 0, len(ingresosRows)+len(gastosRows))
	acum := func(fecha time.Time) *diaAcum {
		key := normalizarFecha(fecha).Format("2006-01-02")
		d, ok := dias[key]
		if !ok {
			d = &diaAcum{ingresos: decimal.Zero, gastos: decimal.Zero}
			dias[key] = d
			ordenadas = append(ordenadas, key)
		}
		return d
	}
	for _, row := range ingresosRows {
		d := acum(row.Fecha)
		d.ingresos = d.ingresos.Add(row.Neto)
	}
	for _, row := range gastosRows {
		d := acum(row.Fecha)
		d.gastos = d.gastos.Add(row.Monto)
	}
	// Keys are YYYY-MM-DD, so lexical order is chronological.
	sort.Strings(ordenadas)

	resp := &dto.ReporteMensualResponse{
		Anio:       anio,
		Mes:        mes,
		Dias:       make([]dto.ReporteDiaItem, 0, len(ordenadas)),
		Comisiones: comisiones.Total,
	}
	for _, key := range ordenadas {
		d := dias[key]
		resp.Dias = append(resp.Dias, dto.ReporteDiaItem{
			Fecha:    key,
			Ingresos: d.ingresos,
			Gastos:   d.gastos,
		})
		resp.IngresosTotal = resp.IngresosTotal.Add(d.ingresos)
		resp.GastosTotal = resp.GastosTotal.Add(d.gastos)
	}
	resp.Balance = resp.IngresosTotal.Sub(resp.GastosTotal).Sub(resp.Comisiones)
	return resp, nil
}

// ── ExportarDia ───────────────────────────────────────────────────────────────

func (s *reporteService) ExportarDia(ctx context.Context, fecha time.Time, w io.Writer) error {
	fecha = normalizarFecha(fecha)

	pagos, err := s.pagos.ListByFecha(ctx, fecha)
	if err != nil {
		return err
	}
	gastos, err := s.gastos.ListByFecha(ctx, fecha)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"tipo", "fecha", "paciente", "medico", "metodo", "monto", "detalle"}); err != nil {
		return err
	}

	dia := fecha.Format("2006-01-02")
	for i := range pagos {
		p := &pagos[i]
		paciente, medico := "", ""
		if p.Receta != nil {
			if p.Receta.Paciente != nil {
				paciente = p.Receta.Paciente.Apellido + ", " + p.Receta.Paciente.Nombre
			}
			if p.Receta.Medico != nil {
				medico = p.Receta.Medico.Apellido + ", " + p.Receta.Medico.Nombre
			}
		}
		detalle := "Pago receta " + p.RecetaID.String()
		if err := cw.Write([]string{
			"pago", dia, paciente, medico, p.MetodoPago, p.Neto().StringFixed(2), detalle,
		}); err != nil {
			return err
		}
	}
	for i := range gastos {
		g := &gastos[i]
		detalle := g.Categoria
		if g.Descripcion != nil && *g.Descripcion != "" {
			detalle = g.Categoria + ": " + *g.Descripcion
		}
		if err := cw.Write([]string{
			"gasto", dia, "", "", "", g.Monto.Neg().StringFixed(2), detalle,
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ── Dashboard ─────────────────────────────────────────────────────────────────
// "Today" always arrives from the caller so the service carries no implicit
// clock.

func (s *reporteService) Dashboard(ctx context.Context, hoy time.Time) (*dto.DashboardResponse, error) {
	hoy = normalizarFecha(hoy)
	inicioMes := time.Date(hoy.Year(), hoy.Month(), 1, 0, 0, 0, 0, time.UTC)
	finMes := inicioMes.AddDate(0, 1, 0)

	bajoStock, err := s.productos.ListBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	recetasMes, err := s.recetas.CountByRango(ctx, inicioMes, finMes)
	if err != nil {
		return nil, err
	}
	comisiones, err := s.comisiones.Calcular(ctx, inicioMes, finMes)
	if err != nil {
		return nil, err
	}
	cajaHoy, err := s.caja.Obtener(ctx, hoy)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		BajoStock:  make([]dto.ProductoResponse, 0, len(bajoStock)),
		RecetasMes: recetasMes,
		Comisiones: *comisiones,
		CajaHoy:    cajaHoy,
	}
	for i := range bajoStock {
		resp.BajoStock = append(resp.BajoStock, *productoToResponse(&bajoStock[i]))
	}
	return resp, nil
}
