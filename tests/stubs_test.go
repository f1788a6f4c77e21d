package tests

import (
	"context"
	"time"

	"github.com/Nikise23/optica-mia/internal/dto"
	"github.com/Nikise23/optica-mia/internal/model"
	"github.com/Nikise23/optica-mia/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. Methods that take a *gorm.DB tx receive nil in
// unit tests (services fall back to direct calls when DB() returns nil).

func fechaDe(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func mismaFecha(a, b time.Time) bool {
	return a.UTC().Format("2006-01-02") == b.UTC().Format("2006-01-02")
}

func enRango(t, desde, hasta time.Time) bool {
	d := t.UTC().Truncate(24 * time.Hour)
	return !d.Before(desde.UTC().Truncate(24*time.Hour)) && d.Before(hasta.UTC().Truncate(24*time.Hour))
}

// ── stubCajaRepo ──────────────────────────────────────────────────────────────

type stubCajaRepo struct {
	dias map[string]*model.CierreCaja
}

func newStubCajaRepo() *stubCajaRepo {
	return &stubCajaRepo{dias: make(map[string]*model.CierreCaja)}
}

func (r *stubCajaRepo) FindByFecha(_ context.Context, fecha time.Time) (*model.CierreCaja, error) {
	dia, ok := r.dias[fecha.Format("2006-01-02")]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return dia, nil
}

func (r *stubCajaRepo) Create(_ context.Context, c *model.CierreCaja) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.dias[c.Fecha.Format("2006-01-02")] = c
	return nil
}

func (r *stubCajaRepo) Update(_ context.Context, c *model.CierreCaja) error {
	r.dias[c.Fecha.Format("2006-01-02")] = c
	return nil
}

func (r *stubCajaRepo) ListRango(_ context.Context, desde, hasta time.Time) ([]model.CierreCaja, error) {
	var out []model.CierreCaja
	for _, dia := range r.dias {
		if enRango(dia.Fecha, desde, hasta) {
			out = append(out, *dia)
		}
	}
	return out, nil
}

var _ repository.CajaRepository = (*stubCajaRepo)(nil)

// ── stubPagoRepo ──────────────────────────────────────────────────────────────

// stubPagoRepo joins against stubRecetaRepo for the per-medico aggregate.
type stubPagoRepo struct {
	pagos   map[uuid.UUID]*model.Pago
	recetas *stubRecetaRepo
}

func newStubPagoRepo(recetas *stubRecetaRepo) *stubPagoRepo {
	return &stubPagoRepo{pagos: make(map[uuid.UUID]*model.Pago), recetas: recetas}
}

func (r *stubPagoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pago, error) {
	p, ok := r.pagos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPagoRepo) ListByReceta(_ context.Context, recetaID uuid.UUID) ([]model.Pago, error) {
	var out []model.Pago
	for _, p := range r.pagos {
		if p.RecetaID == recetaID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPagoRepo) ListByFecha(_ context.Context, fecha time.Time) ([]model.Pago, error) {
	var out []model.Pago
	for _, p := range r.pagos {
		if mismaFecha(p.Fecha, fecha) {
			cp := *p
			if r.recetas != nil {
				if receta, err := r.recetas.FindByID(context.Background(), p.RecetaID); err == nil {
					cp.Receta = receta
				}
			}
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *stubPagoRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.pagos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.pagos, id)
	return nil
}

func (r *stubPagoRepo) SumNetoPorMetodo(_ context.Context, fecha time.Time) ([]repository.MetodoNeto, error) {
	acum := make(map[string]decimal.Decimal)
	for _, p := range r.pagos {
		if mismaFecha(p.Fecha, fecha) {
			acum[p.MetodoPago] = acum[p.MetodoPago].Add(p.Neto())
		}
	}
	out := make([]repository.MetodoNeto, 0, len(acum))
	for metodo, neto := range acum {
		out = append(out, repository.MetodoNeto{MetodoPago: metodo, Neto: neto})
	}
	return out, nil
}

func (r *stubPagoRepo) SumNetoPorFecha(_ context.Context, desde, hasta time.Time) ([]repository.FechaNeto, error) {
	acum := make(map[string]decimal.Decimal)
	for _, p := range r.pagos {
		if enRango(p.Fecha, desde, hasta) {
			key := p.Fecha.Format("2006-01-02")
			acum[key] = acum[key].Add(p.Neto())
		}
	}
	out := make([]repository.FechaNeto, 0, len(acum))
	for key, neto := range acum {
		out = append(out, repository.FechaNeto{Fecha: fechaDe(key), Neto: neto})
	}
	return out, nil
}

func (r *stubPagoRepo) SumNetoPorMedico(_ context.Context, desde, hasta time.Time) ([]repository.MedicoNeto, error) {
	acum := make(map[uuid.UUID]decimal.Decimal)
	for _, p := range r.pagos {
		receta, ok := r.recetas.recetas[p.RecetaID]
		if !ok || receta.MedicoID == nil {
			continue
		}
		if enRango(receta.Fecha, desde, hasta) {
			acum[*receta.MedicoID] = acum[*receta.MedicoID].Add(p.Neto())
		}
	}
	out := make([]repository.MedicoNeto, 0, len(acum))
	for id, neto := range acum {
		out = append(out, repository.MedicoNeto{MedicoID: id, Neto: neto})
	}
	return out, nil
}

func (r *stubPagoRepo) CreateTx(_ *gorm.DB, p *model.Pago) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.pagos[p.ID] = p
	return nil
}

func (r *stubPagoRepo) DeleteByRecetaTx(_ *gorm.DB, recetaID uuid.UUID) error {
	for id, p := range r.pagos {
		if p.RecetaID == recetaID {
			delete(r.pagos, id)
		}
	}
	return nil
}

func (r *stubPagoRepo) DB() *gorm.DB { return nil }

var _ repository.PagoRepository = (*stubPagoRepo)(nil)

// ── stubRecetaRepo ────────────────────────────────────────────────────────────

type stubRecetaRepo struct {
	recetas   map[uuid.UUID]*model.Receta
	pacientes *stubPacienteRepo
	medicos   *stubMedicoRepo
	productos *stubProductoRepo
}

func newStubRecetaRepo(pacientes *stubPacienteRepo, medicos *stubMedicoRepo, productos *stubProductoRepo) *stubRecetaRepo {
	return &stubRecetaRepo{
		recetas:   make(map[uuid.UUID]*model.Receta),
		pacientes: pacientes,
		medicos:   medicos,
		productos: productos,
	}
}

// FindByID mimics the Preload chain of the real repository.
func (r *stubRecetaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Receta, error) {
	receta, ok := r.recetas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if r.pacientes != nil {
		receta.Paciente = r.pacientes.pacientes[receta.PacienteID]
	}
	if r.medicos != nil && receta.MedicoID != nil {
		receta.Medico = r.medicos.medicos[*receta.MedicoID]
	}
	if r.productos != nil && receta.ArmazonID != nil {
		receta.Armazon = r.productos.productos[*receta.ArmazonID]
	}
	return receta, nil
}

func (r *stubRecetaRepo) List(_ context.Context, _ dto.RecetaFilter) ([]model.Receta, int64, error) {
	var out []model.Receta
	for _, receta := range r.recetas {
		out = append(out, *receta)
	}
	return out, int64(len(out)), nil
}

func (r *stubRecetaRepo) CountByRango(_ context.Context, desde, hasta time.Time) (int64, error) {
	var n int64
	for _, receta := range r.recetas {
		if enRango(receta.Fecha, desde, hasta) {
			n++
		}
	}
	return n, nil
}

func (r *stubRecetaRepo) CreateTx(_ *gorm.DB, receta *model.Receta) error {
	if receta.ID == uuid.Nil {
		receta.ID = uuid.New()
	}
	r.recetas[receta.ID] = receta
	return nil
}

func (r *stubRecetaRepo) UpdateTx(_ *gorm.DB, receta *model.Receta) error {
	if _, ok := r.recetas[receta.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.recetas[receta.ID] = receta
	return nil
}

func (r *stubRecetaRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	if _, ok := r.recetas[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.recetas, id)
	return nil
}

func (r *stubRecetaRepo) UpdateTotalTx(_ *gorm.DB, id uuid.UUID, total decimal.Decimal, descuentoAplicado bool) error {
	receta, ok := r.recetas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	receta.Total = total
	receta.DescuentoAplicado = descuentoAplicado
	return nil
}

func (r *stubRecetaRepo) DB() *gorm.DB { return nil }

var _ repository.RecetaRepository = (*stubRecetaRepo)(nil)

// ── stubGastoRepo ─────────────────────────────────────────────────────────────

type stubGastoRepo struct {
	gastos map[uuid.UUID]*model.Gasto
}

func newStubGastoRepo() *stubGastoRepo {
	return &stubGastoRepo{gastos: make(map[uuid.UUID]*model.Gasto)}
}

func (r *stubGastoRepo) Create(_ context.Context, g *model.Gasto) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	r.gastos[g.ID] = g
	return nil
}

func (r *stubGastoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Gasto, error) {
	g, ok := r.gastos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return g, nil
}

func (r *stubGastoRepo) ListByRango(_ context.Context, desde, hasta time.Time) ([]model.Gasto, error) {
	var out []model.Gasto
	for _, g := range r.gastos {
		if enRango(g.Fecha, desde, hasta) {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *stubGastoRepo) ListByFecha(_ context.Context, fecha time.Time) ([]model.Gasto, error) {
	var out []model.Gasto
	for _, g := range r.gastos {
		if mismaFecha(g.Fecha, fecha) {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *stubGastoRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.gastos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.gastos, id)
	return nil
}

func (r *stubGastoRepo) SumByFecha(_ context.Context, fecha time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, g := range r.gastos {
		if mismaFecha(g.Fecha, fecha) {
			total = total.Add(g.Monto)
		}
	}
	return total, nil
}

func (r *stubGastoRepo) SumPorFecha(_ context.Context, desde, hasta time.Time) ([]repository.FechaMonto, error) {
	acum := make(map[string]decimal.Decimal)
	for _, g := range r.gastos {
		if enRango(g.Fecha, desde, hasta) {
			key := g.Fecha.Format("2006-01-02")
			acum[key] = acum[key].Add(g.Monto)
		}
	}
	out := make([]repository.FechaMonto, 0, len(acum))
	for key, monto := range acum {
		out = append(out, repository.FechaMonto{Fecha: fechaDe(key), Monto: monto})
	}
	return out, nil
}

var _ repository.GastoRepository = (*stubGastoRepo)(nil)

// ── stubProductoRepo ──────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.Codigo == codigo {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) ListBajoStock(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Cantidad <= p.StockMinimo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	if _, ok := r.productos[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.productos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) AjustarStock(_ context.Context, id uuid.UUID, delta int) error {
	return r.AjustarStockTx(nil, id, delta)
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductoRepo) AjustarStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Cantidad += delta
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── stubPacienteRepo / stubMedicoRepo ─────────────────────────────────────────

type stubPacienteRepo struct {
	pacientes map[uuid.UUID]*model.Paciente
}

func newStubPacienteRepo() *stubPacienteRepo {
	return &stubPacienteRepo{pacientes: make(map[uuid.UUID]*model.Paciente)}
}

func (r *stubPacienteRepo) Create(_ context.Context, p *model.Paciente) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.pacientes[p.ID] = p
	return nil
}

func (r *stubPacienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Paciente, error) {
	p, ok := r.pacientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPacienteRepo) List(_ context.Context, _ string) ([]model.Paciente, error) {
	var out []model.Paciente
	for _, p := range r.pacientes {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPacienteRepo) Update(_ context.Context, p *model.Paciente) error {
	r.pacientes[p.ID] = p
	return nil
}

func (r *stubPacienteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.pacientes, id)
	return nil
}

var _ repository.PacienteRepository = (*stubPacienteRepo)(nil)

type stubMedicoRepo struct {
	medicos map[uuid.UUID]*model.Medico
}

func newStubMedicoRepo() *stubMedicoRepo {
	return &stubMedicoRepo{medicos: make(map[uuid.UUID]*model.Medico)}
}

func (r *stubMedicoRepo) Create(_ context.Context, m *model.Medico) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.medicos[m.ID] = m
	return nil
}

func (r *stubMedicoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Medico, error) {
	m, ok := r.medicos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubMedicoRepo) List(_ context.Context, _ string) ([]model.Medico, error) {
	var out []model.Medico
	for _, m := range r.medicos {
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubMedicoRepo) Update(_ context.Context, m *model.Medico) error {
	r.medicos[m.ID] = m
	return nil
}

func (r *stubMedicoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.medicos, id)
	return nil
}

var _ repository.MedicoRepository = (*stubMedicoRepo)(nil)
