package repository

import (
	"context"
	"time"

	"github.com/Nikise23/optica-mia/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// netoExpr is the net contribution of a pago in SQL form. Must stay in sync
// with model.Pago.Neto.
const netoExpr = "monto * (1 - descuento / 100.0)"

// MetodoNeto is one row of a per-method net aggregate.
type MetodoNeto struct {
	MetodoPago string
	Neto       decimal.Decimal
}

// FechaNeto is one row of a per-date net aggregate.
type FechaNeto struct {
	Fecha time.Time
	Neto  decimal.Decimal
}

// MedicoNeto is one row of a per-medico net aggregate (for comisiones).
type MedicoNeto struct {
	MedicoID uuid.UUID
	Neto     decimal.Decimal
}

type PagoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pago, error)
	ListByReceta(ctx context.Context, recetaID uuid.UUID) ([]model.Pago, error)
	ListByFecha(ctx context.Context, fecha time.Time) ([]model.Pago, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Aggregates — net amounts, i.e. monto * (1 - descuento/100)
	SumNetoPorMetodo(ctx context.Context, fecha time.Time) ([]MetodoNeto, error)
	SumNetoPorFecha(ctx context.Context, desde, hasta time.Time) ([]FechaNeto, error)
	// SumNetoPorMedico groups by the receta's medico over the RECETA fecha,
	// excluding recetas without a medico.
	SumNetoPorMedico(ctx context.Context, desde, hasta time.Time) ([]MedicoNeto, error)

	// Used inside transactions — callers must pass the tx instance
	CreateTx(tx *gorm.DB, p *model.Pago) error
	DeleteByRecetaTx(tx *gorm.DB, recetaID uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type pagoRepo struct{ db *gorm.DB }

func NewPagoRepository(db *gorm.DB) PagoRepository { return &pagoRepo{db: db} }

func (r *pagoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pago, error) {
	var p model.Pago
	err := r.db.WithContext(ctx).Preload("Receta").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pagoRepo) ListByReceta(ctx context.Context, recetaID uuid.UUID) ([]model.Pago, error) {
	var pagos []model.Pago
	err := r.db.WithContext(ctx).
		Where("receta_id = ?", recetaID).
		Order("fecha ASC, created_at ASC").
		Find(&pagos).Error
	return pagos, err
}

func (r *pagoRepo) ListByFecha(ctx context.Context, fecha time.Time) ([]model.Pago, error) {
	var pagos []model.Pago
	err := r.db.WithContext(ctx).
		Preload("Receta").
		Preload("Receta.Paciente").
		Preload("Receta.Medico").
		Where("fecha = ?", fecha).
		Order("created_at ASC").
		Find(&pagos).Error
	return pagos, err
}

func (r *pagoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Pago{}, "id = ?", id).Error
}

func (r *pagoRepo) SumNetoPorMetodo(ctx context.Context, fecha time.Time) ([]MetodoNeto, error) {
	var rows []MetodoNeto
	err := r.db.WithContext(ctx).Model(&model.Pago{}).
		Select("metodo_pago, SUM("+netoExpr+") AS neto").
		Where("fecha = ?", fecha).
		Group("metodo_pago").
		Scan(&rows).Error
	return rows, err
}

func (r *pagoRepo) SumNetoPorFecha(ctx context.Context, desde, hasta time.Time) ([]FechaNeto, error) {
	var rows []FechaNeto
	err := r.db.WithContext(ctx).Model(&model.Pago{}).
		Select("fecha, SUM("+netoExpr+") AS neto").
		Where("fecha >= ? AND fecha < ?", desde, hasta).
		Group("fecha").
		Order("fecha ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *pagoRepo) SumNetoPorMedico(ctx context.Context, desde, hasta time.Time) ([]MedicoNeto, error) {
	var rows []MedicoNeto
	err := r.db.WithContext(ctx).Model(&model.Pago{}).
		Select("recetas.medico_id AS medico_id, SUM(pagos."+netoExpr+") AS neto").
		Joins("JOIN recetas ON recetas.id = pagos.receta_id").
		Where("recetas.medico_id IS NOT NULL").
		Where("recetas.fecha >= ? AND recetas.fecha < ?", desde, hasta).
		Group("recetas.medico_id").
		Scan(&rows).Error
	return rows, err
}

func (r *pagoRepo) CreateTx(tx *gorm.DB, p *model.Pago) error {
	return tx.Create(p).Error
}

func (r *pagoRepo) DeleteByRecetaTx(tx *gorm.DB, recetaID uuid.UUID) error {
	return tx.Delete(&model.Pago{}, "receta_id = ?", recetaID).Error
}

func (r *pagoRepo) DB() *gorm.DB { return r.db }
