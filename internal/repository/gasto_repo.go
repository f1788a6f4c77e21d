package repository

import (
	"context"
	"time"

	"github.com/Nikise23/optica-mia/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FechaMonto is one row of a per-date gross expense aggregate.
type FechaMonto struct {
	Fecha time.Time
	Monto decimal.Decimal
}

type GastoRepository interface {
	Create(ctx context.Context, g *model.Gasto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Gasto, error)
	ListByRango(ctx context.Context, desde, hasta time.Time) ([]model.Gasto, error)
	ListByFecha(ctx context.Context, fecha time.Time) ([]model.Gasto, error)
	Delete(ctx context.Context, id uuid.UUID) error

	SumByFecha(ctx context.Context, fecha time.Time) (decimal.Decimal, error)
	SumPorFecha(ctx context.Context, desde, hasta time.Time) ([]FechaMonto, error)
}

type gastoRepo struct{ db *gorm.DB }

func NewGastoRepository(db *gorm.DB) GastoRepository { return &gastoRepo{db: db} }

func (r *gastoRepo) Create(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gastoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Gasto, error) {
	var g model.Gasto
	err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error
	return &g, err
}

func (r *gastoRepo) ListByRango(ctx context.Context, desde, hasta time.Time) ([]model.Gasto, error) {
	var gastos []model.Gasto
	err := r.db.WithContext(ctx).
		Where("fecha >= ? AND fecha < ?", desde, hasta).
		Order("fecha DESC, created_at DESC").
		Find(&gastos).Error
	return gastos, err
}

func (r *gastoRepo) ListByFecha(ctx context.Context, fecha time.Time) ([]model.Gasto, error) {
	var gastos []model.Gasto
	err := r.db.WithContext(ctx).
		Where("fecha = ?", fecha).
		Order("created_at ASC").
		Find(&gastos).Error
	return gastos, err
}

func (r *gastoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Gasto{}, "id = ?", id).Error
}

func (r *gastoRepo) SumByFecha(ctx context.Context, fecha time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Gasto{}).
		Select("SUM(monto)").
		Where("fecha = ?", fecha).
		Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *gastoRepo) SumPorFecha(ctx context.Context, desde, hasta time.Time) ([]FechaMonto, error) {
	var rows []FechaMonto
	err := r.db.WithContext(ctx).Model(&model.Gasto{}).
		Select("fecha, SUM(monto) AS monto").
		Where("fecha >= ? AND fecha < ?", desde, hasta).
		Group("fecha").
		Order("fecha ASC").
		Scan(&rows).Error
	return rows, err
}
