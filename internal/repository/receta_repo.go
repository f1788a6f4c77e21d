package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Nikise23/optica-mia/internal/dto"
	"github.com/Nikise23/optica-mia/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RecetaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Receta, error)
	List(ctx context.Context, filter dto.RecetaFilter) ([]model.Receta, int64, error)
	CountByRango(ctx context.Context, desde, hasta time.Time) (int64, error)

	// Used inside transactions — callers must pass the tx instance
	CreateTx(tx *gorm.DB, r *model.Receta) error
	UpdateTx(tx *gorm.DB, r *model.Receta) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	// UpdateTotalTx persists the one-shot discount fold together with its guard flag.
	UpdateTotalTx(tx *gorm.DB, id uuid.UUID, total decimal.Decimal, descuentoAplicado bool) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type recetaRepo struct{ db *gorm.DB }

func NewRecetaRepository(db *gorm.DB) RecetaRepository { return &recetaRepo{db: db} }

func (r *recetaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Receta, error) {
	var receta model.Receta
	err := r.db.WithContext(ctx).
		Preload("Paciente").
		Preload("Medico").
		Preload("Armazon").
		Preload("Pagos").
		First(&receta, "id = ?", id).Error
	return &receta, err
}

func (r *recetaRepo) List(ctx context.Context, filter dto.RecetaFilter) ([]model.Receta, int64, error) {
	var recetas []model.Receta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Receta{}).
		Joins("JOIN pacientes ON pacientes.id = recetas.paciente_id")

	if filter.Q != "" {
		like := "%" + strings.ToLower(filter.Q) + "%"
		q = q.Where(
			"LOWER(pacientes.nombre) LIKE ? OR LOWER(pacientes.apellido) LIKE ? OR LOWER(pacientes.dni) LIKE ?",
			like, like, like,
		)
	}
	if filter.Desde != "" {
		q = q.Where("recetas.fecha >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("recetas.fecha < ?", filter.Hasta)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Paciente").Preload("Medico").Preload("Armazon").Preload("Pagos").
		Order("recetas.fecha DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&recetas).Error
	return recetas, total, err
}

func (r *recetaRepo) CountByRango(ctx context.Context, desde, hasta time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Receta{}).
		Where("fecha >= ? AND fecha < ?", desde, hasta).
		Count(&count).Error
	return count, err
}

func (r *recetaRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Receta{}, "id = ?", id).Error
}

func (r *recetaRepo) CreateTx(tx *gorm.DB, receta *model.Receta) error {
	return tx.Create(receta).Error
}

func (r *recetaRepo) UpdateTx(tx *gorm.DB, receta *model.Receta) error {
	return tx.Save(receta).Error
}

func (r *recetaRepo) UpdateTotalTx(tx *gorm.DB, id uuid.UUID, total decimal.Decimal, descuentoAplicado bool) error {
	return tx.Model(&model.Receta{}).Where("id = ?", id).Updates(map[string]interface{}{
		"total":              total,
		"descuento_aplicado": descuentoAplicado,
	}).Error
}

func (r *recetaRepo) DB() *gorm.DB { return r.db }
