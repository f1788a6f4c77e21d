package repository

import (
	"context"
	"strings"

	"github.com/Nikise23/optica-mia/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicoRepository interface {
	Create(ctx context.Context, m *model.Medico) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Medico, error)
	List(ctx context.Context, q string) ([]model.Medico, error)
	Update(ctx context.Context, m *model.Medico) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type medicoRepo struct{ db *gorm.DB }

func NewMedicoRepository(db *gorm.DB) MedicoRepository { return &medicoRepo{db: db} }

func (r *medicoRepo) Create(ctx context.Context, m *model.Medico) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *medicoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Medico, error) {
	var m model.Medico
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *medicoRepo) List(ctx context.Context, q string) ([]model.Medico, error) {
	var medicos []model.Medico
	query := r.db.WithContext(ctx).Model(&model.Medico{})
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(nombre) LIKE ? OR LOWER(apellido) LIKE ? OR LOWER(matricula) LIKE ?",
			like, like, like,
		)
	}
	err := query.Order("apellido ASC, nombre ASC").Find(&medicos).Error
	return medicos, err
}

func (r *medicoRepo) Update(ctx context.Context, m *model.Medico) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *medicoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Medico{}, "id = ?", id).Error
}
