package repository

import (
	"context"
	"strings"

	"github.com/Nikise23/optica-mia/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PacienteRepository interface {
	Create(ctx context.Context, p *model.Paciente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Paciente, error)
	List(ctx context.Context, q string) ([]model.Paciente, error)
	Update(ctx context.Context, p *model.Paciente) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type pacienteRepo struct{ db *gorm.DB }

func NewPacienteRepository(db *gorm.DB) PacienteRepository { return &pacienteRepo{db: db} }

func (r *pacienteRepo) Create(ctx context.Context, p *model.Paciente) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pacienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Paciente, error) {
	var p model.Paciente
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pacienteRepo) List(ctx context.Context, q string) ([]model.Paciente, error) {
	var pacientes []model.Paciente
	query := r.db.WithContext(ctx).Model(&model.Paciente{})
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(nombre) LIKE ? OR LOWER(apellido) LIKE ? OR LOWER(dni) LIKE ?",
			like, like, like,
		)
	}
	err := query.Order("apellido ASC, nombre ASC").Find(&pacientes).Error
	return pacientes, err
}

func (r *pacienteRepo) Update(ctx context.Context, p *model.Paciente) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *pacienteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Paciente{}, "id = ?", id).Error
}
