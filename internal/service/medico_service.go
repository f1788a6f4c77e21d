package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nikise23/optica-mia/internal/dto"
	"github.com/Nikise23/optica-mia/internal/model"
	"github.com/Nikise23/optica-mia/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicoService interface {
	Crear(ctx context.Context, req dto.MedicoRequest) (*dto.MedicoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.MedicoRequest) (*dto.MedicoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.MedicoResponse, error)
	Listar(ctx context.Context, q string) ([]dto.MedicoResponse, error)
}

type medicoService struct {
	repo repository.MedicoRepository
}

func NewMedicoService(repo repository.MedicoRepository) MedicoService {
	return &medicoService{repo: repo}
}

func (s *medicoService) Crear(ctx context.Context, req dto.MedicoRequest) (*dto.MedicoResponse, error) {
	if err := validarComision(req); err != nil {
		return nil, err
	}
	m := &model.Medico{}
	aplicarMedico(m, req)
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return medicoToResponse(m), nil
}

func (s *medicoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.MedicoRequest) (*dto.MedicoResponse, error) {
	if err := validarComision(req); err != nil {
		return nil, err
	}
	m, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	aplicarMedico(m, req)
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return medicoToResponse(m), nil
}

func (s *medicoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.buscar(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *medicoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.MedicoResponse, error) {
	m, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	return medicoToResponse(m), nil
}

func (s *medicoService) Listar(ctx context.Context, q string) ([]dto.MedicoResponse, error) {
	medicos, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MedicoResponse, 0, len(medicos))
	for i := range medicos {
		resp = append(resp, *medicoToResponse(&medicos[i]))
	}
	return resp, nil
}

func (s *medicoService) buscar(ctx context.Context, id uuid.UUID) (*model.Medico, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: medico %s", ErrNoEncontrado, id)
		}
		return nil, err
	}
	return m, nil
}

func validarComision(req dto.MedicoRequest) error {
	if req.PorcentajeComision.IsNegative() || req.PorcentajeComision.GreaterThan(cien) {
		return fmt.Errorf("%w: porcentaje_comision fuera de rango 0-100", ErrValidacion)
	}
	return nil
}

func aplicarMedico(m *model.Medico, req dto.MedicoRequest) {
	m.Nombre = req.Nombre
	m.Apellido = req.Apellido
	m.Matricula = req.Matricula
	m.Especialidad = req.Especialidad
	m.Contacto = req.Contacto
	m.PorcentajeComision = req.PorcentajeComision
}

func medicoToResponse(m *model.Medico) *dto.MedicoResponse {
	return &dto.MedicoResponse{
		ID:                 m.ID.String(),
		Nombre:             m.Nombre,
		Apellido:           m.Apellido,
		Matricula:          m.Matricula,
		Especialidad:       m.Especialidad,
		Contacto:           m.Contacto,
		PorcentajeComision: m.PorcentajeComision,
	}
}
