package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Nikise23/optica-mia/internal/dto"
	"github.com/Nikise23/optica-mia/internal/model"
	"github.com/Nikise23/optica-mia/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PacienteService interface {
	Crear(ctx context.Context, req dto.PacienteRequest) (*dto.PacienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.PacienteRequest) (*dto.PacienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PacienteResponse, error)
	Listar(ctx context.Context, q string) ([]dto.PacienteResponse, error)
}

type pacienteService struct {
	repo repository.PacienteRepository
}

func NewPacienteService(repo repository.PacienteRepository) PacienteService {
	return &pacienteService{repo: repo}
}

func (s *pacienteService) Crear(ctx context.Context, req dto.PacienteRequest) (*dto.PacienteResponse, error) {
	p := &model.Paciente{}
	if err := aplicarPaciente(p, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return pacienteToResponse(p), nil
}

func (s *pacienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.PacienteRequest) (*dto.PacienteResponse, error) {
	p, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := aplicarPaciente(p, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return pacienteToResponse(p), nil
}

func (s *pacienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.buscar(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *pacienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PacienteResponse, error) {
	p, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	return pacienteToResponse(p), nil
}

func (s *pacienteService) Listar(ctx context.Context, q string) ([]dto.PacienteResponse, error) {
	pacientes, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PacienteResponse, 0, len(pacientes))
	for i := range pacientes {
		resp = append(resp, *pacienteToResponse(&pacientes[i]))
	}
	return resp, nil
}

func (s *pacienteService) buscar(ctx context.Context, id uuid.UUID) (*model.Paciente, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: paciente %s", ErrNoEncontrado, id)
		}
		return nil, err
	}
	return p, nil
}

func aplicarPaciente(p *model.Paciente, req dto.PacienteRequest) error {
	p.Nombre = req.Nombre
	p.Apellido = req.Apellido
	p.DNI = req.DNI
	p.ObraSocial = req.ObraSocial
	p.Contacto = req.Contacto
	p.FechaNacimiento = nil
	if req.FechaNacimiento != nil && *req.FechaNacimiento != "" {
		t, err := time.Parse("2006-01-02", *req.FechaNacimiento)
		if err != nil {
			return fmt.Errorf("%w: fecha_nacimiento inválida", ErrValidacion)
		}
		p.FechaNacimiento = &t
	}
	return nil
}

func pacienteToResponse(p *model.Paciente) *dto.PacienteResponse {
	resp := &dto.PacienteResponse{
		ID:         p.ID.String(),
		Nombre:     p.Nombre,
		Apellido:   p.Apellido,
		DNI:        p.DNI,
		ObraSocial: p.ObraSocial,
		Contacto:   p.Contacto,
	}
	if p.FechaNacimiento != nil {
		f := p.FechaNacimiento.Format("2006-01-02")
		resp.FechaNacimiento = &f
	}
	return resp
}
