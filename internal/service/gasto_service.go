package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Nikise23/optica-mia/internal/dto"
	"github.com/Nikise23/optica-mia/internal/infra"
	"github.com/Nikise23/optica-mia/internal/model"
	"github.com/Nikise23/optica-mia/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GastoService records miscellaneous expenses. Creation is gated on the open
// register day of the expense date, mirroring pagos; deletion is not.
type GastoService interface {
	Crear(ctx context.Context, req dto.CrearGastoRequest) (*dto.GastoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Listar(ctx context.Context, desde, hasta time.Time) ([]dto.GastoResponse, error)
}

type gastoService struct {
	repo  repository.GastoRepository
	caja  CajaService
	cache *infra.ReporteCache
}

func NewGastoService(repo repository.GastoRepository, caja CajaService, cache *infra.ReporteCache) GastoService {
	return &gastoService{repo: repo, caja: caja, cache: cache}
}

func (s *gastoService) Crear(ctx context.Context, req dto.CrearGastoRequest) (*dto.GastoResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, fmt.Errorf("%w: monto debe ser positivo", ErrValidacion)
	}
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha inválida %q", ErrValidacion, req.Fecha)
	}

	if err := s.caja.VerificarAbierta(ctx, fecha); err != nil {
		return nil, err
	}

	gasto := &model.Gasto{
		Fecha:       normalizarFecha(fecha),
		Categoria:   req.Categoria,
		Descripcion: req.Descripcion,
		Monto:       req.Monto,
	}
	if err := s.repo.Create(ctx, gasto); err != nil {
		return nil, err
	}

	s.cache.InvalidarDiario(ctx, gasto.Fecha)
	return gastoToResponse(gasto), nil
}

func (s *gastoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	gasto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: gasto %s", ErrNoEncontrado, id)
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidarDiario(ctx, gasto.Fecha)
	return nil
}

func (s *gastoService) Listar(ctx context.Context, desde, hasta time.Time) ([]dto.GastoResponse, error) {
	gastos, err := s.repo.ListByRango(ctx, normalizarFecha(desde), normalizarFecha(hasta))
	if err != nil {
		return nil, err
	}
	resp := make([]dto.GastoResponse, 0, len(gastos))
	for i := range gastos {
		resp = append(resp, *gastoToResponse(&gastos[i]))
	}
	return resp, nil
}

func gastoToResponse(g *model.Gasto) *dto.GastoResponse {
	return &dto.GastoResponse{
		ID:          g.ID.String(),
		Fecha:       g.Fecha.Format("2006-01-02"),
		Categoria:   g.Categoria,
		Descripcion: g.Descripcion,
		Monto:       g.Monto,
	}
}
