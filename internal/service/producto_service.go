package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nikise23/optica-mia/internal/dto"
	"github.com/Nikise23/optica-mia/internal/model"
	"github.com/Nikise23/optica-mia/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	// AjustarStock applies a manual delta (recounts, roturas). Receta linkage
	// does NOT go through here — that path lives in RecetaService.
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error)
	ListarBajoStock(ctx context.Context) ([]dto.ProductoResponse, error)
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if _, err := s.repo.FindByCodigo(ctx, req.Codigo); err == nil {
		return nil, fmt.Errorf("%w: ya existe un producto con código %s", ErrValidacion, req.Codigo)
	}
	p := &model.Producto{
		Codigo:         req.Codigo,
		Nombre:         req.Nombre,
		Descripcion:    req.Descripcion,
		Categoria:      req.Categoria,
		PrecioUnitario: req.PrecioUnitario,
		Cantidad:       req.Cantidad,
		StockMinimo:    req.StockMinimo,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Nombre = req.Nombre
	p.Descripcion = req.Descripcion
	p.Categoria = req.Categoria
	p.PrecioUnitario = req.PrecioUnitario
	p.StockMinimo = req.StockMinimo
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.buscar(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		items = append(items, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error) {
	p, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Cantidad+req.Delta < 0 {
		return nil, fmt.Errorf("%w: el ajuste dejaría stock negativo", ErrValidacion)
	}
	if err := s.repo.AjustarStock(ctx, id, req.Delta); err != nil {
		return nil, err
	}
	log.Info().
		Str("producto_id", id.String()).
		Int("delta", req.Delta).
		Str("motivo", req.Motivo).
		Msg("ajuste manual de stock")

	return s.ObtenerPorID(ctx, id)
}

func (s *productoService) ListarBajoStock(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.ListBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		resp = append(resp, *productoToResponse(&productos[i]))
	}
	return resp, nil
}

func (s *productoService) buscar(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: producto %s", ErrNoEncontrado, id)
		}
		return nil, err
	}
	return p, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:             p.ID.String(),
		Codigo:         p.Codigo,
		Nombre:         p.Nombre,
		Descripcion:    p.Descripcion,
		Categoria:      p.Categoria,
		PrecioUnitario: p.PrecioUnitario,
		Cantidad:       p.Cantidad,
		StockMinimo:    p.StockMinimo,
		BajoStock:      p.Cantidad <= p.StockMinimo,
	}
}
