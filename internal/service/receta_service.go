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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecetaService owns receta CRUD and the armazón linkage rules: linking a
// receta to a stock item reserves exactly one unit (requires cantidad > 0),
// re-linking restores the old unit first, and every stock step commits in the
// same transaction as the receta write.
type RecetaService interface {
	Crear(ctx context.Context, req dto.CrearRecetaRequest) (*dto.RecetaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarRecetaRequest) (*dto.RecetaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.RecetaResponse, error)
	Listar(ctx context.Context, filter dto.RecetaFilter) (*dto.RecetaListResponse, error)
}

type recetaService struct {
	repo      repository.RecetaRepository
	pagos     repository.PagoRepository
	pacientes repository.PacienteRepository
	medicos   repository.MedicoRepository
	productos repository.ProductoRepository
}

func NewRecetaService(
	repo repository.RecetaRepository,
	pagos repository.PagoRepository,
	pacientes repository.PacienteRepository,
	medicos repository.MedicoRepository,
	productos repository.ProductoRepository,
) RecetaService {
	return &recetaService{
		repo:      repo,
		pagos:     pagos,
		pacientes: pacientes,
		medicos:   medicos,
		productos: productos,
	}
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func (s *recetaService) Crear(ctx context.Context, req dto.CrearRecetaRequest) (*dto.RecetaResponse, error) {
	pacienteID, err := uuid.Parse(req.PacienteID)
	if err != nil {
		return nil, fmt.Errorf("%w: paciente_id inválido", ErrValidacion)
	}
	if _, err := s.pacientes.FindByID(ctx, pacienteID); err != nil {
		return nil, fmt.Errorf("%w: paciente %s", ErrNoEncontrado, req.PacienteID)
	}

	medicoID, err := s.resolverMedico(ctx, req.MedicoID)
	if err != nil {
		return nil, err
	}

	armazonID, err := parseOptionalUUID(req.ArmazonID, "armazon_id")
	if err != nil {
		return nil, err
	}

	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha inválida %q", ErrValidacion, req.Fecha)
	}
	if !req.Total.IsPositive() {
		return nil, fmt.Errorf("%w: total debe ser positivo", ErrValidacion)
	}

	receta := &model.Receta{
		PacienteID:    pacienteID,
		MedicoID:      medicoID,
		Fecha:         normalizarFecha(fecha),
		TipoLente:     req.TipoLente,
		MedidaOD:      req.MedidaOD,
		MedidaOS:      req.MedidaOS,
		Observaciones: req.Observaciones,
		Total:         req.Total,
		ArmazonID:     armazonID,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if armazonID != nil {
			if err := s.reservarArmazon(tx, *armazonID); err != nil {
				return err
			}
		}
		return s.repo.CreateTx(tx, receta)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.responder(ctx, receta.ID)
}

// ── Actualizar ────────────────────────────────────────────────────────────────
// When the armazón changes, the old unit is restored unconditionally (no
// upper bound is enforced on cantidad) before the new one is reserved.

func (s *recetaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarRecetaRequest) (*dto.RecetaResponse, error) {
	receta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: receta %s", ErrNoEncontrado, id)
		}
		return nil, err
	}

	medicoID, err := s.resolverMedico(ctx, req.MedicoID)
	if err != nil {
		return nil, err
	}
	nuevoArmazon, err := parseOptionalUUID(req.ArmazonID, "armazon_id")
	if err != nil {
		return nil, err
	}
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha inválida %q", ErrValidacion, req.Fecha)
	}

	anterior := receta.ArmazonID
	cambia := !uuidPtrEq(anterior, nuevoArmazon)

	receta.MedicoID = medicoID
	receta.Fecha = normalizarFecha(fecha)
	receta.TipoLente = req.TipoLente
	receta.MedidaOD = req.MedidaOD
	receta.MedidaOS = req.MedidaOS
	receta.Observaciones = req.Observaciones
	receta.ArmazonID = nuevoArmazon
	receta.Paciente, receta.Medico, receta.Armazon, receta.Pagos = nil, nil, nil, nil

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if cambia {
			if anterior != nil {
				if err := s.productos.AjustarStockTx(tx, *anterior, +1); err != nil {
					return err
				}
			}
			if nuevoArmazon != nil {
				if err := s.reservarArmazon(tx, *nuevoArmazon); err != nil {
					return err
				}
			}
		}
		return s.repo.UpdateTx(tx, receta)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.responder(ctx, receta.ID)
}

// ── Eliminar ──────────────────────────────────────────────────────────────────
// Removes the receta and its pagos. The linked armazón unit is NOT restored
// (see DESIGN.md — open question left as the canonical behavior).

func (s *recetaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: receta %s", ErrNoEncontrado, id)
		}
		return err
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.pagos.DeleteByRecetaTx(tx, id); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, id)
	})
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *recetaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.RecetaResponse, error) {
	return s.responder(ctx, id)
}

func (s *recetaService) Listar(ctx context.Context, filter dto.RecetaFilter) (*dto.RecetaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	recetas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RecetaResponse, 0, len(recetas))
	for i := range recetas {
		items = append(items, *recetaToResponse(&recetas[i]))
	}
	return &dto.RecetaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// reservarArmazon takes one unit of stock, failing when none is available.
// Runs inside the caller's transaction so check and decrement see the same row.
func (s *recetaService) reservarArmazon(tx *gorm.DB, id uuid.UUID) error {
	producto, err := s.productos.FindByIDTx(tx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: producto %s", ErrNoEncontrado, id)
		}
		return err
	}
	if producto.Cantidad <= 0 {
		return fmt.Errorf("%w: %s", ErrSinStock, producto.Nombre)
	}
	return s.productos.AjustarStockTx(tx, id, -1)
}

func (s *recetaService) resolverMedico(ctx context.Context, raw *string) (*uuid.UUID, error) {
	id, err := parseOptionalUUID(raw, "medico_id")
	if err != nil || id == nil {
		return id, err
	}
	if _, err := s.medicos.FindByID(ctx, *id); err != nil {
		return nil, fmt.Errorf("%w: medico %s", ErrNoEncontrado, *raw)
	}
	return id, nil
}

func (s *recetaService) responder(ctx context.Context, id uuid.UUID) (*dto.RecetaResponse, error) {
	receta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: receta %s", ErrNoEncontrado, id)
		}
		return nil, err
	}
	return recetaToResponse(receta), nil
}

func parseOptionalUUID(raw *string, campo string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s inválido", ErrValidacion, campo)
	}
	return &id, nil
}

func uuidPtrEq(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func recetaToResponse(r *model.Receta) *dto.RecetaResponse {
	resp := &dto.RecetaResponse{
		ID:            r.ID.String(),
		PacienteID:    r.PacienteID.String(),
		MedicoID:      uuidPtrString(r.MedicoID),
		Fecha:         r.Fecha.Format("2006-01-02"),
		TipoLente:     r.TipoLente,
		MedidaOD:      r.MedidaOD,
		MedidaOS:      r.MedidaOS,
		Observaciones: r.Observaciones,
		Total:         r.Total,
		Pagado:        decimal.Zero,
		ArmazonID:     uuidPtrString(r.ArmazonID),
	}
	if r.Paciente != nil {
		resp.Paciente = r.Paciente.Apellido + ", " + r.Paciente.Nombre
	}
	if r.Medico != nil {
		nombre := r.Medico.Apellido + ", " + r.Medico.Nombre
		resp.Medico = &nombre
	}
	if r.Armazon != nil {
		resp.Armazon = &r.Armazon.Nombre
	}
	for i := range r.Pagos {
		resp.Pagado = resp.Pagado.Add(r.Pagos[i].Neto())
	}
	resp.Saldo = r.Total.Sub(resp.Pagado)
	return resp
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
