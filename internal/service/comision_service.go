package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Nikise23/optica-mia/internal/dto"
	"github.com/Nikise23/optica-mia/internal/repository"
)

// ComisionService computes per-medico commissions: the net pagos collected on
// a medico's recetas whose RECETA date falls in [desde, hasta), times the
// medico's percentage. Every medico appears in the breakdown, with zero when
// nothing was collected; recetas without a medico contribute to nobody.
type ComisionService interface {
	Calcular(ctx context.Context, desde, hasta time.Time) (*dto.ComisionesResponse, error)
}

type comisionService struct {
	medicos repository.MedicoRepository
	pagos   repository.PagoRepository
}

func NewComisionService(medicos repository.MedicoRepository, pagos repository.PagoRepository) ComisionService {
	return &comisionService{medicos: medicos, pagos: pagos}
}

func (s *comisionService) Calcular(ctx context.Context, desde, hasta time.Time) (*dto.ComisionesResponse, error) {
	desde = normalizarFecha(desde)
	hasta = normalizarFecha(hasta)
	if !desde.Before(hasta) {
		return nil, fmt.Errorf("%w: el período debe cumplir desde < hasta", ErrValidacion)
	}

	roster, err := s.medicos.List(ctx, "")
	if err != nil {
		return nil, err
	}
	netos, err := s.pagos.SumNetoPorMedico(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	porMedico := make(map[string]repository.MedicoNeto, len(netos))
	for _, n := range netos {
		porMedico[n.MedicoID.String()] = n
	}

	resp := &dto.ComisionesResponse{
		Desde:   desde.Format("2006-01-02"),
		Hasta:   hasta.Format("2006-01-02"),
		Detalle: make([]dto.ComisionItem, 0, len(roster)),
	}
	for i := range roster {
		m := &roster[i]
		item := dto.ComisionItem{
			MedicoID:   m.ID.String(),
			Medico:     m.Apellido + ", " + m.Nombre,
			Porcentaje: m.PorcentajeComision,
		}
		if n, ok := porMedico[item.MedicoID]; ok {
			item.NetoCobrado = n.Neto
		}
		item.Comision = item.NetoCobrado.Mul(m.PorcentajeComision).Div(cien).Round(2)
		resp.Detalle = append(resp.Detalle, item)
		resp.Total = resp.Total.Add(item.Comision)
	}
	return resp, nil
}
