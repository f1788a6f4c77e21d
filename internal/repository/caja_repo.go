package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Nikise23/optica-mia/internal/model"

	"gorm.io/gorm"
)

type CajaRepository interface {
	// FindByFecha returns gorm.ErrRecordNotFound when the date has no row yet;
	// CajaService translates that into a lazy auto-open.
	FindByFecha(ctx context.Context, fecha time.Time) (*model.CierreCaja, error)
	Create(ctx context.Context, c *model.CierreCaja) error
	Update(ctx context.Context, c *model.CierreCaja) error
	ListRango(ctx context.Context, desde, hasta time.Time) ([]model.CierreCaja, error)
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) FindByFecha(ctx context.Context, fecha time.Time) (*model.CierreCaja, error) {
	var c model.CierreCaja
	err := r.db.WithContext(ctx).Where("fecha = ?", fecha).First(&c).Error
	return &c, err
}

func (r *cajaRepo) Create(ctx context.Context, c *model.CierreCaja) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		// Concurrent auto-open lost the race on the unique fecha index —
		// the row exists now, hand it back instead of failing.
		var existing model.CierreCaja
		if ferr := r.db.WithContext(ctx).Where("fecha = ?", c.Fecha).First(&existing).Error; ferr == nil {
			*c = existing
			return nil
		}
	}
	return err
}

func (r *cajaRepo) Update(ctx context.Context, c *model.CierreCaja) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cajaRepo) ListRango(ctx context.Context, desde, hasta time.Time) ([]model.CierreCaja, error) {
	var cierres []model.CierreCaja
	err := r.db.WithContext(ctx).
		Where("fecha >= ? AND fecha < ?", desde, hasta).
		Order("fecha ASC").
		Find(&cierres).Error
	return cierres, err
}
