package repository

import (
	"context"
	"strings"

	"github.com/Nikise23/optica-mia/internal/dto"
	"github.com/Nikise23/optica-mia/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for stock items.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory fakes.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	ListBajoStock(ctx context.Context) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, id uuid.UUID) error
	AjustarStock(ctx context.Context, id uuid.UUID, delta int) error

	// Used inside transactions — callers must pass the tx instance
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error)
	AjustarStockTx(tx *gorm.DB, id uuid.UUID, delta int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&p).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	if filter.Q != "" {
		like := "%" + strings.ToLower(filter.Q) + "%"
		q = q.Where("LOWER(codigo) LIKE ? OR LOWER(nombre) LIKE ?", like, like)
	}
	if filter.Categoria != "" {
		q = q.Where("categoria = ?", filter.Categoria)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) ListBajoStock(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("cantidad <= stock_minimo").
		Order("cantidad ASC").
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Producto{}, "id = ?", id).Error
}

func (r *productoRepo) AjustarStock(ctx context.Context, id uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ?", id).
		Update("cantidad", gorm.Expr("cantidad + ?", delta)).Error
}

func (r *productoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := tx.First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoRepo) AjustarStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Producto{}).
		Where("id = ?", id).
		Update("cantidad", gorm.Expr("cantidad + ?", delta)).Error
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
