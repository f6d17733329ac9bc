package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/shopstock/shopstock/internal/inventory/domain"
)

var tracer = otel.Tracer("product-repository")

// GormProductRepositoryWithTracing wraps GormProductRepository with tracing.
// The context-taking variants are what the store mirror calls, so every
// asynchronous catalog write lands on the caller's trace.
type GormProductRepositoryWithTracing struct {
	*GormProductRepository
}

// NewGormProductRepositoryWithTracing creates a new repository with tracing
func NewGormProductRepositoryWithTracing(db *gorm.DB) *GormProductRepositoryWithTracing {
	return &GormProductRepositoryWithTracing{
		GormProductRepository: NewGormProductRepository(db),
	}
}

func (r *GormProductRepositoryWithTracing) finish(span trace.Span, err error) error {
	defer span.End()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// CreateWithContext records the catalog insert on the active trace
func (r *GormProductRepositoryWithTracing) CreateWithContext(ctx context.Context, product *domain.Product) error {
	_, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("product.name", product.Name),
			attribute.String("product.category", product.Category),
			attribute.Float64("product.price", product.Price),
			attribute.Int("product.stock", product.Stock),
		),
	)
	err := r.finish(span, r.GormProductRepository.Create(product))
	if err == nil {
		span.SetAttributes(attribute.String("product.id", product.ID))
	}
	return err
}

// UpdateWithContext records the catalog update on the active trace
func (r *GormProductRepositoryWithTracing) UpdateWithContext(ctx context.Context, product *domain.Product) error {
	_, span := tracer.Start(ctx, "repository.Update",
		trace.WithAttributes(
			attribute.String("product.id", product.ID),
		),
	)
	return r.finish(span, r.GormProductRepository.Update(product))
}

// DeleteWithContext records the catalog delete on the active trace
func (r *GormProductRepositoryWithTracing) DeleteWithContext(ctx context.Context, userID, id string) error {
	_, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(
			attribute.String("product.id", id),
		),
	)
	return r.finish(span, r.GormProductRepository.Delete(userID, id))
}

// FindAllWithContext records the activation load on the active trace
func (r *GormProductRepositoryWithTracing) FindAllWithContext(ctx context.Context, userID string, limit, offset int) ([]domain.Product, error) {
	_, span := tracer.Start(ctx, "repository.FindAll",
		trace.WithAttributes(
			attribute.Int("query.limit", limit),
		),
	)
	products, err := r.GormProductRepository.FindAll(userID, limit, offset)
	if err != nil {
		return nil, r.finish(span, err)
	}
	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.End()
	return products, nil
}

// DecrementStockWithContext records the clamped decrement on the active trace
func (r *GormProductRepositoryWithTracing) DecrementStockWithContext(ctx context.Context, userID, id string, quantity int) error {
	_, span := tracer.Start(ctx, "repository.DecrementStock",
		trace.WithAttributes(
			attribute.String("product.id", id),
			attribute.Int("product.decrement", quantity),
		),
	)
	return r.finish(span, r.GormProductRepository.DecrementStock(userID, id, quantity))
}
