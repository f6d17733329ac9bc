package repository

import (
	"github.com/shopstock/shopstock/internal/inventory/domain"
	"gorm.io/gorm"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

func (r *GormProductRepository) Create(product *domain.Product) error {
	return r.db.Create(product).Error
}

func (r *GormProductRepository) FindByID(userID, id string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Where("user_id = ? AND id = ?", userID, id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(userID string, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindByCategory(userID, category string, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Where("user_id = ? AND category = ?", userID, category).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindLowStock(userID string) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Where("user_id = ? AND stock <= low_stock_threshold", userID).
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Update(product *domain.Product) error {
	return r.db.Save(product).Error
}

func (r *GormProductRepository) Delete(userID, id string) error {
	return r.db.Where("user_id = ? AND id = ?", userID, id).Delete(&domain.Product{}).Error
}

func (r *GormProductRepository) Count(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Product{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// DecrementStock clamps at zero inside the database so concurrent
// sessions cannot produce negative stock or lost updates.
func (r *GormProductRepository) DecrementStock(userID, id string, quantity int) error {
	return r.db.Model(&domain.Product{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("stock", gorm.Expr("GREATEST(stock - ?, 0)", quantity)).Error
}
