package repository

import (
	"time"

	inventorydomain "github.com/shopstock/shopstock/internal/inventory/domain"
	"github.com/shopstock/shopstock/internal/sales/domain"
	"gorm.io/gorm"
)

type GormSaleRepository struct {
	db *gorm.DB
}

func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

func (r *GormSaleRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Sale{}, &domain.SaleItem{})
}

// RecordSale writes the sale, its items and every clamped stock decrement
// in one transaction. Either everything lands or nothing does.
func (r *GormSaleRepository) RecordSale(sale *domain.Sale) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return err
		}
		for _, dec := range sale.Decrements() {
			err := tx.Model(&inventorydomain.Product{}).
				Where("user_id = ? AND id = ?", sale.UserID, dec.ProductID).
				Update("stock", gorm.Expr("GREATEST(stock - ?, 0)", dec.Quantity)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Create persists a sale without stock side effects (seeded history)
func (r *GormSaleRepository) Create(sale *domain.Sale) error {
	return r.db.Create(sale).Error
}

func (r *GormSaleRepository) FindByID(userID, id string) (*domain.Sale, error) {
	var sale domain.Sale
	err := r.db.Preload("Items").
		Where("user_id = ? AND id = ?", userID, id).
		First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *GormSaleRepository) FindAll(userID string, limit, offset int) ([]domain.Sale, error) {
	var sales []domain.Sale
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).Offset(offset).
		Find(&sales).Error
	return sales, err
}

func (r *GormSaleRepository) FindByDateRange(userID string, from, to time.Time) ([]domain.Sale, error) {
	var sales []domain.Sale
	err := r.db.Preload("Items").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date DESC").
		Find(&sales).Error
	return sales, err
}

func (r *GormSaleRepository) Count(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Sale{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
