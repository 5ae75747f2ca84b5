package repository

import (
	"distrisync/internal/models"

	"gorm.io/gorm"
)

type ProductRepository interface {
	GetByID(id int64) (*models.Product, error)
	GetAll() ([]models.Product, error)
	GetActive() ([]models.Product, error)
	// ReplaceAll clears the catalog and inserts the given products. Product
	// ids are server-authoritative, so the local table is never merged.
	ReplaceAll(products []models.Product) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByID(id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Order("nombre").Find(&products).Error
	return products, err
}

func (r *productRepository) GetActive() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("archivado = ?", false).Order("nombre").Find(&products).Error
	return products, err
}

func (r *productRepository) ReplaceAll(products []models.Product) error {
	if err := r.db.Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
		return err
	}
	if len(products) == 0 {
		return nil
	}
	return r.db.CreateInBatches(products, 200).Error
}
