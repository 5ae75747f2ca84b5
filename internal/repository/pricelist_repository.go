package repository

import (
	"distrisync/internal/models"

	"gorm.io/gorm"
)

type PriceListRepository interface {
	GetActiveLists() ([]models.PriceList, error)
	GetItems(listaID int64) ([]models.PriceListItem, error)
	// PriceFor returns the override price for a product from the active
	// price lists, or gorm.ErrRecordNotFound when no list carries it.
	PriceFor(productoID int64) (*models.PriceListItem, error)
	// ReplaceAll clears both tables and inserts the downloaded snapshot.
	ReplaceAll(lists []models.PriceList, items []models.PriceListItem) error
}

type priceListRepository struct {
	db *gorm.DB
}

func NewPriceListRepository(db *gorm.DB) PriceListRepository {
	return &priceListRepository{db: db}
}

func (r *priceListRepository) GetActiveLists() ([]models.PriceList, error) {
	var lists []models.PriceList
	err := r.db.Where("activa = ?", true).Order("fecha_creacion").Find(&lists).Error
	return lists, err
}

func (r *priceListRepository) GetItems(listaID int64) ([]models.PriceListItem, error) {
	var items []models.PriceListItem
	err := r.db.Where("lista_id = ?", listaID).Find(&items).Error
	return items, err
}

func (r *priceListRepository) PriceFor(productoID int64) (*models.PriceListItem, error) {
	var item models.PriceListItem
	err := r.db.
		Joins("JOIN price_lists ON price_lists.id = price_list_items.lista_id AND price_lists.activa = ?", true).
		Where("price_list_items.producto_id = ?", productoID).
		Order("price_lists.fecha_creacion desc").
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *priceListRepository) ReplaceAll(lists []models.PriceList, items []models.PriceListItem) error {
	if err := r.db.Where("1 = 1").Delete(&models.PriceListItem{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("1 = 1").Delete(&models.PriceList{}).Error; err != nil {
		return err
	}
	if len(lists) > 0 {
		if err := r.db.CreateInBatches(lists, 200).Error; err != nil {
			return err
		}
	}
	if len(items) > 0 {
		if err := r.db.CreateInBatches(items, 200).Error; err != nil {
			return err
		}
	}
	return nil
}
