package repository

import (
	"errors"

	"distrisync/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MetaRepository interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

type metaRepository struct {
	db *gorm.DB
}

func NewMetaRepository(db *gorm.DB) MetaRepository {
	return &metaRepository{db: db}
}

func (r *metaRepository) Get(key string) (string, bool, error) {
	var meta models.Meta
	err := r.db.First(&meta, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return meta.Value, true, nil
}

func (r *metaRepository) Set(key, value string) error {
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&models.Meta{Key: key, Value: value}).Error
}

func (r *metaRepository) Delete(key string) error {
	return r.db.Delete(&models.Meta{}, "key = ?", key).Error
}
