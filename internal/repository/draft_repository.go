package repository

import (
	"distrisync/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DraftRepository interface {
	Get(clienteLocalID string) (*models.Draft, error)
	GetAll() ([]models.Draft, error)
	Put(draft *models.Draft) error
	Delete(clienteLocalID string) error
}

type draftRepository struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) Get(clienteLocalID string) (*models.Draft, error) {
	var draft models.Draft
	err := r.db.First(&draft, "cliente_local_id = ?", clienteLocalID).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *draftRepository) GetAll() ([]models.Draft, error) {
	var drafts []models.Draft
	err := r.db.Find(&drafts).Error
	return drafts, err
}

func (r *draftRepository) Put(draft *models.Draft) error {
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(draft).Error
}

func (r *draftRepository) Delete(clienteLocalID string) error {
	return r.db.Delete(&models.Draft{}, "cliente_local_id = ?", clienteLocalID).Error
}
