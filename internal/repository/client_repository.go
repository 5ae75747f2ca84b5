package repository

import (
	"distrisync/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClientRepository interface {
	GetByLocalID(localID string) (*models.Client, error)
	GetByServerID(serverID int64) (*models.Client, error)
	GetByStatus(status models.SyncStatus) ([]models.Client, error)
	// GetUploadQueue returns clients waiting for upload, including earlier
	// failures so they are retried on the next pass.
	GetUploadQueue() ([]models.Client, error)
	GetAll() ([]models.Client, error)
	Upsert(client *models.Client) error
	BulkUpsert(clients []models.Client) error
	Delete(localID string) error
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) GetByLocalID(localID string) (*models.Client, error) {
	var client models.Client
	err := r.db.First(&client, "local_id = ?", localID).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) GetByServerID(serverID int64) (*models.Client, error) {
	var client models.Client
	err := r.db.First(&client, "server_id = ?", serverID).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) GetByStatus(status models.SyncStatus) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.Where("status = ?", status).Order("created_at").Find(&clients).Error
	return clients, err
}

func (r *clientRepository) GetUploadQueue() ([]models.Client, error) {
	var clients []models.Client
	err := r.db.
		Where("status IN ?", []models.SyncStatus{models.StatusPendingSync, models.StatusSyncFailed}).
		Order("created_at").
		Find(&clients).Error
	return clients, err
}

func (r *clientRepository) GetAll() ([]models.Client, error) {
	var clients []models.Client
	err := r.db.Order("nombre_comercio").Find(&clients).Error
	return clients, err
}

func (r *clientRepository) Upsert(client *models.Client) error {
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(client).Error
}

func (r *clientRepository) BulkUpsert(clients []models.Client) error {
	if len(clients) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(clients, 100).Error
}

func (r *clientRepository) Delete(localID string) error {
	return r.db.Delete(&models.Client{}, "local_id = ?", localID).Error
}
