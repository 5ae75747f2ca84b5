package repository

import (
	"distrisync/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	GetByLocalID(localID string) (*models.Order, error)
	GetByStatus(status models.SyncStatus) ([]models.Order, error)
	GetByClienteLocalID(clienteLocalID string) ([]models.Order, error)
	// GetUploadQueue returns orders waiting for upload whose parent client
	// already has a server id resolved. Earlier failures are included so
	// they are retried on the next pass.
	GetUploadQueue() ([]models.Order, error)
	GetSyncedWithServerID() ([]models.Order, error)
	GetAll() ([]models.Order, error)
	Upsert(order *models.Order) error
	BulkUpsert(orders []models.Order) error
	// AssignClienteID stamps the server client id on every not-yet-uploaded
	// order that still references the client by local id.
	AssignClienteID(clienteLocalID string, clienteID int64) (int64, error)
	UpdateEstado(localID string, estado models.OrderEstado) error
	Delete(localID string) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetByLocalID(localID string) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, "local_id = ?", localID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByStatus(status models.SyncStatus) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("status = ?", status).Order("fecha").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByClienteLocalID(clienteLocalID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("cliente_local_id = ?", clienteLocalID).Order("fecha desc").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetUploadQueue() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Where("status IN ? AND cliente_id IS NOT NULL", []models.SyncStatus{models.StatusPendingSync, models.StatusSyncFailed}).
		Order("fecha").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetSyncedWithServerID() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Where("status = ? AND server_id IS NOT NULL", models.StatusSynced).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Order("fecha desc").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Upsert(order *models.Order) error {
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(order).Error
}

func (r *orderRepository) BulkUpsert(orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(orders, 100).Error
}

func (r *orderRepository) AssignClienteID(clienteLocalID string, clienteID int64) (int64, error) {
	res := r.db.Model(&models.Order{}).
		Where("cliente_local_id = ? AND status IN ?", clienteLocalID, []models.SyncStatus{models.StatusPendingSync, models.StatusSyncFailed}).
		Update("cliente_id", clienteID)
	return res.RowsAffected, res.Error
}

func (r *orderRepository) UpdateEstado(localID string, estado models.OrderEstado) error {
	return r.db.Model(&models.Order{}).
		Where("local_id = ?", localID).
		Update("estado", estado).Error
}

func (r *orderRepository) Delete(localID string) error {
	return r.db.Delete(&models.Order{}, "local_id = ?", localID).Error
}
