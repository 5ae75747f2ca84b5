package services

import (
	"fmt"

	"distrisync/internal/models"
	"distrisync/internal/repository"
)

// ReconcileService resolves the identity gap created by offline creation: a
// client born offline has only a local id, and every order referencing it
// must learn the server id the moment the client acquires one.
type ReconcileService interface {
	ReconcileClientCreation(localID string, serverID int64) error
	ReconcileClientUpdate(localID string) error
}

type reconcileService struct {
	store *repository.Store
}

func NewReconcileService(store *repository.Store) ReconcileService {
	return &reconcileService{store: store}
}

// ReconcileClientCreation stamps the server id on the client and cascades it
// onto every pending order referencing the client by local id. Both writes
// happen in one transaction so a crash cannot leave an order pointing at a
// client reference the server never heard of.
func (s *reconcileService) ReconcileClientCreation(localID string, serverID int64) error {
	return s.store.Transaction(func(tx *repository.Store) error {
		client, err := tx.Clients.GetByLocalID(localID)
		if err != nil {
			return fmt.Errorf("load client %s: %w", localID, err)
		}

		client.ServerID = &serverID
		client.Status = models.StatusSynced
		client.Retries = 0
		if err := tx.Clients.Upsert(client); err != nil {
			return fmt.Errorf("stamp server id on client %s: %w", localID, err)
		}

		// Zero affected orders is fine; the client may have none pending.
		if _, err := tx.Orders.AssignClienteID(localID, serverID); err != nil {
			return fmt.Errorf("cascade client id to orders: %w", err)
		}
		return nil
	})
}

// ReconcileClientUpdate marks a client that already had a server id as
// synced after a successful update call. No cascading is needed.
func (s *reconcileService) ReconcileClientUpdate(localID string) error {
	client, err := s.store.Clients.GetByLocalID(localID)
	if err != nil {
		return fmt.Errorf("load client %s: %w", localID, err)
	}
	client.Status = models.StatusSynced
	client.Retries = 0
	return s.store.Clients.Upsert(client)
}
