package repository

import "gorm.io/gorm"

// Store bundles every repository over one gorm handle. Transaction hands the
// body a Store bound to the transaction so multi-collection writes (the
// client-id cascade onto orders) commit or roll back as a unit.
type Store struct {
	db *gorm.DB

	Clients    ClientRepository
	Orders     OrderRepository
	Products   ProductRepository
	PriceLists PriceListRepository
	Drafts     DraftRepository
	Meta       MetaRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		Clients:    NewClientRepository(db),
		Orders:     NewOrderRepository(db),
		Products:   NewProductRepository(db),
		PriceLists: NewPriceListRepository(db),
		Drafts:     NewDraftRepository(db),
		Meta:       NewMetaRepository(db),
	}
}

func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
