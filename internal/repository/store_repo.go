package repository

import (
	"go-pharmacy-stock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StoreRepository interface {
	FindAll() ([]model.Store, error)
	FindByID(id uuid.UUID) (*model.Store, error)
	Create(store *model.Store) error
}

type storeRepo struct {
	db *gorm.DB
}

func NewStoreRepo(db *gorm.DB) StoreRepository {
	return &storeRepo{db}
}

func (r *storeRepo) FindAll() ([]model.Store, error) {
	var stores []model.Store
	err := r.db.Preload("Children").Find(&stores).Error
	return stores, err
}

func (r *storeRepo) FindByID(id uuid.UUID) (*model.Store, error) {
	var store model.Store
	err := r.db.Preload("Children").First(&store, "id = ?", id).Error
	return &store, err
}

func (r *storeRepo) Create(store *model.Store) error {
	return r.db.Create(store).Error
}
