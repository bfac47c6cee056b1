package repository

import (
	"go-pharmacy-stock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	FindAll() ([]model.Product, error)
	FindAllByStore(storeID uuid.UUID) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	// LockByID loads a product with its batches under FOR UPDATE inside tx.
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	Save(tx *gorm.DB, product *model.Product) error
	SaveBatch(tx *gorm.DB, batch *model.Batch) error
	AddBatch(tx *gorm.DB, batch *model.Batch) error
	Delete(tx *gorm.DB, id uuid.UUID) error
	DeleteByIDs(tx *gorm.DB, ids []uuid.UUID) error
	DeleteBatchesByIDs(tx *gorm.DB, ids []uuid.UUID) error
	// Reinsert restores a soft-deleted product and its batches.
	Reinsert(tx *gorm.DB, product *model.Product) error
	CountBatches(tx *gorm.DB, productID uuid.UUID) (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	return tx.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Batches").Find(&products).Error
	return products, err
}

func (r *productRepo) FindAllByStore(storeID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Batches").Where("store_id = ?", storeID).Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Batches").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	return &product, err
}

func (r *productRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("product_id = ?", id).Find(&product.Batches).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Save(tx *gorm.DB, product *model.Product) error {
	if err := tx.Save(product).Error; err != nil {
		return err
	}
	for i := range product.Batches {
		if err := tx.Save(&product.Batches[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *productRepo) SaveBatch(tx *gorm.DB, batch *model.Batch) error {
	return tx.Save(batch).Error
}

func (r *productRepo) AddBatch(tx *gorm.DB, batch *model.Batch) error {
	return tx.Create(batch).Error
}

func (r *productRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Delete(&model.Batch{}, "product_id = ?", id).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) DeleteByIDs(tx *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Delete(&model.Batch{}, "product_id IN ?", ids).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Product{}, "id IN ?", ids).Error
}

func (r *productRepo) DeleteBatchesByIDs(tx *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.Delete(&model.Batch{}, "id IN ?", ids).Error
}

// Reinsert clears the soft-delete marker on the product row and on
// exactly the batch rows the caller passes in. Batches that were already
// deleted before the product deletion stay deleted.
func (r *productRepo) Reinsert(tx *gorm.DB, product *model.Product) error {
	if err := tx.Unscoped().Model(&model.Product{}).Where("id = ?", product.ID).
		Update("deleted_at", nil).Error; err != nil {
		return err
	}
	if len(product.Batches) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(product.Batches))
	for i := range product.Batches {
		ids[i] = product.Batches[i].ID
	}
	return tx.Unscoped().Model(&model.Batch{}).Where("id IN ?", ids).
		Update("deleted_at", nil).Error
}

func (r *productRepo) CountBatches(tx *gorm.DB, productID uuid.UUID) (int64, error) {
	var n int64
	err := tx.Model(&model.Batch{}).Where("product_id = ?", productID).Count(&n).Error
	return n, err
}
