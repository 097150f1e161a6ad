package repository

import (
	"errors"

	"mediavault/dam_backend/internal/model"

	"gorm.io/gorm"
)

type AssetRepository interface {
	// Create persists a new asset together with its system-generated
	// first version in one transaction.
	Create(asset *model.Asset, first *model.AssetVersion) error
	FindByID(id uint) (*model.Asset, error)
	List() ([]model.Asset, error)
}

type assetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(asset *model.Asset, first *model.AssetVersion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(asset).Error; err != nil {
			return err
		}
		first.AssetID = asset.ID
		return tx.Create(first).Error
	})
}

func (r *assetRepository) FindByID(id uint) (*model.Asset, error) {
	var asset model.Asset
	err := r.db.
		Preload("Category").
		Preload("Tags").
		Preload("UploadedBy").
		Preload("Versions", func(db *gorm.DB) *gorm.DB {
			return db.Order("version DESC")
		}).
		Preload("Versions.Category").
		Preload("Versions.Tags").
		First(&asset, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) List() ([]model.Asset, error) {
	var assets []model.Asset
	err := r.db.
		Preload("Category").
		Preload("Tags").
		Preload("Versions").
		Preload("Versions.Category").
		Preload("Versions.Tags").
		Order("created_at DESC").
		Find(&assets).Error
	if err != nil {
		return nil, err
	}
	return assets, nil
}
