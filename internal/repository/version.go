package repository

import (
	"errors"

	"mediavault/dam_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VersionRepository interface {
	FindByID(id uint) (*model.AssetVersion, error)
	ListByAsset(assetID uint) ([]model.AssetVersion, error)
	List() ([]model.AssetVersion, error)
	// Append assigns the next version number for the asset and inserts
	// the entry. Number assignment is serialized per asset.
	Append(v *model.AssetVersion) error
	// Decide flips a pending version to approved or rejected. Approval
	// also materializes the version onto the asset; both happen in one
	// transaction. assetFileKey, when non-empty, is the copied-in-place
	// object key the asset's locator is moved to.
	Decide(id uint, status model.VersionStatus, comment string, assetFileKey string) (*model.AssetVersion, error)
}

type versionRepository struct {
	db *gorm.DB
}

func NewVersionRepository(db *gorm.DB) VersionRepository {
	return &versionRepository{db: db}
}

func (r *versionRepository) FindByID(id uint) (*model.AssetVersion, error) {
	var version model.AssetVersion
	err := r.db.
		Preload("Category").
		Preload("Tags").
		Preload("UploadedBy").
		First(&version, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &version, nil
}

func (r *versionRepository) ListByAsset(assetID uint) ([]model.AssetVersion, error) {
	var versions []model.AssetVersion
	err := r.db.
		Preload("Category").
		Preload("Tags").
		Preload("UploadedBy").
		Where("asset_id = ?", assetID).
		Order("version DESC, created_at DESC").
		Find(&versions).Error
	if err != nil {
		return nil, err
	}
	return versions, nil
}

func (r *versionRepository) List() ([]model.AssetVersion, error) {
	var versions []model.AssetVersion
	err := r.db.
		Preload("Category").
		Preload("Tags").
		Preload("UploadedBy").
		Order("asset_id, version DESC, created_at DESC").
		Find(&versions).Error
	if err != nil {
		return nil, err
	}
	return versions, nil
}

// Append holds a row lock on the asset for the read-max-then-insert
// window, so two concurrent proposals cannot be assigned the same
// number. The unique index on (asset_id, version) backstops the lock.
func (r *versionRepository) Append(v *model.AssetVersion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var asset model.Asset
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&asset, v.AssetID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrNotFound
			}
			return err
		}

		var max int64
		err = tx.Model(&model.AssetVersion{}).
			Where("asset_id = ?", v.AssetID).
			Select("COALESCE(MAX(version), 0)").
			Scan(&max).Error
		if err != nil {
			return err
		}

		// Rejected and pending entries count too: numbers are never reused.
		v.Version = uint(max) + 1
		return tx.Create(v).Error
	})
}

func (r *versionRepository) Decide(id uint, status model.VersionStatus, comment string, assetFileKey string) (*model.AssetVersion, error) {
	var version model.AssetVersion
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Category").
			Preload("Tags").
			First(&version, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrNotFound
			}
			return err
		}

		// The lock makes this check authoritative: a version leaves
		// pending exactly once.
		if version.Decided() {
			return &model.StaleDecisionError{VersionID: version.ID, Status: version.Status}
		}

		updates := map[string]any{"status": status, "review_comment": comment}
		if err := tx.Model(&version).Updates(updates).Error; err != nil {
			return err
		}
		version.Status = status
		version.ReviewComment = comment

		if status != model.VersionApproved {
			return nil
		}

		var asset model.Asset
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&asset, version.AssetID).Error
		if err != nil {
			return err
		}

		asset.Materialize(&version)
		if assetFileKey != "" {
			asset.FileKey = assetFileKey
		}
		if len(version.Tags) > 0 {
			if err := tx.Model(&asset).Association("Tags").Replace(version.Tags); err != nil {
				return err
			}
		}
		// Tags were replaced above; plain columns only here.
		return tx.Omit(clause.Associations).Save(&asset).Error
	})
	if err != nil {
		return nil, err
	}
	return &version, nil
}
