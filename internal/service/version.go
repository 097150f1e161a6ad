package service

import (
	"context"
	"fmt"

	"mediavault/dam_backend/internal/model"
	"mediavault/dam_backend/internal/repository"
)

type versionService struct {
	versionRepo repository.VersionRepository
	assetRepo   repository.AssetRepository
	taxonomy    repository.TaxonomyRepository
	files       FileStore
	notifier    Notifier
}

func NewVersionService(versionRepo repository.VersionRepository, assetRepo repository.AssetRepository, taxonomy repository.TaxonomyRepository, files FileStore, notifier Notifier) VersionService {
	return &versionService{
		versionRepo: versionRepo,
		assetRepo:   assetRepo,
		taxonomy:    taxonomy,
		files:       files,
		notifier:    notifier,
	}
}

// Propose appends a pending ledger entry for the asset. The snapshot is
// frozen here: unset fields inherit the asset baseline as it stands
// right now, never the state of some other unreviewed proposal.
func (s *versionService) Propose(ctx context.Context, principal model.Principal, assetID uint, fields VersionFields, file *FileUpload) (*model.AssetVersion, error) {
	if !principal.Can(model.CapProposeVersion) {
		return nil, model.ErrForbidden
	}

	asset, err := s.assetRepo.FindByID(assetID)
	if err != nil {
		return nil, err
	}

	v := &model.AssetVersion{
		AssetID:      asset.ID,
		UploadedByID: principal.UserID,
		Status:       model.VersionPending,
		Title:        fields.Title,
		Description:  fields.Description,
	}
	if v.Title == "" {
		v.Title = asset.Title
	}
	if v.Description == "" {
		v.Description = asset.Description
	}

	v.CategoryID = asset.CategoryID
	if fields.CategoryID != nil {
		// A bad category reference keeps the prior category instead of
		// failing the whole proposal.
		if category, err := s.taxonomy.FindCategory(*fields.CategoryID); err == nil {
			id := category.ID
			v.CategoryID = &id
		}
	}

	// Tags are not inherited: an empty list on the snapshot means
	// "no change" when the version is approved.
	if len(fields.TagNames) > 0 {
		tags, err := s.taxonomy.GetOrCreateTags(fields.TagNames)
		if err != nil {
			return nil, err
		}
		v.Tags = tags
	}

	if file != nil && file.Body != nil {
		key, err := s.files.Upload(ctx, file)
		if err != nil {
			return nil, fmt.Errorf("failed to store file: %w", err)
		}
		v.FileKey = key
	} else {
		v.FileKey = asset.FileKey
	}

	if err := s.versionRepo.Append(v); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.VersionProposed(v)
	}
	return v, nil
}

// Decide promotes a pending version to approved or rejected. Approval
// materializes the snapshot onto the asset atomically with the status
// flip; the file object is copied under a fresh key beforehand so
// references to the old locator stay valid. A copy orphaned by an
// aborted transaction is harmless.
func (s *versionService) Decide(ctx context.Context, principal model.Principal, versionID uint, outcome model.VersionStatus, comment string) (*model.AssetVersion, error) {
	if !principal.Can(model.CapApprove) {
		return nil, model.ErrForbidden
	}
	if outcome != model.VersionApproved && outcome != model.VersionRejected {
		return nil, fmt.Errorf("%w: outcome must be approved or rejected", model.ErrValidation)
	}

	version, err := s.versionRepo.FindByID(versionID)
	if err != nil {
		return nil, err
	}
	// Fast path; the repository re-checks under lock.
	if version.Decided() {
		return nil, &model.StaleDecisionError{VersionID: version.ID, Status: version.Status}
	}

	var assetFileKey string
	if outcome == model.VersionApproved {
		asset, err := s.assetRepo.FindByID(version.AssetID)
		if err != nil {
			return nil, err
		}
		if version.FileKey != "" && version.FileKey != asset.FileKey {
			assetFileKey, err = s.files.Copy(ctx, version.FileKey)
			if err != nil {
				return nil, fmt.Errorf("failed to copy file for approval: %w", err)
			}
		}
	}

	decided, err := s.versionRepo.Decide(versionID, outcome, comment, assetFileKey)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.VersionDecided(decided)
	}
	return decided, nil
}

func (s *versionService) ListByAsset(assetID uint) ([]model.AssetVersion, error) {
	if _, err := s.assetRepo.FindByID(assetID); err != nil {
		return nil, err
	}
	return s.versionRepo.ListByAsset(assetID)
}

func (s *versionService) List() ([]model.AssetVersion, error) {
	return s.versionRepo.List()
}
