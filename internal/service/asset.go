package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"mediavault/dam_backend/internal/model"
	"mediavault/dam_backend/internal/repository"
)

const presignExpiry = 15 * time.Minute

type assetService struct {
	assetRepo repository.AssetRepository
	taxonomy  repository.TaxonomyRepository
	files     FileStore
}

func NewAssetService(assetRepo repository.AssetRepository, taxonomy repository.TaxonomyRepository, files FileStore) AssetService {
	return &assetService{assetRepo: assetRepo, taxonomy: taxonomy, files: files}
}

// CreateAsset stores the file, creates the canonical record and appends
// the system-generated first ledger entry, created directly as approved.
func (s *assetService) CreateAsset(ctx context.Context, principal model.Principal, fields AssetFields, file *FileUpload) (*model.Asset, error) {
	if !principal.Can(model.CapUpload) {
		return nil, model.ErrForbidden
	}
	if file == nil || file.Body == nil {
		return nil, fmt.Errorf("%w: file is required", model.ErrValidation)
	}
	if fields.Title == "" {
		return nil, fmt.Errorf("%w: title is required", model.ErrValidation)
	}

	tags, err := s.taxonomy.GetOrCreateTags(fields.TagNames)
	if err != nil {
		return nil, err
	}

	var categoryID *uint
	if fields.CategoryID != nil {
		// An unresolvable category reference is dropped, not fatal.
		if category, err := s.taxonomy.FindCategory(*fields.CategoryID); err == nil {
			id := category.ID
			categoryID = &id
		}
	}

	key, err := s.files.Upload(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	asset := &model.Asset{
		Title:        fields.Title,
		Description:  fields.Description,
		Creator:      fields.Creator,
		FileKey:      key,
		UploadedByID: principal.UserID,
		CategoryID:   categoryID,
		Tags:         tags,
		Metadata:     fields.Metadata,
		Version:      1,
		ParentID:     fields.ParentID,
	}
	first := &model.AssetVersion{
		Version:      1,
		FileKey:      key,
		UploadedByID: principal.UserID,
		Status:       model.VersionApproved,
		Title:        fields.Title,
		Description:  fields.Description,
		CategoryID:   categoryID,
		Tags:         tags,
	}

	if err := s.assetRepo.Create(asset, first); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *assetService) GetAsset(ctx context.Context, id uint) (*model.AssetView, error) {
	asset, err := s.assetRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	view := asset.Project()
	s.attachURL(ctx, &view)
	return &view, nil
}

func (s *assetService) ListAssets(ctx context.Context) ([]model.AssetView, error) {
	assets, err := s.assetRepo.List()
	if err != nil {
		return nil, err
	}

	views := make([]model.AssetView, 0, len(assets))
	for i := range assets {
		view := assets[i].Project()
		s.attachURL(ctx, &view)
		views = append(views, view)
	}
	return views, nil
}

// attachURL resolves the file locator to a retrievable URL. A failing
// presign degrades the view to key-only rather than failing the read.
func (s *assetService) attachURL(ctx context.Context, view *model.AssetView) {
	if view.FileKey == "" {
		return
	}
	url, err := s.files.PresignedURL(ctx, view.FileKey, presignExpiry)
	if err != nil {
		log.Printf("failed to presign URL for %s: %v", view.FileKey, err)
		return
	}
	view.FileURL = url
}
