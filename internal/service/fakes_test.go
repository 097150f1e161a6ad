package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"mediavault/dam_backend/internal/model"
)

type fakeAssetRepo struct {
	assets map[uint]*model.Asset
	nextID uint
}

func newFakeAssetRepo() *fakeAssetRepo {
	return &fakeAssetRepo{assets: make(map[uint]*model.Asset), nextID: 1}
}

func (f *fakeAssetRepo) Create(asset *model.Asset, first *model.AssetVersion) error {
	asset.ID = f.nextID
	f.nextID++
	first.AssetID = asset.ID
	first.ID = asset.ID*100 + first.Version
	asset.Versions = []model.AssetVersion{*first}
	f.assets[asset.ID] = asset
	return nil
}

func (f *fakeAssetRepo) FindByID(id uint) (*model.Asset, error) {
	asset, ok := f.assets[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return asset, nil
}

func (f *fakeAssetRepo) List() ([]model.Asset, error) {
	var assets []model.Asset
	for _, a := range f.assets {
		assets = append(assets, *a)
	}
	return assets, nil
}

// fakeVersionRepo mirrors the real repository's transactional behavior:
// sequential version numbers per asset, exactly-once decisions, and
// materialization onto the asset on approval.
type fakeVersionRepo struct {
	assets   *fakeAssetRepo
	versions map[uint]*model.AssetVersion
	nextID   uint
}

func newFakeVersionRepo(assets *fakeAssetRepo) *fakeVersionRepo {
	return &fakeVersionRepo{assets: assets, versions: make(map[uint]*model.AssetVersion), nextID: 1}
}

func (f *fakeVersionRepo) FindByID(id uint) (*model.AssetVersion, error) {
	v, ok := f.versions[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (f *fakeVersionRepo) ListByAsset(assetID uint) ([]model.AssetVersion, error) {
	var versions []model.AssetVersion
	for _, v := range f.versions {
		if v.AssetID == assetID {
			versions = append(versions, *v)
		}
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i].Version > versions[j].Version })
	return versions, nil
}

func (f *fakeVersionRepo) List() ([]model.AssetVersion, error) {
	var versions []model.AssetVersion
	for _, v := range f.versions {
		versions = append(versions, *v)
	}
	return versions, nil
}

func (f *fakeVersionRepo) Append(v *model.AssetVersion) error {
	if _, ok := f.assets.assets[v.AssetID]; !ok {
		return model.ErrNotFound
	}
	var max uint
	for _, existing := range f.versions {
		if existing.AssetID == v.AssetID && existing.Version > max {
			max = existing.Version
		}
	}
	for _, existing := range f.assets.assets[v.AssetID].Versions {
		if existing.Version > max {
			max = existing.Version
		}
	}
	v.Version = max + 1
	v.ID = f.nextID
	f.nextID = f.nextID + 1
	stored := *v
	f.versions[v.ID] = &stored
	return nil
}

func (f *fakeVersionRepo) Decide(id uint, status model.VersionStatus, comment string, assetFileKey string) (*model.AssetVersion, error) {
	v, ok := f.versions[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if v.Decided() {
		return nil, &model.StaleDecisionError{VersionID: v.ID, Status: v.Status}
	}
	v.Status = status
	v.ReviewComment = comment

	if status == model.VersionApproved {
		asset := f.assets.assets[v.AssetID]
		asset.Materialize(v)
		if assetFileKey != "" {
			asset.FileKey = assetFileKey
		}
	}
	copied := *v
	return &copied, nil
}

type fakeTaxonomyRepo struct {
	categories map[uint]*model.Category
	tagIDs     map[string]uint
	nextTagID  uint
}

func newFakeTaxonomyRepo() *fakeTaxonomyRepo {
	return &fakeTaxonomyRepo{
		categories: make(map[uint]*model.Category),
		tagIDs:     make(map[string]uint),
		nextTagID:  1,
	}
}

func (f *fakeTaxonomyRepo) GetOrCreateTags(names []string) ([]model.Tag, error) {
	var tags []model.Tag
	for _, name := range names {
		id, ok := f.tagIDs[name]
		if !ok {
			id = f.nextTagID
			f.nextTagID++
			f.tagIDs[name] = id
		}
		tag := model.Tag{Name: name}
		tag.ID = id
		tags = append(tags, tag)
	}
	return tags, nil
}

func (f *fakeTaxonomyRepo) FindCategory(id uint) (*model.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return category, nil
}

type fakeFileStore struct {
	uploads int
	copies  []string
}

func (f *fakeFileStore) Upload(ctx context.Context, file *FileUpload) (string, error) {
	f.uploads++
	return fmt.Sprintf("assets/upload-%d/%s", f.uploads, file.Filename), nil
}

func (f *fakeFileStore) PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	return "https://files.example.com/" + key, nil
}

func (f *fakeFileStore) Copy(ctx context.Context, srcKey string) (string, error) {
	f.copies = append(f.copies, srcKey)
	return "assets/approved/" + srcKey, nil
}

type fakeNotifier struct {
	proposed []uint
	decided  []uint
}

func (f *fakeNotifier) VersionProposed(v *model.AssetVersion) {
	f.proposed = append(f.proposed, v.ID)
}

func (f *fakeNotifier) VersionDecided(v *model.AssetVersion) {
	f.decided = append(f.decided, v.ID)
}
