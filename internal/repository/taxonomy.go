package repository

import (
	"strings"

	"mediavault/dam_backend/internal/model"

	"gorm.io/gorm"
)

// TaxonomyRepository resolves free-text tag names and category ids into
// canonical rows. It runs before the transactional core, so the ledger
// and approval code never do their own lookups.
type TaxonomyRepository interface {
	GetOrCreateTags(names []string) ([]model.Tag, error)
	FindCategory(id uint) (*model.Category, error)
}

type taxonomyRepository struct {
	db *gorm.DB
}

func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

// GetOrCreateTags is idempotent: existing tags are reused, the rest are
// created. Blank and duplicate names are dropped.
func (r *taxonomyRepository) GetOrCreateTags(names []string) ([]model.Tag, error) {
	var tags []model.Tag
	seen := make(map[string]bool)

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tag model.Tag
		if err := r.db.Where(model.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

func (r *taxonomyRepository) FindCategory(id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
