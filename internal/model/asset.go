package model

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;size:100"`
}

type Tag struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;size:100"`
}

// Asset is the canonical record. Its editable fields hold the baseline
// state; the visible state is derived from the version ledger (see
// projection.go). Only asset creation and an approval may mutate it.
type Asset struct {
	gorm.Model
	Title        string         `json:"title" gorm:"size:200"`
	Description  string         `json:"description"`
	FileKey      string         `json:"file_key"`
	UploadedByID uint           `json:"uploaded_by_id"`
	UploadedBy   User           `json:"uploaded_by" gorm:"foreignKey:UploadedByID"`
	Creator      string         `json:"creator,omitempty" gorm:"size:150"`
	CategoryID   *uint          `json:"category_id"`
	Category     *Category      `json:"category,omitempty"`
	Tags         []Tag          `json:"tags" gorm:"many2many:asset_tags;"`
	Metadata     map[string]any `json:"metadata,omitempty" gorm:"serializer:json"`
	Version      uint           `json:"version" gorm:"default:1"`
	ParentID     *uint          `json:"parent_id"`
	Versions     []AssetVersion `json:"versions,omitempty" gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
}

// Materialize copies an approved version's snapshot onto the asset.
// Empty snapshot fields keep the asset's existing value, and an empty
// tag list means "no change" rather than "clear tags", so a partial
// proposal never blanks data. The file locator is handled by the
// caller (copy-in-place), never here.
func (a *Asset) Materialize(v *AssetVersion) {
	if v.Title != "" {
		a.Title = v.Title
	}
	if v.Description != "" {
		a.Description = v.Description
	}
	if v.CategoryID != nil {
		a.CategoryID = v.CategoryID
		a.Category = v.Category
	}
	if len(v.Tags) > 0 {
		a.Tags = v.Tags
	}
	a.Version = v.Version
}
