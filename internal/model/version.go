package model

import (
	"gorm.io/gorm"
)

type VersionStatus string

const (
	VersionPending  VersionStatus = "pending"
	VersionApproved VersionStatus = "approved"
	VersionRejected VersionStatus = "rejected"
)

// AssetVersion is one ledger entry: a proposed state for an asset.
// The snapshot fields (title, description, category, tags) are frozen
// at proposal time from the asset baseline plus the proposer's
// overrides, so approving one version never picks up edits from a
// different unreviewed one. Entries are never deleted; status changes
// exactly once, pending -> approved or pending -> rejected.
type AssetVersion struct {
	gorm.Model
	AssetID       uint          `json:"asset_id" gorm:"uniqueIndex:idx_asset_version,priority:1"`
	Version       uint          `json:"version" gorm:"uniqueIndex:idx_asset_version,priority:2"`
	FileKey       string        `json:"file_key"`
	UploadedByID  uint          `json:"uploaded_by_id"`
	UploadedBy    User          `json:"uploaded_by" gorm:"foreignKey:UploadedByID"`
	Status        VersionStatus `json:"status" gorm:"type:varchar(10);default:'pending'"`
	ReviewComment string        `json:"review_comment,omitempty"`

	Title       string    `json:"title" gorm:"size:200"`
	Description string    `json:"description"`
	CategoryID  *uint     `json:"category_id"`
	Category    *Category `json:"category,omitempty"`
	Tags        []Tag     `json:"tags" gorm:"many2many:asset_version_tags;"`
}

func (v *AssetVersion) Decided() bool {
	return v.Status != VersionPending
}
