package model

import (
	"time"
)

// AssetView is the externally visible state of an asset, computed from
// its version ledger on every read.
type AssetView struct {
	ID           uint           `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	FileKey      string         `json:"file_key"`
	FileURL      string         `json:"file_url,omitempty"`
	Version      uint           `json:"version"`
	Category     *Category      `json:"category,omitempty"`
	Tags         []Tag          `json:"tags"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Creator      string         `json:"creator,omitempty"`
	UploadedByID uint           `json:"uploaded_by_id"`
	UploadedAt   time.Time      `json:"uploaded_at"`
	ParentID     *uint          `json:"parent_id,omitempty"`
}

// EffectiveVersion returns the approved ledger entry with the highest
// version number, or nil if none is approved. Highest version wins, not
// latest decision: an older pending entry approved after a newer one was
// rejected must not shadow an already approved higher version.
func (a *Asset) EffectiveVersion() *AssetVersion {
	var best *AssetVersion
	for i := range a.Versions {
		v := &a.Versions[i]
		if v.Status != VersionApproved {
			continue
		}
		if best == nil || v.Version > best.Version {
			best = v
		}
	}
	return best
}

// Project computes the asset's visible state. Fields come from the
// effective approved version, falling back per field to the asset
// baseline when the version left them empty. With no approved version
// at all (a defensive case, version 1 is auto-approved at creation)
// the baseline is used wholesale. Pure; requires Versions to be loaded.
func (a *Asset) Project() AssetView {
	view := AssetView{
		ID:           a.ID,
		Title:        a.Title,
		Description:  a.Description,
		FileKey:      a.FileKey,
		Version:      a.Version,
		Category:     a.Category,
		Tags:         a.Tags,
		Metadata:     a.Metadata,
		Creator:      a.Creator,
		UploadedByID: a.UploadedByID,
		UploadedAt:   a.CreatedAt,
		ParentID:     a.ParentID,
	}

	best := a.EffectiveVersion()
	if best == nil {
		return view
	}

	view.Version = best.Version
	if best.Title != "" {
		view.Title = best.Title
	}
	if best.Description != "" {
		view.Description = best.Description
	}
	if best.FileKey != "" {
		view.FileKey = best.FileKey
	}
	// Require the loaded association, not just the id: a row fetched
	// without its category must fall back to the baseline (which
	// materialization keeps in sync) instead of projecting nil.
	if best.CategoryID != nil && best.Category != nil {
		view.Category = best.Category
	}
	if len(best.Tags) > 0 {
		view.Tags = best.Tags
	}
	return view
}
