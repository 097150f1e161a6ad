package model

import (
	"testing"
)

func uintPtr(v uint) *uint { return &v }

func TestEffectiveVersionPicksHighestApproved(t *testing.T) {
	asset := &Asset{
		Versions: []AssetVersion{
			{Version: 1, Status: VersionApproved},
			{Version: 2, Status: VersionRejected},
			{Version: 3, Status: VersionApproved},
			{Version: 4, Status: VersionPending},
		},
	}

	best := asset.EffectiveVersion()
	if best == nil || best.Version != 3 {
		t.Fatalf("EffectiveVersion = %+v, want version 3", best)
	}
}

// An admin may approve an older pending version after a newer one was
// already approved; the highest approved version number must still win.
func TestEffectiveVersionIgnoresDecisionOrder(t *testing.T) {
	asset := &Asset{
		Versions: []AssetVersion{
			{Version: 5, Status: VersionApproved},
			{Version: 3, Status: VersionApproved},
		},
	}

	if best := asset.EffectiveVersion(); best.Version != 5 {
		t.Errorf("EffectiveVersion = %d, want 5", best.Version)
	}
}

func TestEffectiveVersionNoneApproved(t *testing.T) {
	asset := &Asset{
		Versions: []AssetVersion{
			{Version: 1, Status: VersionPending},
			{Version: 2, Status: VersionRejected},
		},
	}

	if best := asset.EffectiveVersion(); best != nil {
		t.Errorf("EffectiveVersion = %+v, want nil", best)
	}
}

func TestProjectFieldFallback(t *testing.T) {
	asset := &Asset{
		Title:       "Logo",
		Description: "Company logo",
		FileKey:     "assets/a/logo.png",
		Version:     1,
		Tags:        []Tag{{Name: "brand"}},
		Versions: []AssetVersion{
			{Version: 1, Status: VersionApproved, Title: "Logo", FileKey: "assets/a/logo.png"},
			{Version: 2, Status: VersionApproved, Title: "Logo v2", FileKey: "assets/b/logo.png"},
		},
	}

	view := asset.Project()
	if view.Title != "Logo v2" {
		t.Errorf("Title = %q, want %q", view.Title, "Logo v2")
	}
	if view.Version != 2 {
		t.Errorf("Version = %d, want 2", view.Version)
	}
	if view.FileKey != "assets/b/logo.png" {
		t.Errorf("FileKey = %q, want version's file", view.FileKey)
	}
	// Empty on the version: fall back to baseline, not blank.
	if view.Description != "Company logo" {
		t.Errorf("Description = %q, want baseline value", view.Description)
	}
	if len(view.Tags) != 1 || view.Tags[0].Name != "brand" {
		t.Errorf("Tags = %+v, want baseline tags", view.Tags)
	}
}

func TestProjectNoApprovedFallsBackToBaseline(t *testing.T) {
	asset := &Asset{
		Title:   "Orphan",
		FileKey: "assets/x",
		Version: 1,
		Versions: []AssetVersion{
			{Version: 2, Status: VersionPending, Title: "Draft"},
		},
	}

	view := asset.Project()
	if view.Title != "Orphan" || view.Version != 1 || view.FileKey != "assets/x" {
		t.Errorf("Project = %+v, want full baseline fallback", view)
	}
}

// The same stored asset must project the same category no matter how
// deeply its version rows were loaded: a ledger row carrying only the
// category id (association not fetched) falls back to the baseline
// category instead of projecting nil.
func TestProjectKeepsCategoryWhenAssociationUnloaded(t *testing.T) {
	category := &Category{Name: "logos"}
	category.ID = 3

	loaded := &Asset{
		Title:      "Logo",
		CategoryID: uintPtr(3),
		Category:   category,
		Version:    2,
		Versions: []AssetVersion{
			{Version: 2, Status: VersionApproved, CategoryID: uintPtr(3), Category: category},
		},
	}
	shallow := &Asset{
		Title:      "Logo",
		CategoryID: uintPtr(3),
		Category:   category,
		Version:    2,
		Versions: []AssetVersion{
			{Version: 2, Status: VersionApproved, CategoryID: uintPtr(3)},
		},
	}

	full := loaded.Project()
	if full.Category == nil || full.Category.Name != "logos" {
		t.Fatalf("Category = %+v, want logos", full.Category)
	}

	partial := shallow.Project()
	if partial.Category == nil || partial.Category.Name != "logos" {
		t.Errorf("Category = %+v with unloaded association, want baseline fallback", partial.Category)
	}
}

func TestMaterializeCopiesNonEmptyFields(t *testing.T) {
	asset := &Asset{
		Title:       "Logo",
		Description: "Company logo",
		CategoryID:  uintPtr(1),
		Tags:        []Tag{{Name: "brand"}},
		Version:     1,
	}
	v := &AssetVersion{
		Version:    2,
		Title:      "Logo v2",
		CategoryID: uintPtr(4),
	}

	asset.Materialize(v)

	if asset.Title != "Logo v2" {
		t.Errorf("Title = %q, want %q", asset.Title, "Logo v2")
	}
	if asset.Description != "Company logo" {
		t.Errorf("Description = %q, empty snapshot field must not blank it", asset.Description)
	}
	if asset.CategoryID == nil || *asset.CategoryID != 4 {
		t.Errorf("CategoryID = %v, want 4", asset.CategoryID)
	}
	if asset.Version != 2 {
		t.Errorf("Version = %d, want 2", asset.Version)
	}
}

func TestMaterializeEmptyTagsMeansNoChange(t *testing.T) {
	asset := &Asset{Tags: []Tag{{Name: "brand"}, {Name: "logo"}}, Version: 1}
	asset.Materialize(&AssetVersion{Version: 2})

	if len(asset.Tags) != 2 {
		t.Errorf("Tags = %+v, want unchanged", asset.Tags)
	}
}

func TestMaterializeNonEmptyTagsReplaceWholeSet(t *testing.T) {
	asset := &Asset{Tags: []Tag{{Name: "brand"}, {Name: "logo"}}, Version: 1}
	asset.Materialize(&AssetVersion{Version: 2, Tags: []Tag{{Name: "rebrand"}}})

	if len(asset.Tags) != 1 || asset.Tags[0].Name != "rebrand" {
		t.Errorf("Tags = %+v, want exactly the version's set", asset.Tags)
	}
}
