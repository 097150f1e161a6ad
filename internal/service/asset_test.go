package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mediavault/dam_backend/internal/model"
)

func TestCreateAssetForbiddenForViewer(t *testing.T) {
	env := newWorkflowEnv()

	_, err := env.assetSvc.CreateAsset(context.Background(), env.viewer, AssetFields{Title: "Logo"},
		&FileUpload{Body: strings.NewReader("bytes"), Filename: "logo.png"})
	if !errors.Is(err, model.ErrForbidden) {
		t.Errorf("CreateAsset by viewer = %v, want ErrForbidden", err)
	}
}

func TestCreateAssetRequiresFile(t *testing.T) {
	env := newWorkflowEnv()

	_, err := env.assetSvc.CreateAsset(context.Background(), env.editor, AssetFields{Title: "Logo"}, nil)
	if !errors.Is(err, model.ErrValidation) {
		t.Errorf("CreateAsset without file = %v, want ErrValidation", err)
	}
}

func TestCreateAssetRequiresTitle(t *testing.T) {
	env := newWorkflowEnv()

	_, err := env.assetSvc.CreateAsset(context.Background(), env.editor, AssetFields{},
		&FileUpload{Body: strings.NewReader("bytes"), Filename: "logo.png"})
	if !errors.Is(err, model.ErrValidation) {
		t.Errorf("CreateAsset without title = %v, want ErrValidation", err)
	}
}

func TestCreateAssetAutoApprovesFirstVersion(t *testing.T) {
	env := newWorkflowEnv()
	asset := env.createAsset(t, "Logo", "brand")

	if asset.Version != 1 {
		t.Errorf("Version = %d, want 1", asset.Version)
	}
	if asset.FileKey == "" {
		t.Error("FileKey not set")
	}
	if len(asset.Versions) != 1 {
		t.Fatalf("Versions = %d, want the system-generated first entry", len(asset.Versions))
	}
	first := asset.Versions[0]
	if first.Version != 1 || first.Status != model.VersionApproved {
		t.Errorf("first version = v%d %q, want v1 approved", first.Version, first.Status)
	}
	if first.FileKey != asset.FileKey {
		t.Errorf("first version FileKey = %q, want %q", first.FileKey, asset.FileKey)
	}
}

func TestCreateAssetIgnoresBadCategory(t *testing.T) {
	env := newWorkflowEnv()
	missing := uint(404)

	asset, err := env.assetSvc.CreateAsset(context.Background(), env.editor,
		AssetFields{Title: "Logo", CategoryID: &missing},
		&FileUpload{Body: strings.NewReader("bytes"), Filename: "logo.png"})
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if asset.CategoryID != nil {
		t.Errorf("CategoryID = %v, bad reference must be dropped", asset.CategoryID)
	}
}

func TestGetAssetReturnsProjectionWithURL(t *testing.T) {
	env := newWorkflowEnv()
	asset := env.createAsset(t, "Logo")

	view, err := env.assetSvc.GetAsset(context.Background(), asset.ID)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if view.Title != "Logo" || view.Version != 1 {
		t.Errorf("view = %q v%d, want Logo v1", view.Title, view.Version)
	}
	if !strings.HasPrefix(view.FileURL, "https://files.example.com/") {
		t.Errorf("FileURL = %q, want presigned URL", view.FileURL)
	}
}

func TestGetAssetNotFound(t *testing.T) {
	env := newWorkflowEnv()

	_, err := env.assetSvc.GetAsset(context.Background(), 42)
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("GetAsset = %v, want ErrNotFound", err)
	}
}
