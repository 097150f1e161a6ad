package service

import (
	"context"
	"io"
	"time"

	"mediavault/dam_backend/internal/model"
)

type UserService interface {
	CreateUser(user *model.User) error
	GetUserByID(id uint) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	UsernameExists(username string) (bool, error)
}

// FileUpload is an incoming file stream, decoupled from the transport.
type FileUpload struct {
	Body        io.Reader
	Filename    string
	ContentType string
}

// AssetFields are the editable asset fields as submitted by a client.
// Tag names and the category id are resolved to canonical rows before
// the transactional core runs.
type AssetFields struct {
	Title       string
	Description string
	Creator     string
	CategoryID  *uint
	TagNames    []string
	Metadata    map[string]any
	ParentID    *uint
}

type AssetService interface {
	CreateAsset(ctx context.Context, principal model.Principal, fields AssetFields, file *FileUpload) (*model.Asset, error)
	GetAsset(ctx context.Context, id uint) (*model.AssetView, error)
	ListAssets(ctx context.Context) ([]model.AssetView, error)
}

// VersionFields is a partial override: empty fields inherit the asset
// baseline at proposal time.
type VersionFields struct {
	Title       string
	Description string
	CategoryID  *uint
	TagNames    []string
}

type VersionService interface {
	Propose(ctx context.Context, principal model.Principal, assetID uint, fields VersionFields, file *FileUpload) (*model.AssetVersion, error)
	Decide(ctx context.Context, principal model.Principal, versionID uint, outcome model.VersionStatus, comment string) (*model.AssetVersion, error)
	ListByAsset(assetID uint) ([]model.AssetVersion, error)
	List() ([]model.AssetVersion, error)
}

// FileStore is the opaque content storage: store bytes under a key,
// hand out retrievable URLs, copy an object under a fresh key.
type FileStore interface {
	Upload(ctx context.Context, file *FileUpload) (string, error)
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
	Copy(ctx context.Context, srcKey string) (string, error)
}

// Notifier publishes review workflow events to connected clients.
type Notifier interface {
	VersionProposed(v *model.AssetVersion)
	VersionDecided(v *model.AssetVersion)
}
