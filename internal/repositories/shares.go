package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shoury-Rana/LinkCrate/internal/access"
	"github.com/Shoury-Rana/LinkCrate/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicateStoragePath means another record already claimed the storage
// path. The database unique index is the authoritative guard, so two racing
// creates end with exactly one winner.
var ErrDuplicateStoragePath = errors.New("storage path already registered")

// ShareStore is the gorm-backed share repository and the access.Store
// implementation. It reads the package-level DB handle at call time so it can
// be constructed before ConnectDatabase runs.
type ShareStore struct{}

func (ShareStore) ByShareableID(ctx context.Context, shareableID uuid.UUID) (*models.Share, error) {
	var share models.Share
	err := DB.WithContext(ctx).Where("shareable_id = ?", shareableID).First(&share).Error
	switch {
	case err == nil:
		return &share, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, access.ErrNotFound
	default:
		return nil, fmt.Errorf("share lookup: %w", err)
	}
}

func (ShareStore) Create(ctx context.Context, share *models.Share) error {
	err := DB.WithContext(ctx).Create(share).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateStoragePath
	}
	return err
}

// ListByOwner returns the owner's non-deleted shares, newest first.
func (ShareStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Share, error) {
	var shares []models.Share
	err := DB.WithContext(ctx).
		Where("owner_id = ? AND is_deleted = ?", ownerID, false).
		Order("created_at DESC").
		Find(&shares).Error
	return shares, err
}

// ListAll returns every record, deleted ones included. Administrative
// inspection only.
func (ShareStore) ListAll(ctx context.Context) ([]models.Share, error) {
	var shares []models.Share
	err := DB.WithContext(ctx).Order("created_at DESC").Find(&shares).Error
	return shares, err
}

func (ShareStore) Save(ctx context.Context, share *models.Share) error {
	return DB.WithContext(ctx).Save(share).Error
}

// SoftDelete marks the record deleted. The transition is terminal; nothing in
// the public or owner flows flips it back.
func (ShareStore) SoftDelete(ctx context.Context, share *models.Share) error {
	share.IsDeleted = true
	return DB.WithContext(ctx).Model(share).Update("is_deleted", true).Error
}
