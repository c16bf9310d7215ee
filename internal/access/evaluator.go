// Package access decides whether a given actor may read a share's details or
// obtain a download grant for it. Every public-facing route goes through the
// same visibility predicate so that soft deletion and expiry are enforced in
// exactly one place.
package access

import (
	"context"
	"time"

	"github.com/Shoury-Rana/LinkCrate/internal/models"
	"github.com/google/uuid"
)

// Store looks up share records. Implementations return ErrNotFound when no
// record exists for the identifier.
type Store interface {
	ByShareableID(ctx context.Context, shareableID uuid.UUID) (*models.Share, error)
}

// Owned is implemented by any entity carrying an owning user reference.
type Owned interface {
	OwnerRef() uuid.UUID
}

// RequireOwner rejects any actor other than the entity's owner.
func RequireOwner(o Owned, actor uuid.UUID) error {
	if o.OwnerRef() != actor {
		return ErrPermissionDenied
	}
	return nil
}

type Evaluator struct {
	Store Store
	Now   func() time.Time
}

func NewEvaluator(store Store) *Evaluator {
	return &Evaluator{Store: store, Now: time.Now}
}

// visible is the shared predicate behind every public read: a deleted share
// is indistinguishable from one that never existed, and an expired share
// gets the same status with a different message.
func (e *Evaluator) visible(s *models.Share) error {
	if s.IsDeleted {
		return ErrNotFound
	}
	if s.Expired(e.Now()) {
		return ErrLinkExpired
	}
	return nil
}

// ForPublicRead resolves a share for the unauthenticated metadata route.
// Callers must serialize only public-safe fields of the result.
func (e *Evaluator) ForPublicRead(ctx context.Context, shareableID uuid.UUID) (*models.Share, error) {
	share, err := e.Store.ByShareableID(ctx, shareableID)
	if err != nil {
		return nil, err
	}
	if err := e.visible(share); err != nil {
		return nil, err
	}
	return share, nil
}

// ForDownload resolves a share for a download-grant request. A protected
// share requires a non-empty matching password; an unprotected share ignores
// whatever password was supplied.
func (e *Evaluator) ForDownload(ctx context.Context, shareableID uuid.UUID, suppliedPassword string) (*models.Share, error) {
	share, err := e.ForPublicRead(ctx, shareableID)
	if err != nil {
		return nil, err
	}
	if share.PasswordProtected() && !share.CheckPassword(suppliedPassword) {
		return nil, ErrPermissionDenied
	}
	return share, nil
}

// ForOwner resolves a share for authenticated management routes. Owners can
// reach their own deleted or expired records; anyone else is rejected.
func (e *Evaluator) ForOwner(ctx context.Context, shareableID uuid.UUID, actor uuid.UUID) (*models.Share, error) {
	share, err := e.Store.ByShareableID(ctx, shareableID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwner(share, actor); err != nil {
		return nil, err
	}
	return share, nil
}
