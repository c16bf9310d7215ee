package access_test

import (
	"context"
	"testing"
	"time"

	"github.com/Shoury-Rana/LinkCrate/internal/access"
	"github.com/Shoury-Rana/LinkCrate/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore serves shares from memory, mirroring the repository contract:
// absent identifiers return access.ErrNotFound.
type fakeStore struct {
	shares map[uuid.UUID]*models.Share
}

func (f fakeStore) ByShareableID(_ context.Context, shareableID uuid.UUID) (*models.Share, error) {
	if s, ok := f.shares[shareableID]; ok {
		return s, nil
	}
	return nil, access.ErrNotFound
}

var testNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func newTestEvaluator(shares ...*models.Share) *access.Evaluator {
	store := fakeStore{shares: make(map[uuid.UUID]*models.Share)}
	for _, s := range shares {
		store.shares[s.ShareableID] = s
	}
	e := access.NewEvaluator(store)
	e.Now = func() time.Time { return testNow }
	return e
}

func newShare(t *testing.T, owner uuid.UUID, password string, expiresAt *time.Time) *models.Share {
	t.Helper()
	s := &models.Share{
		ID:          uuid.New(),
		ShareableID: uuid.New(),
		OwnerID:     owner,
		FileName:    "report.pdf",
		FileType:    "application/pdf",
		Size:        2048,
		StoragePath: owner.String() + "/" + uuid.NewString() + "-report.pdf",
	}
	require.NoError(t, s.SetPassword(password))
	s.ExpiresAt = expiresAt
	return s
}

func TestForPublicReadUnknownID(t *testing.T) {
	e := newTestEvaluator()

	_, err := e.ForPublicRead(context.Background(), uuid.New())
	assert.ErrorIs(t, err, access.ErrNotFound)
}

func TestForPublicReadDeleted(t *testing.T) {
	share := newShare(t, uuid.New(), "", nil)
	share.IsDeleted = true
	e := newTestEvaluator(share)

	_, err := e.ForPublicRead(context.Background(), share.ShareableID)
	assert.ErrorIs(t, err, access.ErrNotFound)
}

func TestForPublicReadExpired(t *testing.T) {
	past := testNow.Add(-time.Minute)
	share := newShare(t, uuid.New(), "", &past)
	e := newTestEvaluator(share)

	_, err := e.ForPublicRead(context.Background(), share.ShareableID)
	assert.ErrorIs(t, err, access.ErrLinkExpired)
}

func TestForPublicReadVisible(t *testing.T) {
	future := testNow.Add(time.Hour)
	share := newShare(t, uuid.New(), "hunter2", &future)
	e := newTestEvaluator(share)

	got, err := e.ForPublicRead(context.Background(), share.ShareableID)
	require.NoError(t, err)
	assert.Equal(t, share.ShareableID, got.ShareableID)
	assert.True(t, got.PasswordProtected())
}

func TestForDownloadProtected(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		supplied string
		wantErr  error
	}{
		{name: "correct password", stored: "hunter2", supplied: "hunter2"},
		{name: "wrong password", stored: "hunter2", supplied: "wrong", wantErr: access.ErrPermissionDenied},
		{name: "empty password never passes", stored: "hunter2", supplied: "", wantErr: access.ErrPermissionDenied},
		{name: "unicode password roundtrip", stored: "påss wörd ☃ 密码", supplied: "påss wörd ☃ 密码"},
		{name: "unicode near-miss", stored: "påss wörd ☃ 密码", supplied: "pass word ? 密码", wantErr: access.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			share := newShare(t, uuid.New(), tt.stored, nil)
			e := newTestEvaluator(share)

			got, err := e.ForDownload(context.Background(), share.ShareableID, tt.supplied)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, share.StoragePath, got.StoragePath)
		})
	}
}

func TestForDownloadUnprotectedIgnoresPassword(t *testing.T) {
	share := newShare(t, uuid.New(), "", nil)
	e := newTestEvaluator(share)

	for _, supplied := range []string{"", "garbage", "hunter2"} {
		got, err := e.ForDownload(context.Background(), share.ShareableID, supplied)
		require.NoError(t, err, "supplied=%q", supplied)
		assert.Equal(t, share.ShareableID, got.ShareableID)
	}
}

func TestForDownloadDeletedBeatsCorrectPassword(t *testing.T) {
	share := newShare(t, uuid.New(), "hunter2", nil)
	share.IsDeleted = true
	e := newTestEvaluator(share)

	_, err := e.ForDownload(context.Background(), share.ShareableID, "hunter2")
	assert.ErrorIs(t, err, access.ErrNotFound)
}

func TestForDownloadExpiredBeatsCorrectPassword(t *testing.T) {
	past := testNow.Add(-time.Hour)
	share := newShare(t, uuid.New(), "hunter2", &past)
	e := newTestEvaluator(share)

	_, err := e.ForDownload(context.Background(), share.ShareableID, "hunter2")
	assert.ErrorIs(t, err, access.ErrLinkExpired)
}

func TestForOwner(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	past := testNow.Add(-time.Hour)

	deleted := newShare(t, owner, "", nil)
	deleted.IsDeleted = true
	expired := newShare(t, owner, "", &past)
	live := newShare(t, owner, "", nil)

	e := newTestEvaluator(deleted, expired, live)

	// Owners reach their records unconditionally of deletion or expiry.
	for _, share := range []*models.Share{deleted, expired, live} {
		got, err := e.ForOwner(context.Background(), share.ShareableID, owner)
		require.NoError(t, err)
		assert.Equal(t, share.ShareableID, got.ShareableID)
	}

	// Anyone else is rejected, again unconditionally of record state.
	for _, share := range []*models.Share{deleted, expired, live} {
		_, err := e.ForOwner(context.Background(), share.ShareableID, stranger)
		assert.ErrorIs(t, err, access.ErrPermissionDenied)
	}

	_, err := e.ForOwner(context.Background(), uuid.New(), owner)
	assert.ErrorIs(t, err, access.ErrNotFound)
}

func TestRequireOwner(t *testing.T) {
	owner := uuid.New()
	share := newShare(t, owner, "", nil)

	assert.NoError(t, access.RequireOwner(share, owner))
	assert.ErrorIs(t, access.RequireOwner(share, uuid.New()), access.ErrPermissionDenied)
}
