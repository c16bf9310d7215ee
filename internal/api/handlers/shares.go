package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Shoury-Rana/LinkCrate/internal/access"
	"github.com/Shoury-Rana/LinkCrate/internal/models"
	"github.com/Shoury-Rana/LinkCrate/internal/repositories"
	"github.com/Shoury-Rana/LinkCrate/internal/utils"
	"github.com/google/uuid"
)

// shareStore is everything the handlers need from share persistence. Tests
// substitute an in-memory fake for both this and the evaluator's lookups.
type shareStore interface {
	access.Store
	Create(ctx context.Context, share *models.Share) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Share, error)
	ListAll(ctx context.Context) ([]models.Share, error)
	Save(ctx context.Context, share *models.Share) error
	SoftDelete(ctx context.Context, share *models.Share) error
}

// shares and eval drive every share read and authorization decision.
// ShareStore resolves the database handle at call time, so constructing them
// here is safe.
var shares shareStore = repositories.ShareStore{}

var eval = access.NewEvaluator(shares)

// storage indirects through the package-level gateway so tests can stub it.
func storage() repositories.StorageGateway {
	return repositories.Storage
}

// ownerShareView is what owners see about their own record. The storage path
// is included here and nowhere public.
func ownerShareView(s *models.Share) map[string]any {
	return map[string]any{
		"shareableId":         s.ShareableID,
		"fileName":            s.FileName,
		"fileType":            s.FileType,
		"size":                s.Size,
		"storagePath":         s.StoragePath,
		"isPasswordProtected": s.PasswordProtected(),
		"expiresAt":           s.ExpiresAt,
		"isDeleted":           s.IsDeleted,
		"createdAt":           s.CreatedAt,
		"updatedAt":           s.UpdatedAt,
	}
}

// adminShareView extends the owner view with the owning user, which
// administrative inspection needs and owners do not.
func adminShareView(s *models.Share) map[string]any {
	view := ownerShareView(s)
	view["ownerId"] = s.OwnerID
	return view
}

// publicShareView never exposes the owner, the storage path, or anything
// password-derived beyond the protection flag.
func publicShareView(s *models.Share) map[string]any {
	return map[string]any{
		"shareableId":         s.ShareableID,
		"fileName":            s.FileName,
		"fileType":            s.FileType,
		"size":                s.Size,
		"isPasswordProtected": s.PasswordProtected(),
	}
}

// writeAccessError maps evaluator failures onto the wire. Absent, deleted and
// expired all answer 404 so public probers learn nothing about lifecycle.
func writeAccessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, access.ErrLinkExpired):
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Success: false,
			Message: "This link has expired",
		})
	case errors.Is(err, access.ErrNotFound):
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Success: false,
			Message: "Share not found",
		})
	case errors.Is(err, access.ErrPermissionDenied):
		utils.JSONResponse(w, http.StatusForbidden, utils.Payload{
			Success: false,
			Message: "Permission denied",
		})
	default:
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Internal server error",
		})
	}
}

func shareableIDFromPath(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("shareableId"))
	return id, err == nil
}

// GET /shares
// ListShares godoc
// @Summary List the caller's shares
// @Description Returns all non-deleted shares owned by the authenticated user, newest first.
// @Tags Shares
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/shares [get]
func ListShares(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	records, err := shares.ListByOwner(r.Context(), userID)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Database query failed",
		})
		return
	}

	views := make([]map[string]any, 0, len(records))
	for i := range records {
		views = append(views, ownerShareView(&records[i]))
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Shares retrieved successfully",
		Data:    map[string]any{"shares": views},
	})
}

// GET /shares/{shareableId}
func GetShare(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}
	shareableID, ok := shareableIDFromPath(r)
	if !ok {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid share identifier",
		})
		return
	}

	share, err := eval.ForOwner(r.Context(), shareableID, userID)
	if err != nil {
		writeAccessError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Share retrieved successfully",
		Data:    ownerShareView(share),
	})
}

// PATCH /shares/{shareableId}
// UpdateShare edits the owner-mutable metadata. The shareable id, the storage
// path and the owner are immutable; password and expiry can be set or cleared.
func UpdateShare(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}
	shareableID, ok := shareableIDFromPath(r)
	if !ok {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid share identifier",
		})
		return
	}

	var input struct {
		FileName    *string    `json:"fileName"`
		FileType    *string    `json:"fileType"`
		Password    *string    `json:"password"` // empty string removes protection
		ExpiresAt   *time.Time `json:"expiresAt"`
		ClearExpiry bool       `json:"clearExpiry"`
	}
	if err := decodeJSONBody(w, r, &input); err != nil {
		return
	}

	share, err := eval.ForOwner(r.Context(), shareableID, userID)
	if err != nil {
		writeAccessError(w, err)
		return
	}

	if input.FileName != nil {
		if *input.FileName == "" {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Success: false,
				Message: "fileName must not be empty",
			})
			return
		}
		share.FileName = *input.FileName
	}
	if input.FileType != nil {
		share.FileType = *input.FileType
	}
	if input.Password != nil {
		if err := share.SetPassword(*input.Password); err != nil {
			utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
				Success: false,
				Message: "Failed to hash password",
			})
			return
		}
	}
	if input.ClearExpiry {
		share.ExpiresAt = nil
	} else if input.ExpiresAt != nil {
		share.ExpiresAt = input.ExpiresAt
	}

	if err := shares.Save(r.Context(), share); err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Database update failed",
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Share updated successfully",
		Data:    ownerShareView(share),
	})
}

// DELETE /shares/{shareableId}
// DeleteShare soft-deletes: the record stays in the database but is gone from
// every read path except administrative listing.
func DeleteShare(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}
	shareableID, ok := shareableIDFromPath(r)
	if !ok {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid share identifier",
		})
		return
	}

	share, err := eval.ForOwner(r.Context(), shareableID, userID)
	if err != nil {
		writeAccessError(w, err)
		return
	}

	if err := shares.SoftDelete(r.Context(), share); err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Database update failed",
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Share deleted successfully",
	})
}

// GET /admin/shares
// AdminListShares lists every record, deleted ones included. Guarded by the
// admin role middleware.
func AdminListShares(w http.ResponseWriter, r *http.Request) {
	records, err := shares.ListAll(r.Context())
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Database query failed",
		})
		return
	}

	views := make([]map[string]any, 0, len(records))
	for i := range records {
		views = append(views, adminShareView(&records[i]))
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Shares retrieved successfully",
		Data:    map[string]any{"shares": views},
	})
}
