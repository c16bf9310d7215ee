package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Shoury-Rana/LinkCrate/internal/models"
	"github.com/Shoury-Rana/LinkCrate/internal/repositories"
	"github.com/Shoury-Rana/LinkCrate/internal/utils"
	"github.com/google/uuid"
)

// Field limits match the share table's column widths.
const (
	maxFileNameLen    = 255
	maxFileTypeLen    = 100
	maxStoragePathLen = 1024
)

func validFileMeta(fileName, fileType string) bool {
	return fileName != "" && len(fileName) <= maxFileNameLen &&
		fileType != "" && len(fileType) <= maxFileTypeLen
}

// POST /shares/upload/initiate
// InitiateUpload godoc
// @Summary Start an upload
// @Description Returns a time-limited signed upload URL and the storage path the client must upload to.
// @Tags Upload
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 502 {object} utils.Payload
// @Router /api/v1/shares/upload/initiate [post]
func InitiateUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var input struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := decodeJSONBody(w, r, &input); err != nil {
		return
	}
	if !validFileMeta(input.FileName, input.FileType) {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "fileName and fileType are required and length-limited",
		})
		return
	}

	// Scope the object under the uploader and salt the name with a fresh
	// UUID. The unique index on storage_path remains the authoritative guard.
	storagePath := fmt.Sprintf("%s/%s-%s", userID, uuid.New(), input.FileName)

	uploadURL, err := storage().CreateUploadGrant(r.Context(), storagePath)
	if err != nil {
		utils.JSONResponse(w, http.StatusBadGateway, utils.Payload{
			Success: false,
			Message: "Failed to generate upload URL",
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Upload URL generated successfully",
		Data: map[string]any{
			"uploadUrl":   uploadURL,
			"storagePath": storagePath,
		},
	})
}

// POST /shares/upload/complete
// CompleteUpload godoc
// @Summary Register an uploaded file
// @Description Creates the share record once the client confirms its upload finished.
// @Tags Upload
// @Accept json
// @Produce json
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/shares/upload/complete [post]
func CompleteUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var input struct {
		StoragePath string     `json:"storagePath"`
		FileName    string     `json:"fileName"`
		FileType    string     `json:"fileType"`
		Size        int64      `json:"size"`
		Password    string     `json:"password"`
		ExpiresAt   *time.Time `json:"expiresAt"`
	}
	if err := decodeJSONBody(w, r, &input); err != nil {
		return
	}
	if input.StoragePath == "" || len(input.StoragePath) > maxStoragePathLen ||
		!validFileMeta(input.FileName, input.FileType) || input.Size <= 0 {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "storagePath, fileName, fileType and a positive size are required",
		})
		return
	}

	// The client claims the upload finished; check the object is really there
	// before minting a share for it.
	exists, err := storage().ObjectExists(r.Context(), input.StoragePath)
	if err != nil {
		utils.JSONResponse(w, http.StatusBadGateway, utils.Payload{
			Success: false,
			Message: "Failed to verify uploaded object",
		})
		return
	}
	if !exists {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "No uploaded object found at storagePath",
		})
		return
	}

	share := models.Share{
		ShareableID: uuid.New(),
		OwnerID:     userID,
		FileName:    input.FileName,
		FileType:    input.FileType,
		Size:        input.Size,
		StoragePath: input.StoragePath,
		ExpiresAt:   input.ExpiresAt,
	}
	if err := share.SetPassword(input.Password); err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to hash password",
		})
		return
	}

	if err := shares.Create(r.Context(), &share); err != nil {
		if errors.Is(err, repositories.ErrDuplicateStoragePath) {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Success: false,
				Message: "storagePath is already registered",
			})
			return
		}
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Database insert failed",
		})
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "Share created successfully",
		Data:    ownerShareView(&share),
	})
}
