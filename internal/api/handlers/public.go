package handlers

import (
	"net/http"

	"github.com/Shoury-Rana/LinkCrate/internal/utils"
)

// GET /public/shares/{shareableId}
// PublicShareDetail godoc
// @Summary Public share metadata
// @Description Returns the public-safe subset of a share's metadata. Deleted, expired and unknown identifiers all answer 404.
// @Tags Public
// @Produce json
// @Param shareableId path string true "Shareable identifier"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/v1/public/shares/{shareableId} [get]
func PublicShareDetail(w http.ResponseWriter, r *http.Request) {
	shareableID, ok := shareableIDFromPath(r)
	if !ok {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid share identifier",
		})
		return
	}

	share, err := eval.ForPublicRead(r.Context(), shareableID)
	if err != nil {
		writeAccessError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Share retrieved successfully",
		Data:    publicShareView(share),
	})
}

// POST /public/shares/{shareableId}/download
// RequestDownload godoc
// @Summary Obtain a download URL
// @Description Issues a short-lived signed download URL, validating the share password when one is set.
// @Tags Public
// @Accept json
// @Produce json
// @Param shareableId path string true "Shareable identifier"
// @Success 200 {object} utils.Payload
// @Failure 403 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Failure 502 {object} utils.Payload
// @Router /api/v1/public/shares/{shareableId}/download [post]
func RequestDownload(w http.ResponseWriter, r *http.Request) {
	shareableID, ok := shareableIDFromPath(r)
	if !ok {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid share identifier",
		})
		return
	}

	var input struct {
		Password string `json:"password"`
	}
	// An empty body is fine for unprotected shares.
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeJSONBody(w, r, &input); err != nil {
			return
		}
	}

	share, err := eval.ForDownload(r.Context(), shareableID, input.Password)
	if err != nil {
		writeAccessError(w, err)
		return
	}

	url, err := storage().CreateDownloadGrant(r.Context(), share.StoragePath)
	if err != nil {
		utils.JSONResponse(w, http.StatusBadGateway, utils.Payload{
			Success: false,
			Message: "Failed to generate download URL",
		})
		return
	}

	// Grant URLs are short-lived and must never be cached.
	w.Header().Set("Cache-Control", "no-store")
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Download URL generated successfully",
		Data: map[string]any{
			"downloadUrl": url,
			"fileName":    share.FileName,
			"fileType":    share.FileType,
		},
	})
}
