package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Shoury-Rana/LinkCrate/internal/api/middleware"
	"github.com/Shoury-Rana/LinkCrate/internal/utils"
	"github.com/google/uuid"
)

// requestUserID pulls the authenticated user out of the request context and
// answers 401 itself when the auth middleware did not run.
func requestUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.UserID(r)
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Unauthorized",
		})
	}
	return id, ok
}

var errBadBody = errors.New("invalid request body")

// decodeJSONBody decodes the request body into dst, writing the 400 response
// on failure so callers can simply return.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return errBadBody
	}
	return nil
}
