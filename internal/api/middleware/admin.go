package middleware

import (
	"net/http"

	"github.com/Shoury-Rana/LinkCrate/internal/models"
	"github.com/Shoury-Rana/LinkCrate/internal/utils"
)

// RequireAdmin gates administrative routes on the role claim. Must run
// behind AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(RoleKey).(string)
		if role != string(models.RoleAdmin) {
			utils.JSONResponse(w, http.StatusForbidden, utils.Payload{
				Success: false,
				Message: "Admin access required",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
