package middleware

import (
	"context"
	"net/http"

	"github.com/Shoury-Rana/LinkCrate/internal/config"
	"github.com/Shoury-Rana/LinkCrate/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
	RoleKey   contextKey = "role"
)

var jwtSecret = config.Envs.JWTSecret

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		tokenStr, err := r.Cookie("token")
		if err != nil {
			unauthorized(w)
			return
		}

		token, err := jwt.Parse(tokenStr.Value, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})

		if err != nil || !token.Valid {
			unauthorized(w)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauthorized(w)
			return
		}

		userIDStr, ok := claims["userId"].(string)
		if !ok || userIDStr == "" {
			unauthorized(w)
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			unauthorized(w)
			return
		}

		role, _ := claims["role"].(string)

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		ctx = context.WithValue(ctx, RoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated user's id from the request context.
func UserID(r *http.Request) (uuid.UUID, bool) {
	id, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	return id, ok
}

func unauthorized(w http.ResponseWriter) {
	utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
		Success: false,
		Message: "Unauthorized",
	})
}
