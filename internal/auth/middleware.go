package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"

	apperrors "truckbook/internal/errors"
)

type contextKey string

const adminEmailKey contextKey = "admin_email"

// AdminAuthMiddleware accepts requests carrying a valid HS256 bearer token
// signed with secret.
func AdminAuthMiddleware(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				apperrors.WriteHTTPError(w, apperrors.ErrUnauthorized("Unauthorized"))
				return
			}

			token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return key, nil
			}, jwt.WithExpirationRequired())
			if err != nil || !token.Valid {
				log.WithError(err).WithField("path", r.URL.Path).Warn("Rejected admin request")
				apperrors.WriteHTTPError(w, apperrors.ErrUnauthorized("Unauthorized"))
				return
			}

			email, _ := token.Claims.(jwt.MapClaims)["email"].(string)
			ctx := context.WithValue(r.Context(), adminEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminEmail returns the authenticated admin stored by AdminAuthMiddleware.
func AdminEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(adminEmailKey).(string)
	return email, ok
}
