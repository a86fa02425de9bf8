package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"restopos-api/internal/models"
)

type ctxKey string

const (
	TokenKey ctxKey = "authToken"
	userKey  ctxKey = "sessionUser"
)

// ExtractToken reads the API token from Authorization ("token <t>",
// "Bearer <t>" or raw) or from ?token=.
func ExtractToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromHeader(r.Header.Get("Authorization"))
		if token == "" {
			token = r.URL.Query().Get("token")
		}

		ctx := context.WithValue(r.Context(), TokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func tokenFromHeader(auth string) string {
	auth = strings.TrimSpace(auth)
	lower := strings.ToLower(auth)
	for _, scheme := range []string{"bearer ", "token "} {
		if strings.HasPrefix(lower, scheme) {
			return strings.TrimSpace(auth[len(scheme):])
		}
	}
	return auth
}

// GetToken returns the token stored by ExtractToken, or "".
func GetToken(r *http.Request) string {
	token, _ := r.Context().Value(TokenKey).(string)
	return token
}

type UserLookup interface {
	GetUserByToken(ctx context.Context, token string) (*models.User, error)
}

// RequireUser resolves the token to an enabled user and rejects the request
// with 401 otherwise. Must run after ExtractToken.
func RequireUser(users UserLookup, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := GetToken(r)
			if token == "" {
				writeUnauthorized(w, r, "missing api token")
				return
			}

			user, err := users.GetUserByToken(r.Context(), token)
			if err != nil {
				log.Error("token lookup failed", zap.Error(err), zap.String("request_id", GetRequestID(r.Context())))
				writeJSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
				return
			}
			if user == nil {
				writeUnauthorized(w, r, "invalid api token")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the session user set by RequireUser.
func UserFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

// WithUser stores u as the session user, as RequireUser does.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	writeJSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", msg)
}

func writeJSONError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"request_id": GetRequestID(r.Context()),
		"error":      map[string]string{"code": code, "message": msg},
	})
}
