package middleware

import (
	"net/http"
	"os"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"github.com/enshire/job-board/internal/policy"
)

const sessionName = "__enshire"

func HTTPSMiddleware(next http.Handler, env string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if env != "dev" && r.Header.Get("X-Forwarded-Proto") != "https" {
			target := "https://" + r.Host + r.URL.Path
			http.Redirect(w, r, target, http.StatusMovedPermanently)
		}

		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
		logger.Info().
			Str("Host", r.Host).
			Str("method", r.Method).
			Stringer("url", r.URL).
			Str("x-forwarded-for", r.Header.Get("x-forwarded-for")).
			Msg("req")
		next.ServeHTTP(w, r)
	})
}

func HeadersMiddleware(next http.Handler, env string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if env != "dev" {
			w.Header().Set("Content-Security-Policy", "upgrade-insecure-requests")
			w.Header().Set("X-Frame-Options", "deny")
			w.Header().Set("X-XSS-Protection", "1; mode=block")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			w.Header().Set("Referrer-Policy", "origin")
		}
		next.ServeHTTP(w, r)
	})
}

// AccountJWT is the claim set the external session provider issues. The
// core never checks credentials, it only reads the resolved identity.
type AccountJWT struct {
	IsAdmin     bool     `json:"is_admin"`
	AdminGroups []string `json:"admin_groups"`
	AccountID   string   `json:"account_id"`
	Email       string   `json:"email"`
	jwt.StandardClaims
}

// ActorFromRequest resolves the caller into a policy actor. A missing or
// invalid session means a public caller, never an error.
func ActorFromRequest(r *http.Request, sessionStore *sessions.CookieStore, jwtKey []byte) policy.Actor {
	sess, err := sessionStore.Get(r, sessionName)
	if err != nil {
		return policy.Actor{Role: policy.RolePublic}
	}
	tk, ok := sess.Values["jwt"].(string)
	if !ok {
		return policy.Actor{Role: policy.RolePublic}
	}
	token, err := jwt.ParseWithClaims(tk, &AccountJWT{}, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	if err != nil || !token.Valid {
		return policy.Actor{Role: policy.RolePublic}
	}
	claims, ok := token.Claims.(*AccountJWT)
	if !ok || claims.AccountID == "" {
		return policy.Actor{Role: policy.RolePublic}
	}
	actor := policy.Actor{Role: policy.RoleAccount, AccountID: claims.AccountID}
	if claims.IsAdmin {
		actor.Role = policy.RoleAdmin
		for _, g := range claims.AdminGroups {
			if g == "root" {
				actor.RootAdmin = true
			}
		}
	}
	return actor
}
