package http

import (
	"net/http"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/pkg/brokersdk"
	"github.com/aussiebroadwan/seatbroker/pkg/cryptox"
	"github.com/aussiebroadwan/seatbroker/pkg/httpx"
	"github.com/aussiebroadwan/seatbroker/pkg/slogx"
)

// requireSession rejects requests without a live session cookie of realm.
// The access realm is open while no access key is configured.
func (r *Router) requireSession(realm domain.Realm) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()

			if realm == domain.RealmAccess {
				required, err := r.SettingsService.AccessKeyRequired(ctx)
				if err != nil {
					writeError(w, req, err)
					return
				}
				if !required {
					next.ServeHTTP(w, req)
					return
				}
			}

			token := sessionToken(req, realm)
			ok, err := r.SessionService.Validate(ctx, realm, token)
			if err != nil {
				writeError(w, req, err)
				return
			}
			if !ok {
				slogx.FromContext(ctx).Debug("session rejected", "realm", string(realm))
				httpx.WriteJSON(w, http.StatusUnauthorized, brokersdk.ErrorResponse{
					Error:            brokersdk.ErrorCodeUnauthorized,
					ErrorDescription: "a valid " + string(realm) + " session is required",
				})
				return
			}

			ctx = httpx.WithSession(ctx, cryptox.FingerprintToken(token))
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

func sessionToken(r *http.Request, realm domain.Realm) string {
	c, err := r.Cookie(realm.CookieName())
	if err != nil {
		return ""
	}
	return c.Value
}

func setSessionCookie(w http.ResponseWriter, realm domain.Realm, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     realm.CookieName(),
		Value:    token,
		Path:     "/",
		MaxAge:   int(realm.TTL().Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, realm domain.Realm, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     realm.CookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
