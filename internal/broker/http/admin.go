package http

import (
	"net/http"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/service"
	"github.com/aussiebroadwan/seatbroker/pkg/brokersdk"
	"github.com/aussiebroadwan/seatbroker/pkg/httpx"
	"github.com/aussiebroadwan/seatbroker/pkg/slogx"
)

type AdminSessionHandler struct {
	Settings     *service.SettingsService
	Sessions     *service.SessionService
	CookieSecure bool
}

// HandleLogin godoc
//
//	@Summary		Admin Login
//	@Description	Verifies the admin password (and TOTP code once enrolled) and sets the admin_session cookie
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		brokersdk.AdminLoginRequest	true	"Password and optional otp"
//	@Success		200		{object}	brokersdk.StatusResponse
//	@Failure		401		{object}	brokersdk.ErrorResponse	"invalid_credentials, otp_required"
//	@Failure		429		{object}	brokersdk.ErrorResponse	"rate_limit_exceeded"
//	@Router			/api/admin/login [post].
func (h *AdminSessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req brokersdk.AdminLoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := h.Settings.AuthenticateAdmin(ctx, req.Password, req.OTP); err != nil {
		log.Info("admin login rejected", "kind", service.ErrorKind(err))
		writeError(w, r, err)
		return
	}

	token, err := h.Sessions.Create(ctx, domain.RealmAdmin, domain.AdminSessionTTL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setSessionCookie(w, domain.RealmAdmin, token, h.CookieSecure)

	log.Info("admin logged in")
	httpx.WriteJSON(w, http.StatusOK, brokersdk.StatusResponse{Status: "ok"})
}

// HandleLogout godoc
//
//	@Summary		Admin Logout
//	@Description	Revokes the current admin session and clears the cookie. Succeeds without a session.
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	brokersdk.StatusResponse
//	@Router			/api/admin/logout [post].
func (h *AdminSessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r, domain.RealmAdmin); token != "" {
		if err := h.Sessions.Revoke(r.Context(), domain.RealmAdmin, token); err != nil {
			writeError(w, r, err)
			return
		}
	}
	clearSessionCookie(w, domain.RealmAdmin, h.CookieSecure)
	httpx.WriteJSON(w, http.StatusOK, brokersdk.StatusResponse{Status: "ok"})
}

// HandleCheck godoc
//
//	@Summary		Admin Session Check
//	@Tags			Admin
//	@Produce		json
//	@Security		AdminSession
//	@Success		200	{object}	brokersdk.AdminCheckResponse
//	@Failure		401	{object}	brokersdk.ErrorResponse	"unauthorized"
//	@Router			/api/admin/check [get].
func (h *AdminSessionHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, brokersdk.AdminCheckResponse{OK: true})
}
