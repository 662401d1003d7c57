package http

import (
	"net/http"

	"github.com/aussiebroadwan/seatbroker/internal/broker/service"
	"github.com/aussiebroadwan/seatbroker/pkg/brokersdk"
	"github.com/aussiebroadwan/seatbroker/pkg/httpx"
	"github.com/aussiebroadwan/seatbroker/pkg/slogx"
)

type SettingsHandler struct {
	Settings *service.SettingsService
}

// HandleGet godoc
//
//	@Summary		Get Settings
//	@Description	Admin view of the settings. Secrets are reported only as has_* flags.
//	@Tags			Settings
//	@Produce		json
//	@Security		AdminSession
//	@Success		200	{object}	brokersdk.AdminSettingsResponse
//	@Router			/api/admin/settings [get].
func (h *SettingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s, err := h.Settings.Admin(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, adminSettings(s))
}

// HandleUpdate godoc
//
//	@Summary		Update Settings
//	@Description	Omitted fields keep their value. Changing the password requires current_password and revokes every admin session;
//	@Description	setting or clearing the access key revokes every access session.
//	@Tags			Settings
//	@Accept			json
//	@Produce		json
//	@Security		AdminSession
//	@Param			request	body		brokersdk.UpdateSettingsRequest	true	"Changes"
//	@Success		200		{object}	brokersdk.AdminSettingsResponse
//	@Failure		400		{object}	brokersdk.ErrorResponse	"validation"
//	@Failure		401		{object}	brokersdk.ErrorResponse	"invalid_credentials"
//	@Router			/api/admin/settings [put].
func (h *SettingsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req brokersdk.UpdateSettingsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	err := h.Settings.Update(ctx, service.SettingsUpdate{
		SiteTitle:       req.SiteTitle,
		SiteNotice:      req.SiteNotice,
		ProxyEnabled:    req.ProxyEnabled,
		ProxyList:       req.ProxyList,
		AccessKey:       req.AccessKey,
		ClearAccessKey:  req.ClearAccessKey,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	slogx.FromContext(ctx).Info("settings updated", "password_changed", req.NewPassword != "")

	s, err := h.Settings.Admin(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, adminSettings(s))
}

// HandleTOTPEnroll godoc
//
//	@Summary		Start TOTP Enrollment
//	@Description	Generates a pending TOTP secret. It takes effect after a confirmed code.
//	@Tags			Settings
//	@Produce		json
//	@Security		AdminSession
//	@Success		200	{object}	brokersdk.TOTPEnrollResponse
//	@Failure		400	{object}	brokersdk.ErrorResponse	"validation"
//	@Router			/api/admin/totp/enroll [post].
func (h *SettingsHandler) HandleTOTPEnroll(w http.ResponseWriter, r *http.Request) {
	e, err := h.Settings.EnrollTOTP(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, brokersdk.TOTPEnrollResponse{Secret: e.Secret, URL: e.URL})
}

// HandleTOTPConfirm godoc
//
//	@Summary		Confirm TOTP Enrollment
//	@Tags			Settings
//	@Accept			json
//	@Security		AdminSession
//	@Param			request	body	brokersdk.TOTPCodeRequest	true	"Current code"
//	@Success		204
//	@Failure		400	{object}	brokersdk.ErrorResponse	"validation"
//	@Failure		401	{object}	brokersdk.ErrorResponse	"invalid_credentials"
//	@Router			/api/admin/totp/confirm [post].
func (h *SettingsHandler) HandleTOTPConfirm(w http.ResponseWriter, r *http.Request) {
	var req brokersdk.TOTPCodeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := h.Settings.ConfirmTOTP(r.Context(), req.Code); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleTOTPDisable godoc
//
//	@Summary		Disable TOTP
//	@Tags			Settings
//	@Accept			json
//	@Security		AdminSession
//	@Param			request	body	brokersdk.TOTPCodeRequest	true	"Current code"
//	@Success		204
//	@Failure		400	{object}	brokersdk.ErrorResponse	"validation"
//	@Failure		401	{object}	brokersdk.ErrorResponse	"invalid_credentials"
//	@Router			/api/admin/totp/disable [post].
func (h *SettingsHandler) HandleTOTPDisable(w http.ResponseWriter, r *http.Request) {
	var req brokersdk.TOTPCodeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := h.Settings.DisableTOTP(r.Context(), req.Code); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
