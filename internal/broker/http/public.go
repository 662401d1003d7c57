package http

import (
	"net/http"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/service"
	"github.com/aussiebroadwan/seatbroker/pkg/brokersdk"
	"github.com/aussiebroadwan/seatbroker/pkg/httpx"
	"github.com/aussiebroadwan/seatbroker/pkg/slogx"
)

// PublicHandler serves the unauthenticated and access-realm endpoints.
type PublicHandler struct {
	Settings     *service.SettingsService
	Sessions     *service.SessionService
	Accounts     *service.AccountService
	Redeem       *service.RedeemService
	CookieSecure bool
}

// HandlePublicSettings godoc
//
//	@Summary		Public Settings
//	@Description	Site title, notice and whether an access key must be entered first
//	@Tags			Public
//	@Produce		json
//	@Success		200	{object}	brokersdk.PublicSettingsResponse
//	@Failure		500	{object}	brokersdk.ErrorResponse	"error, error_description"
//	@Router			/api/settings/public [get].
func (h *PublicHandler) HandlePublicSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.Settings.Public(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, brokersdk.PublicSettingsResponse{
		SiteTitle:         s.SiteTitle,
		SiteNotice:        s.SiteNotice,
		AccessKeyRequired: s.AccessKeyRequired,
	})
}

// HandleAccessStatus godoc
//
//	@Summary		Access Session Status
//	@Description	Reports whether an access key is required and whether the caller holds a valid access session
//	@Tags			Public
//	@Produce		json
//	@Success		200	{object}	brokersdk.AccessStatusResponse
//	@Router			/api/access/verify [get].
func (h *PublicHandler) HandleAccessStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	required, err := h.Settings.AccessKeyRequired(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !required {
		httpx.WriteJSON(w, http.StatusOK, brokersdk.AccessStatusResponse{Required: false, Verified: true})
		return
	}

	ok, err := h.Sessions.Validate(ctx, domain.RealmAccess, sessionToken(r, domain.RealmAccess))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, brokersdk.AccessStatusResponse{Required: true, Verified: ok})
}

// HandleAccessVerify godoc
//
//	@Summary		Verify Access Key
//	@Description	Exchanges the access key for an access_session cookie valid for 7 days
//	@Tags			Public
//	@Accept			json
//	@Produce		json
//	@Param			request	body		brokersdk.AccessVerifyRequest	true	"Access key"
//	@Success		200		{object}	brokersdk.AccessStatusResponse
//	@Failure		401		{object}	brokersdk.ErrorResponse	"invalid_credentials"
//	@Failure		429		{object}	brokersdk.ErrorResponse	"rate_limit_exceeded"
//	@Router			/api/access/verify [post].
func (h *PublicHandler) HandleAccessVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req brokersdk.AccessVerifyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	required, err := h.Settings.AccessKeyRequired(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !required {
		httpx.WriteJSON(w, http.StatusOK, brokersdk.AccessStatusResponse{Required: false, Verified: true})
		return
	}

	ok, err := h.Settings.VerifyAccessKey(ctx, req.Key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		log.Info("access key rejected")
		writeError(w, r, service.ErrInvalidCredentials)
		return
	}

	token, err := h.Sessions.Create(ctx, domain.RealmAccess, domain.AccessSessionTTL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setSessionCookie(w, domain.RealmAccess, token, h.CookieSecure)

	httpx.WriteJSON(w, http.StatusOK, brokersdk.AccessStatusResponse{Required: true, Verified: true})
}

// HandleTeamStatus godoc
//
//	@Summary		Team Seat Status
//	@Description	Seat counters of every enabled team account. Credentials are never included.
//	@Tags			Public
//	@Produce		json
//	@Security		AccessSession
//	@Success		200	{object}	brokersdk.TeamStatusResponse
//	@Failure		401	{object}	brokersdk.ErrorResponse	"unauthorized"
//	@Router			/api/team-accounts/status [get].
func (h *PublicHandler) HandleTeamStatus(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Accounts.Status(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := brokersdk.TeamStatusResponse{Accounts: make([]brokersdk.TeamStatus, 0, len(accounts))}
	for _, a := range accounts {
		out.Accounts = append(out.Accounts, teamStatus(a))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleVerifyCode godoc
//
//	@Summary		Check Invite Code
//	@Description	Checks that a code exists and is unused without consuming it
//	@Tags			Public
//	@Accept			json
//	@Produce		json
//	@Security		AccessSession
//	@Param			request	body		brokersdk.VerifyCodeRequest	true	"Code"
//	@Success		200		{object}	brokersdk.VerifyCodeResponse
//	@Failure		404		{object}	brokersdk.ErrorResponse	"not_found"
//	@Failure		409		{object}	brokersdk.ErrorResponse	"already_used"
//	@Router			/api/codes/verify [post].
func (h *PublicHandler) HandleVerifyCode(w http.ResponseWriter, r *http.Request) {
	var req brokersdk.VerifyCodeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	ic, err := h.Redeem.Check(r.Context(), req.Code)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, brokersdk.VerifyCodeResponse{
		Valid:         true,
		Code:          ic.Code,
		TeamAccountID: ic.TeamAccountID,
	})
}

// HandleRedeem godoc
//
//	@Summary		Redeem Invite Code
//	@Description	Consumes the code and sends a team invite to the email. The code is consumed at most once.
//	@Description	A failed invite returns the code to the pool.
//	@Tags			Public
//	@Accept			json
//	@Produce		json
//	@Security		AccessSession
//	@Param			request	body		brokersdk.RedeemRequest	true	"Code, email and optional preferred account"
//	@Success		200		{object}	brokersdk.RedeemResponse
//	@Failure		400		{object}	brokersdk.ErrorResponse	"validation"
//	@Failure		404		{object}	brokersdk.ErrorResponse	"not_found"
//	@Failure		409		{object}	brokersdk.ErrorResponse	"already_used"
//	@Failure		422		{object}	brokersdk.ErrorResponse	"account_misconfigured"
//	@Failure		502		{object}	brokersdk.ErrorResponse	"upstream_auth, upstream_rejected"
//	@Failure		503		{object}	brokersdk.ErrorResponse	"no_capacity, upstream_unavailable"
//	@Router			/api/invite/use [post].
func (h *PublicHandler) HandleRedeem(w http.ResponseWriter, r *http.Request) {
	var req brokersdk.RedeemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	res, err := h.Redeem.Redeem(r.Context(), service.RedeemRequest{
		Code:               req.Code,
		Email:              req.Email,
		PreferredAccountID: req.TeamAccountID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, brokersdk.RedeemResponse{
		Status:        "invited",
		Code:          res.Code,
		Email:         res.Email,
		TeamAccountID: res.AccountID,
		TeamName:      res.AccountName,
	})
}
