package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/service"
	"github.com/aussiebroadwan/seatbroker/internal/broker/upstream"
	"github.com/aussiebroadwan/seatbroker/pkg/brokersdk"
	"github.com/aussiebroadwan/seatbroker/pkg/httpx"
)

type TeamAccountsHandler struct {
	Accounts *service.AccountService
	Ledger   *service.LedgerService
	Batch    *service.BatchService
}

// accountInput maps a request onto the service input. A credential without
// an explicit kind is classified from its shape.
func accountInput(req brokersdk.TeamAccountRequest) (service.AccountInput, error) {
	in := service.AccountInput{
		Name:              req.Name,
		SeatsEntitled:     req.SeatsEntitled,
		Enabled:           req.Enabled,
		ExternalAccountID: strings.TrimSpace(req.AccountID),
	}

	value := strings.TrimSpace(req.Credential)
	if value == "" {
		return in, nil
	}

	kind, err := domain.ParseCredentialKind(req.CredentialKind)
	if err != nil {
		return in, err
	}
	if kind == domain.CredentialNone {
		kind = upstream.Classify(value).Kind
	}
	in.Credential = &domain.Credential{Kind: kind, Value: upstream.StripBearer(value)}
	return in, nil
}

func writeAccountResult(w http.ResponseWriter, status int, res service.AccountResult) {
	httpx.WriteJSON(w, status, brokersdk.TeamAccountWriteResponse{
		Account:      accountInfo(res.Account),
		AutoDetected: res.AutoDetected,
		AutoError:    res.AutoError,
	})
}

// HandleList godoc
//
//	@Summary		List Team Accounts
//	@Description	All team accounts with their seat ledger. Credential values are never returned.
//	@Tags			Team Accounts
//	@Produce		json
//	@Security		AdminSession
//	@Success		200	{object}	brokersdk.ListTeamAccountsResponse
//	@Failure		401	{object}	brokersdk.ErrorResponse	"unauthorized"
//	@Router			/api/admin/team-accounts [get].
func (h *TeamAccountsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Accounts.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := brokersdk.ListTeamAccountsResponse{Accounts: make([]brokersdk.TeamAccountInfo, 0, len(accounts))}
	for _, a := range accounts {
		out.Accounts = append(out.Accounts, accountInfo(a))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate godoc
//
//	@Summary		Create Team Account
//	@Description	Creates an account. A supplied credential is exchanged immediately and the remote account id detected when omitted;
//	@Description	exchange failures are reported in auto_error without failing the write.
//	@Tags			Team Accounts
//	@Accept			json
//	@Produce		json
//	@Security		AdminSession
//	@Param			request	body		brokersdk.TeamAccountRequest	true	"Account"
//	@Success		201		{object}	brokersdk.TeamAccountWriteResponse
//	@Failure		400		{object}	brokersdk.ErrorResponse	"validation"
//	@Router			/api/admin/team-accounts [post].
func (h *TeamAccountsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req brokersdk.TeamAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	in, err := accountInput(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.Accounts.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeAccountResult(w, http.StatusCreated, res)
}

// HandleUpdate godoc
//
//	@Summary		Update Team Account
//	@Description	Omitted optional fields keep their value. A new credential clears the cached bearer and is exchanged immediately.
//	@Tags			Team Accounts
//	@Accept			json
//	@Produce		json
//	@Security		AdminSession
//	@Param			id		path		int								true	"Account ID"
//	@Param			request	body		brokersdk.TeamAccountRequest	true	"Account"
//	@Success		200		{object}	brokersdk.TeamAccountWriteResponse
//	@Failure		400		{object}	brokersdk.ErrorResponse	"validation"
//	@Failure		404		{object}	brokersdk.ErrorResponse	"not_found"
//	@Router			/api/admin/team-accounts/{id} [put].
func (h *TeamAccountsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid account id")
		return
	}

	var req brokersdk.TeamAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	in, err := accountInput(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.Accounts.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeAccountResult(w, http.StatusOK, res)
}

// HandleDelete godoc
//
//	@Summary		Delete Team Account
//	@Description	Refuses while invite codes reference the account
//	@Tags			Team Accounts
//	@Security		AdminSession
//	@Param			id	path	int	true	"Account ID"
//	@Success		204
//	@Failure		404	{object}	brokersdk.ErrorResponse	"not_found"
//	@Failure		409	{object}	brokersdk.ErrorResponse	"account_in_use"
//	@Router			/api/admin/team-accounts/{id} [delete].
func (h *TeamAccountsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid account id")
		return
	}
	if err := h.Accounts.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleSync godoc
//
//	@Summary		Sync Team Account
//	@Description	Refreshes seats in use, entitlement, pending invites and subscription end from the remote service
//	@Tags			Team Accounts
//	@Produce		json
//	@Security		AdminSession
//	@Param			id	path		int	true	"Account ID"
//	@Success		200	{object}	brokersdk.TeamAccountInfo
//	@Failure		404	{object}	brokersdk.ErrorResponse	"not_found"
//	@Failure		502	{object}	brokersdk.ErrorResponse	"upstream_auth, upstream_rejected"
//	@Failure		503	{object}	brokersdk.ErrorResponse	"upstream_unavailable"
//	@Router			/api/admin/team-accounts/{id}/sync [post].
func (h *TeamAccountsHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid account id")
		return
	}
	a, err := h.Ledger.Sync(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, accountInfo(a))
}

// HandleBatchInvite godoc
//
//	@Summary		Batch Invite To Account
//	@Description	Invites every email to one account. Per-email failures are reported in the results.
//	@Tags			Team Accounts
//	@Accept			json
//	@Produce		json
//	@Security		AdminSession
//	@Param			id		path		int							true	"Account ID"
//	@Param			request	body		brokersdk.BatchInviteRequest	true	"Emails"
//	@Success		200		{object}	brokersdk.BatchInviteResponse
//	@Failure		400		{object}	brokersdk.ErrorResponse	"validation"
//	@Failure		404		{object}	brokersdk.ErrorResponse	"not_found"
//	@Router			/api/admin/team-accounts/{id}/batch-invite [post].
func (h *TeamAccountsHandler) HandleBatchInvite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid account id")
		return
	}

	var req brokersdk.BatchInviteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	report, err := h.Batch.InviteToAccount(r.Context(), id, req.Emails)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, batchResponse(report))
}

// HandleSmartBatchInvite godoc
//
//	@Summary		Smart Batch Invite
//	@Description	Spreads the emails across accounts, always picking the one with the most free seats
//	@Tags			Team Accounts
//	@Accept			json
//	@Produce		json
//	@Security		AdminSession
//	@Param			request	body		brokersdk.BatchInviteRequest	true	"Emails"
//	@Success		200		{object}	brokersdk.BatchInviteResponse
//	@Failure		400		{object}	brokersdk.ErrorResponse	"validation"
//	@Router			/api/admin/team-accounts/smart-batch-invite [post].
func (h *TeamAccountsHandler) HandleSmartBatchInvite(w http.ResponseWriter, r *http.Request) {
	var req brokersdk.BatchInviteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	report, err := h.Batch.SmartInvite(r.Context(), req.Emails)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, batchResponse(report))
}

// HandleCheckout godoc
//
//	@Summary		Checkout Link
//	@Description	Requests a subscription checkout link for the account
//	@Tags			Team Accounts
//	@Produce		json
//	@Security		AdminSession
//	@Param			id	path		int	true	"Account ID"
//	@Success		200	{object}	brokersdk.CheckoutResponse
//	@Failure		404	{object}	brokersdk.ErrorResponse	"not_found"
//	@Failure		502	{object}	brokersdk.ErrorResponse	"upstream_auth, upstream_rejected"
//	@Router			/api/admin/team-accounts/{id}/checkout [post].
func (h *TeamAccountsHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid account id")
		return
	}
	url, err := h.Accounts.Checkout(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, brokersdk.CheckoutResponse{URL: url})
}

// HandleClassifyCredential godoc
//
//	@Summary		Classify Credential
//	@Description	Guesses a pasted token's kind: rt_ prefix is refresh, a decodable JWT is bearer, anything else is a session cookie.
//	@Description	The JWT signature is not verified.
//	@Tags			Team Accounts
//	@Accept			json
//	@Produce		json
//	@Security		AdminSession
//	@Param			request	body		brokersdk.ClassifyCredentialRequest	true	"Credential"
//	@Success		200		{object}	brokersdk.ClassifyCredentialResponse
//	@Failure		400		{object}	brokersdk.ErrorResponse	"validation"
//	@Router			/api/admin/credentials/classify [post].
func HandleClassifyCredential(w http.ResponseWriter, r *http.Request) {
	var req brokersdk.ClassifyCredentialRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(req.Credential) == "" {
		writeBadRequest(w, "credential is required")
		return
	}

	c := upstream.Classify(req.Credential)
	httpx.WriteJSON(w, http.StatusOK, brokersdk.ClassifyCredentialResponse{
		Kind:      string(c.Kind),
		ExpiresAt: formatTime(c.ExpiresAt),
	})
}
