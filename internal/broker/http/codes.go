package http

import (
	"net/http"

	"github.com/aussiebroadwan/seatbroker/internal/broker/service"
	"github.com/aussiebroadwan/seatbroker/pkg/brokersdk"
	"github.com/aussiebroadwan/seatbroker/pkg/httpx"
)

type CodesHandler struct {
	Codes *service.CodeService
}

// HandleList godoc
//
//	@Summary		List Invite Codes
//	@Description	All codes, newest first, with the bound account name
//	@Tags			Invite Codes
//	@Produce		json
//	@Security		AdminSession
//	@Success		200	{object}	brokersdk.ListCodesResponse
//	@Router			/api/admin/codes [get].
func (h *CodesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	views, err := h.Codes.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := brokersdk.ListCodesResponse{Codes: make([]brokersdk.CodeInfo, 0, len(views))}
	for _, v := range views {
		out.Codes = append(out.Codes, codeInfo(v))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGenerate godoc
//
//	@Summary		Generate Invite Codes
//	@Description	Generates 1 to 50 single-use codes, optionally bound to one account
//	@Tags			Invite Codes
//	@Accept			json
//	@Produce		json
//	@Security		AdminSession
//	@Param			request	body		brokersdk.GenerateCodesRequest	true	"Count and optional account"
//	@Success		201		{object}	brokersdk.GenerateCodesResponse
//	@Failure		400		{object}	brokersdk.ErrorResponse	"validation"
//	@Router			/api/admin/codes [post].
func (h *CodesHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req brokersdk.GenerateCodesRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	codes, err := h.Codes.Generate(r.Context(), req.Count, req.TeamAccountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, brokersdk.GenerateCodesResponse{Codes: codes, Created: len(codes)})
}

// HandleDelete godoc
//
//	@Summary		Delete Invite Code
//	@Tags			Invite Codes
//	@Security		AdminSession
//	@Param			id	path	int	true	"Code ID"
//	@Success		204
//	@Failure		404	{object}	brokersdk.ErrorResponse	"not_found"
//	@Router			/api/admin/codes/{id} [delete].
func (h *CodesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid code id")
		return
	}
	if err := h.Codes.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteUsed godoc
//
//	@Summary		Clear Used Codes
//	@Description	Deletes every redeemed code. Codes still reserved by an in-flight redemption are kept.
//	@Tags			Invite Codes
//	@Produce		json
//	@Security		AdminSession
//	@Success		200	{object}	brokersdk.DeleteUsedCodesResponse
//	@Router			/api/admin/codes/clear-used [post].
func (h *CodesHandler) HandleDeleteUsed(w http.ResponseWriter, r *http.Request) {
	n, err := h.Codes.DeleteUsed(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, brokersdk.DeleteUsedCodesResponse{Deleted: n})
}

// HandleExport godoc
//
//	@Summary		Export Unused Codes
//	@Tags			Invite Codes
//	@Produce		json
//	@Security		AdminSession
//	@Success		200	{object}	brokersdk.ExportCodesResponse
//	@Router			/api/admin/codes/export [get].
func (h *CodesHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	codes, err := h.Codes.ExportUnused(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if codes == nil {
		codes = []string{}
	}
	httpx.WriteJSON(w, http.StatusOK, brokersdk.ExportCodesResponse{Codes: codes, Count: len(codes)})
}
