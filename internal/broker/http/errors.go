package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/seatbroker/internal/broker/service"
	"github.com/aussiebroadwan/seatbroker/pkg/brokersdk"
	"github.com/aussiebroadwan/seatbroker/pkg/httpx"
	"github.com/aussiebroadwan/seatbroker/pkg/slogx"
)

var kindStatus = map[string]int{
	service.KindNotFound:             http.StatusNotFound,
	service.KindAlreadyUsed:          http.StatusConflict,
	service.KindNoCapacity:           http.StatusServiceUnavailable,
	service.KindAccountMisconfigured: http.StatusUnprocessableEntity,
	service.KindAccountInUse:         http.StatusConflict,
	service.KindUpstreamAuth:         http.StatusBadGateway,
	service.KindUpstreamUnavailable:  http.StatusServiceUnavailable,
	service.KindUpstreamRejected:     http.StatusBadGateway,
	service.KindValidation:           http.StatusBadRequest,
	service.KindInvalidCredentials:   http.StatusUnauthorized,
	service.KindOTPRequired:          http.StatusUnauthorized,
	service.KindTimeout:              http.StatusGatewayTimeout,
}

// writeError renders err as an ErrorResponse. Internal errors are logged and
// their detail withheld.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	kind := service.ErrorKind(err)
	status, ok := kindStatus[kind]
	if !ok {
		log.Error("request failed", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, brokersdk.ErrorResponse{
			Error:            brokersdk.ErrorCodeInternal,
			ErrorDescription: "internal server error",
		})
		return
	}

	log.Debug("request rejected", "kind", kind, "error", err)
	httpx.WriteJSON(w, status, brokersdk.ErrorResponse{
		Error:            kind,
		ErrorDescription: err.Error(),
	})
}

func writeBadRequest(w http.ResponseWriter, description string) {
	httpx.WriteJSON(w, http.StatusBadRequest, brokersdk.ErrorResponse{
		Error:            brokersdk.ErrorCodeValidation,
		ErrorDescription: description,
	})
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}
