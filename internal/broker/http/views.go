package http

import (
	"time"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/service"
	"github.com/aussiebroadwan/seatbroker/pkg/brokersdk"
)

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func accountInfo(a domain.TeamAccount) brokersdk.TeamAccountInfo {
	info := brokersdk.TeamAccountInfo{
		ID:             a.ID,
		Name:           a.Name,
		HasCredential:  !a.Credential.IsZero(),
		CredentialKind: string(a.Credential.Kind),
		AccountID:      a.ExternalAccountID,
		SeatsEntitled:  a.SeatsEntitled,
		SeatsInUse:     a.SeatsInUse,
		PendingInvites: a.PendingInvites,
		Available:      a.Available(),
		Enabled:        a.Enabled,
		ActiveUntil:    a.ActiveUntil,
		LastSync:       formatTime(a.LastSyncAt),
		CreatedAt:      formatTime(&a.CreatedAt),
	}
	if a.BearerToken != "" {
		info.BearerExpiresAt = formatTime(a.BearerExpiresAt)
	}
	return info
}

func teamStatus(a domain.TeamAccount) brokersdk.TeamStatus {
	return brokersdk.TeamStatus{
		ID:             a.ID,
		Name:           a.Name,
		SeatsEntitled:  a.SeatsEntitled,
		SeatsInUse:     a.SeatsInUse,
		PendingInvites: a.PendingInvites,
		Available:      max(a.Available(), 0),
		ActiveUntil:    a.ActiveUntil,
	}
}

func codeInfo(v service.CodeView) brokersdk.CodeInfo {
	return brokersdk.CodeInfo{
		ID:            v.ID,
		Code:          v.Code,
		TeamAccountID: v.TeamAccountID,
		TeamName:      v.AccountName,
		Used:          v.Used,
		Reserved:      v.Reserved(),
		UsedEmail:     v.UsedEmail,
		UsedAt:        formatTime(v.UsedAt),
		CreatedAt:     formatTime(&v.CreatedAt),
	}
}

func batchResponse(report service.BatchReport) brokersdk.BatchInviteResponse {
	out := brokersdk.BatchInviteResponse{
		Results:   make([]brokersdk.BatchInviteResult, len(report.Results)),
		Succeeded: report.Succeeded,
		Failed:    report.Failed,
	}
	for i, res := range report.Results {
		out.Results[i] = brokersdk.BatchInviteResult{
			Email:         res.Email,
			OK:            res.OK(),
			TeamAccountID: res.AccountID,
			TeamName:      res.AccountName,
		}
		if res.Err != nil {
			out.Results[i].Error = service.ErrorKind(res.Err)
			out.Results[i].Description = res.Err.Error()
		}
	}
	return out
}

func adminSettings(s service.AdminSettings) brokersdk.AdminSettingsResponse {
	proxies := s.ProxyList
	if proxies == nil {
		proxies = []string{}
	}
	return brokersdk.AdminSettingsResponse{
		SiteTitle:        s.SiteTitle,
		SiteNotice:       s.SiteNotice,
		ProxyEnabled:     s.ProxyEnabled,
		ProxyList:        proxies,
		HasAccessKey:     s.HasAccessKey,
		HasAdminPassword: s.HasAdminPassword,
		TOTPEnabled:      s.TOTPEnabled,
	}
}
