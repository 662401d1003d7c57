package broker_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/seatbroker/pkg/brokersdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitAdminLogin verifies password guessing is throttled after the
// strict limit of 5 requests per minute.
func TestRateLimitAdminLogin(t *testing.T) {
	baseURL, cleanup := setupBrokerWithDefaultRateLimits(t)
	defer cleanup()

	client := brokersdk.NewClient(baseURL)
	ctx := t.Context()

	for i := range 5 {
		err := client.AdminLogin(ctx, "wrong-password", "")
		assertAPIError(t, err, http.StatusUnauthorized, brokersdk.ErrorCodeInvalidCredentials)
		t.Logf("attempt %d rejected as expected", i+1)
	}

	err := client.AdminLogin(ctx, adminPassword, "")
	assertAPIError(t, err, http.StatusTooManyRequests, brokersdk.ErrorCodeRateLimited)
}

// TestRateLimitRedeem verifies code guessing is throttled.
func TestRateLimitRedeem(t *testing.T) {
	baseURL, cleanup := setupBrokerWithDefaultRateLimits(t)
	defer cleanup()

	client := brokersdk.NewClient(baseURL)
	ctx := t.Context()

	var lastErr error
	for range 6 {
		_, lastErr = client.Redeem(ctx, brokersdk.RedeemRequest{Code: "GUESS0000000", Email: "user@example.com"})
		require.Error(t, lastErr)
	}
	assertAPIError(t, lastErr, http.StatusTooManyRequests, brokersdk.ErrorCodeRateLimited)
}
