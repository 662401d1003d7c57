/*
Package brokersdk is a client for the seat broker HTTP API and holds the
request and response types the server renders.

# Overview

The broker has three audiences:

  - the public: site settings, access-key check, seat status, code
    pre-check and redemption
  - administrators: team accounts, invite codes, settings and TOTP
  - operators: liveness and readiness probes

Authentication is cookie based. A Client keeps a cookie jar, so logging in
once is enough for later calls:

	client := brokersdk.NewClient("https://seats.example.com")

	if _, err := client.VerifyAccessKey(ctx, "door-key"); err != nil {
		return err
	}
	res, err := client.Redeem(ctx, brokersdk.RedeemRequest{
		Code:  "ABCD1234WXYZ",
		Email: "alice@example.com",
	})

Admin calls need an admin session:

	if err := client.AdminLogin(ctx, password, ""); err != nil {
		var apiErr *brokersdk.APIError
		if errors.As(err, &apiErr) && apiErr.Code == brokersdk.ErrorCodeOTPRequired {
			// ask for a one-time code and try again
		}
	}
	codes, err := client.GenerateCodes(ctx, brokersdk.GenerateCodesRequest{Count: 10})

# Errors

Every non-2xx response is returned as *APIError carrying the stable error
code (see the ErrorCode constants) and a human readable description.
*/
package brokersdk
