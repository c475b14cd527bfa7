/*
Package diarysdk is a Go client for the Reelbook diary service.

# Overview

SDKClient covers the anonymous endpoints: registration, e-mail verification,
login, public profiles and health probes. A successful Verify or Login
returns a Session, which carries the bearer token for every authenticated
call.

	client := diarysdk.NewSDKClient("http://localhost:8080")

	acct, err := client.Register(ctx, diarysdk.RegisterRequest{
		Handle:   "alice",
		Email:    "alice@example.com",
		Password: "Password1",
	})

	// The six digit code arrives by e-mail.
	session, err := client.Verify(ctx, "alice@example.com", code)

	me, err := session.Me(ctx)
	group, err := session.CreateGroup(ctx, diarysdk.CreateGroupRequest{Name: "Noir Club"})

# Unverified accounts

Login for an account that has not confirmed its address returns a
*VerificationRequiredError. A fresh code has already been sent by then:

	session, err := client.Login(ctx, "alice", "Password1")
	var pending *diarysdk.VerificationRequiredError
	if errors.As(err, &pending) {
		session, err = client.Verify(ctx, pending.Email, codeFromInbox)
	}

# Errors

Every non-2xx response becomes an *APIError carrying the HTTP status and the
stable error code, for example "already_following" or "code_expired". Use
IsCode to branch on it.

# Sessions

Tokens are stateless and are not refreshed. Once ExpiresAt has passed the
server treats the token as anonymous and authenticated calls fail with
"unauthorized"; log in again to get a new Session.
*/
package diarysdk
