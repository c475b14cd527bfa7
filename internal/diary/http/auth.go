package http

import (
	"net/http"

	"github.com/aussiebroadwan/reelbook/internal/diary/service"
	"github.com/aussiebroadwan/reelbook/pkg/diarysdk"
	"github.com/aussiebroadwan/reelbook/pkg/httpx"
)

// AuthHandler serves registration, verification and login.
type AuthHandler struct {
	Accounts *service.AccountService
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Create an unverified account and e-mail a six digit verification code
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		diarysdk.RegisterRequest	true	"handle, email, password"
//	@Success		201		{object}	diarysdk.AccountResponse
//	@Failure		400		{object}	diarysdk.ErrorResponse	"invalid_input"
//	@Failure		409		{object}	diarysdk.ErrorResponse	"conflict: handle or email taken"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req diarysdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	account, err := h.Accounts.Register(r.Context(), service.RegisterInput{
		Handle:   req.Handle,
		Address:  req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAccountResponse(account))
}

// HandleVerify godoc
//
//	@Summary		Verify E-mail Address
//	@Description	Confirm an address with its pending code; returns a session token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		diarysdk.VerifyRequest	true	"email, code"
//	@Success		200		{object}	diarysdk.TokenResponse
//	@Failure		400		{object}	diarysdk.ErrorResponse	"invalid_input, code_expired, code_mismatch"
//	@Failure		404		{object}	diarysdk.ErrorResponse	"not_found"
//	@Failure		409		{object}	diarysdk.ErrorResponse	"already_verified"
//	@Router			/v1/auth/verify [post].
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req diarysdk.VerifyRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	res, err := h.Accounts.Verify(r.Context(), req.Email, req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(res.Account, res.Token))
}

// HandleResend godoc
//
//	@Summary		Resend Verification Code
//	@Description	Replace the pending code of an unverified account and e-mail it again
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	diarysdk.ResendRequest	true	"email"
//	@Success		202
//	@Failure		404	{object}	diarysdk.ErrorResponse	"not_found"
//	@Failure		409	{object}	diarysdk.ErrorResponse	"already_verified"
//	@Router			/v1/auth/resend [post].
func (h *AuthHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	var req diarysdk.ResendRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := h.Accounts.Resend(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// HandleLogin godoc
//
//	@Summary		Login
//	@Description	Authenticate with a handle or e-mail address and a password.
//	@Description	Unverified accounts get 202 and a fresh code instead of a token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		diarysdk.LoginRequest	true	"identifier, password"
//	@Success		200		{object}	diarysdk.TokenResponse
//	@Success		202		{object}	diarysdk.VerificationPendingResponse
//	@Failure		401		{object}	diarysdk.ErrorResponse	"invalid_credentials"
//	@Failure		404		{object}	diarysdk.ErrorResponse	"not_found"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req diarysdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	res, err := h.Accounts.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if res.NeedsVerification {
		httpx.WriteJSON(w, http.StatusAccepted, diarysdk.VerificationPendingResponse{
			NeedsVerification: true,
			Email:             res.Account.Address,
		})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(res.Account, *res.Token))
}
