package http

import (
	"net/http"

	"github.com/aussiebroadwan/reelbook/internal/diary/domain"
	"github.com/aussiebroadwan/reelbook/internal/diary/service"
	"github.com/aussiebroadwan/reelbook/pkg/diarysdk"
	"github.com/aussiebroadwan/reelbook/pkg/httpx"
)

// UsersHandler serves profiles and the follow graph.
type UsersHandler struct {
	Accounts *service.AccountService
	Social   *service.SocialService
}

// HandleMe godoc
//
//	@Summary		Own Profile
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	diarysdk.ProfileResponse
//	@Failure		401	{object}	diarysdk.ErrorResponse
//	@Router			/v1/users/me [get].
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p, err := h.Accounts.Profile(r.Context(), caller(r).AccountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProfileResponse(p, true))
}

// HandleUpdateMe godoc
//
//	@Summary		Update Profile
//	@Description	Change handle, e-mail address or bio. Omitted fields are left as they are.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		diarysdk.UpdateProfileRequest	true	"fields to change"
//	@Success		200		{object}	diarysdk.AccountResponse
//	@Failure		400		{object}	diarysdk.ErrorResponse	"invalid_input"
//	@Failure		409		{object}	diarysdk.ErrorResponse	"conflict"
//	@Router			/v1/users/me [patch].
func (h *UsersHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	var req diarysdk.UpdateProfileRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	account, err := h.Accounts.UpdateProfile(r.Context(), caller(r).AccountID, service.ProfileUpdate{
		Handle:  req.Handle,
		Address: req.Email,
		Bio:     req.Bio,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(account))
}

// HandleChangePassword godoc
//
//	@Summary		Change Password
//	@Tags			Users
//	@Accept			json
//	@Security		BearerAuth
//	@Param			request	body	diarysdk.ChangePasswordRequest	true	"current_password, new_password"
//	@Success		204
//	@Failure		400	{object}	diarysdk.ErrorResponse	"invalid_input"
//	@Failure		401	{object}	diarysdk.ErrorResponse	"invalid_credentials"
//	@Router			/v1/users/me/password [put].
func (h *UsersHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req diarysdk.ChangePasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := h.Accounts.ChangePassword(r.Context(), caller(r).AccountID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSearch godoc
//
//	@Summary		Search Users
//	@Description	Case-insensitive handle search, at most 10 results
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			q	query		string	true	"part of a handle"
//	@Success		200	{object}	diarysdk.UserListResponse
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	found, err := h.Accounts.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserList(found))
}

// HandleGet godoc
//
//	@Summary		User Profile
//	@Description	Public profile with follow counts. Private fields are included for the owner.
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string	true	"account id"
//	@Success		200	{object}	diarysdk.ProfileResponse
//	@Failure		404	{object}	diarysdk.ErrorResponse
//	@Router			/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, err := h.Accounts.Profile(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	viewer, _ := httpx.PrincipalFrom(r.Context())
	httpx.WriteJSON(w, http.StatusOK, toProfileResponse(p, viewer.AccountID == id))
}

// HandleFollow godoc
//
//	@Summary		Follow
//	@Tags			Users
//	@Security		BearerAuth
//	@Param			id	path	string	true	"account to follow"
//	@Success		204
//	@Failure		400	{object}	diarysdk.ErrorResponse	"self_follow"
//	@Failure		404	{object}	diarysdk.ErrorResponse	"not_found"
//	@Failure		409	{object}	diarysdk.ErrorResponse	"already_following"
//	@Router			/v1/users/{id}/follow [post].
func (h *UsersHandler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	if err := h.Social.Follow(r.Context(), caller(r).AccountID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUnfollow godoc
//
//	@Summary		Unfollow
//	@Tags			Users
//	@Security		BearerAuth
//	@Param			id	path	string	true	"account to unfollow"
//	@Success		204
//	@Failure		409	{object}	diarysdk.ErrorResponse	"not_following"
//	@Router			/v1/users/{id}/follow [delete].
func (h *UsersHandler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	if err := h.Social.Unfollow(r.Context(), caller(r).AccountID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleFollowers godoc
//
//	@Summary		Followers
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string	true	"account id"
//	@Success		200	{object}	diarysdk.UserListResponse
//	@Failure		404	{object}	diarysdk.ErrorResponse
//	@Router			/v1/users/{id}/followers [get].
func (h *UsersHandler) HandleFollowers(w http.ResponseWriter, r *http.Request) {
	list, err := h.Social.Followers(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserList(list))
}

// HandleFollowing godoc
//
//	@Summary		Following
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string	true	"account id"
//	@Success		200	{object}	diarysdk.UserListResponse
//	@Failure		404	{object}	diarysdk.ErrorResponse
//	@Router			/v1/users/{id}/following [get].
func (h *UsersHandler) HandleFollowing(w http.ResponseWriter, r *http.Request) {
	list, err := h.Social.Following(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserList(list))
}

// HandleSetRole godoc
//
//	@Summary		Set Account Role
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string					true	"account id"
//	@Param			request	body		diarysdk.SetRoleRequest	true	"USER or ADMIN"
//	@Success		200		{object}	diarysdk.AccountResponse
//	@Failure		403		{object}	diarysdk.ErrorResponse
//	@Failure		404		{object}	diarysdk.ErrorResponse
//	@Router			/v1/admin/users/{id}/role [put].
func (h *UsersHandler) HandleSetRole(w http.ResponseWriter, r *http.Request) {
	var req diarysdk.SetRoleRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	account, err := h.Accounts.SetRole(r.Context(), r.PathValue("id"), domain.Role(req.Role))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(account))
}
