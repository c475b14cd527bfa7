package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/reelbook/internal/diary/domain"
	"github.com/aussiebroadwan/reelbook/internal/diary/service"
	"github.com/aussiebroadwan/reelbook/pkg/diarysdk"
	"github.com/aussiebroadwan/reelbook/pkg/httpx"
)

// GroupsHandler serves movie groups, their members and their chat.
type GroupsHandler struct {
	Groups *service.GroupService
}

// HandleCreate godoc
//
//	@Summary		Create Group
//	@Description	The caller becomes the group's ADMIN creator; member_ids join as MEMBER
//	@Tags			Groups
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		diarysdk.CreateGroupRequest	true	"name, description, member_ids"
//	@Success		201		{object}	diarysdk.GroupDetailsResponse
//	@Failure		400		{object}	diarysdk.ErrorResponse	"invalid_input"
//	@Failure		404		{object}	diarysdk.ErrorResponse	"unknown member id"
//	@Router			/v1/groups [post].
func (h *GroupsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req diarysdk.CreateGroupRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	details, err := h.Groups.Create(r.Context(), caller(r).AccountID, service.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toGroupDetails(details))
}

// HandleList godoc
//
//	@Summary		My Groups
//	@Tags			Groups
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	diarysdk.GroupListResponse
//	@Router			/v1/groups [get].
func (h *GroupsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Groups.ForAccount(r.Context(), caller(r).AccountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toGroupList(groups))
}

// HandleGet godoc
//
//	@Summary		Group Page
//	@Description	Group, members and the 50 most recent messages. Members only.
//	@Tags			Groups
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"group id"
//	@Success		200	{object}	diarysdk.GroupDetailsResponse
//	@Failure		403	{object}	diarysdk.ErrorResponse
//	@Failure		404	{object}	diarysdk.ErrorResponse
//	@Router			/v1/groups/{id} [get].
func (h *GroupsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	details, err := h.Groups.Details(r.Context(), r.PathValue("id"), caller(r).AccountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toGroupDetails(details))
}

// HandleJoin godoc
//
//	@Summary		Join Group
//	@Tags			Groups
//	@Security		BearerAuth
//	@Param			id	path	string	true	"group id"
//	@Success		204
//	@Failure		404	{object}	diarysdk.ErrorResponse
//	@Failure		409	{object}	diarysdk.ErrorResponse	"already_member"
//	@Router			/v1/groups/{id}/join [post].
func (h *GroupsHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	if err := h.Groups.Join(r.Context(), r.PathValue("id"), caller(r).AccountID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleLeave godoc
//
//	@Summary		Leave Group
//	@Tags			Groups
//	@Security		BearerAuth
//	@Param			id	path	string	true	"group id"
//	@Success		204
//	@Failure		403	{object}	diarysdk.ErrorResponse	"creator_cannot_leave"
//	@Failure		409	{object}	diarysdk.ErrorResponse	"not_member"
//	@Router			/v1/groups/{id}/leave [post].
func (h *GroupsHandler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	if err := h.Groups.Leave(r.Context(), r.PathValue("id"), caller(r).AccountID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleMembers godoc
//
//	@Summary		Group Members
//	@Tags			Groups
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	string	true	"group id"
//	@Success		200	{array}	diarysdk.MemberResponse
//	@Failure		403	{object}	diarysdk.ErrorResponse
//	@Router			/v1/groups/{id}/members [get].
func (h *GroupsHandler) HandleMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Groups.MembersFor(r.Context(), r.PathValue("id"), caller(r).AccountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toMembers(members))
}

// HandleListMessages godoc
//
//	@Summary		Recent Messages
//	@Description	Newest first. limit defaults to 50 and is capped at 200.
//	@Tags			Groups
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string	true	"group id"
//	@Param			limit	query		int		false	"maximum number of messages"
//	@Success		200		{object}	diarysdk.MessageListResponse
//	@Failure		403		{object}	diarysdk.ErrorResponse
//	@Router			/v1/groups/{id}/messages [get].
func (h *GroupsHandler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeBadRequest(w, "limit must be an integer")
			return
		}
		limit = n
	}

	messages, err := h.Groups.MessagesFor(r.Context(), r.PathValue("id"), caller(r).AccountID, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, diarysdk.MessageListResponse{Messages: toMessages(messages)})
}

// HandleSendMessage godoc
//
//	@Summary		Send Message
//	@Tags			Groups
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"group id"
//	@Param			request	body		diarysdk.SendMessageRequest	true	"content"
//	@Success		201		{object}	diarysdk.MessageResponse
//	@Failure		400		{object}	diarysdk.ErrorResponse	"invalid_input"
//	@Failure		409		{object}	diarysdk.ErrorResponse	"not_member"
//	@Router			/v1/groups/{id}/messages [post].
func (h *GroupsHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req diarysdk.SendMessageRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	msg, err := h.Groups.SendMessage(r.Context(), r.PathValue("id"), caller(r).AccountID, req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toMessageResponse(msg))
}

// HandleSetMemberRole godoc
//
//	@Summary		Set Member Role
//	@Description	Group ADMINs promote or demote members. The creator stays ADMIN.
//	@Tags			Groups
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id			path		string					true	"group id"
//	@Param			accountID	path		string					true	"member account id"
//	@Param			request		body		diarysdk.SetRoleRequest	true	"ADMIN or MEMBER"
//	@Success		200			{object}	diarysdk.MemberResponse
//	@Failure		403			{object}	diarysdk.ErrorResponse
//	@Failure		409			{object}	diarysdk.ErrorResponse	"not_member"
//	@Router			/v1/groups/{id}/members/{accountID}/role [put].
func (h *GroupsHandler) HandleSetMemberRole(w http.ResponseWriter, r *http.Request) {
	var req diarysdk.SetRoleRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	m, err := h.Groups.SetMemberRole(r.Context(),
		r.PathValue("id"), caller(r).AccountID, r.PathValue("accountID"),
		domain.MemberRole(req.Role),
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toMemberResponse(m))
}
