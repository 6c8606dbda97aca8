package handler

import (
	"net/http"

	"anoa.com/kolabboard/internal/entity"
	"anoa.com/kolabboard/internal/modules/organization/dto"
	organization "anoa.com/kolabboard/internal/modules/organization/service"
	"anoa.com/kolabboard/pkg/response"
	"github.com/gin-gonic/gin"
)

type OrganizationHandler struct {
	service organization.Service
}

func NewOrganizationHandler(service organization.Service) *OrganizationHandler {
	return &OrganizationHandler{service: service}
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	principal, err := response.GetPrincipal(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	org, err := h.service.Create(c.Request.Context(), principal.ID, entity.NormalizeRole(principal.Role), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "organization created", org)
}

func (h *OrganizationHandler) MyWorkspaces(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	orgs, err := h.service.MyWorkspaces(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "workspaces retrieved", orgs)
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	orgID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	org, err := h.service.Get(c.Request.Context(), userID, orgID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "organization retrieved", org)
}

func (h *OrganizationHandler) Rename(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	orgID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	org, err := h.service.Rename(c.Request.Context(), userID, orgID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "organization renamed", org)
}

func (h *OrganizationHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	orgID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, orgID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "organization deleted", nil)
}

func (h *OrganizationHandler) Members(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	orgID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	members, err := h.service.Members(c.Request.Context(), userID, orgID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "members retrieved", members)
}

func (h *OrganizationHandler) Leave(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	orgID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Leave(c.Request.Context(), userID, orgID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "left the organization", nil)
}

func (h *OrganizationHandler) Kick(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	orgID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}
	targetID, ok := response.ParamUUID(c, "userId")
	if !ok {
		return
	}

	if err := h.service.Kick(c.Request.Context(), userID, orgID, targetID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "member removed", nil)
}

func (h *OrganizationHandler) CheckUser(c *gin.Context) {
	var req dto.CheckUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	found, err := h.service.CheckUser(c.Request.Context(), req.Email)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "user found", found)
}

func (h *OrganizationHandler) Invite(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	orgID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req dto.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	invitation, err := h.service.Invite(c.Request.Context(), userID, orgID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "invitation sent", invitation)
}

func (h *OrganizationHandler) PendingInvitations(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	invitations, err := h.service.PendingInvitations(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "invitations retrieved", invitations)
}

func (h *OrganizationHandler) AcceptInvitation(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	orgID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}
	invitationID, ok := response.ParamUUID(c, "invitationId")
	if !ok {
		return
	}

	if err := h.service.AcceptInvitation(c.Request.Context(), userID, orgID, invitationID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "joined the organization", nil)
}
