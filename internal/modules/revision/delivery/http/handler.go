package handler

import (
	"net/http"

	"anoa.com/kolabboard/internal/modules/revision/dto"
	revision "anoa.com/kolabboard/internal/modules/revision/service"
	"anoa.com/kolabboard/pkg/response"
	"github.com/gin-gonic/gin"
)

type RevisionHandler struct {
	service revision.Service
}

func NewRevisionHandler(service revision.Service) *RevisionHandler {
	return &RevisionHandler{service: service}
}

func (h *RevisionHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateRevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	rev, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "revision created", rev)
}

func (h *RevisionHandler) ListByCard(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	cardID, ok := response.ParamUUID(c, "cardId")
	if !ok {
		return
	}

	revisions, err := h.service.ListByCard(c.Request.Context(), userID, cardID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "revisions retrieved", revisions)
}
