package handler

import (
	"net/http"

	"anoa.com/kolabboard/internal/modules/list/dto"
	list "anoa.com/kolabboard/internal/modules/list/service"
	"anoa.com/kolabboard/pkg/response"
	"github.com/gin-gonic/gin"
)

type ListHandler struct {
	service list.Service
}

func NewListHandler(service list.Service) *ListHandler {
	return &ListHandler{service: service}
}

func (h *ListHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	l, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "list created", l)
}

func (h *ListHandler) ListByBoard(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	boardID, ok := response.ParamUUID(c, "boardId")
	if !ok {
		return
	}

	lists, err := h.service.ListByBoard(c.Request.Context(), userID, boardID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "lists retrieved", lists)
}

func (h *ListHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	listID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	l, err := h.service.Update(c.Request.Context(), userID, listID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "list updated", l)
}

func (h *ListHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	listID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, listID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "list deleted", nil)
}
