package handler

import (
	"net/http"

	"anoa.com/kolabboard/internal/entity"
	"anoa.com/kolabboard/internal/modules/board/dto"
	board "anoa.com/kolabboard/internal/modules/board/service"
	"anoa.com/kolabboard/pkg/response"
	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	service board.Service
}

func NewBoardHandler(service board.Service) *BoardHandler {
	return &BoardHandler{service: service}
}

func (h *BoardHandler) Create(c *gin.Context) {
	principal, err := response.GetPrincipal(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), principal.ID, entity.NormalizeRole(principal.Role), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "board created", b)
}

func (h *BoardHandler) ListByOrganization(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	orgID, ok := response.ParamUUID(c, "organizationId")
	if !ok {
		return
	}

	boards, err := h.service.ListByOrganization(c.Request.Context(), userID, orgID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "boards retrieved", boards)
}

func (h *BoardHandler) Get(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	boardID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), userID, boardID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "board retrieved", b)
}

func (h *BoardHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	boardID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	b, err := h.service.Update(c.Request.Context(), userID, boardID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "board updated", b)
}

func (h *BoardHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	boardID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, boardID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "board deleted", nil)
}
