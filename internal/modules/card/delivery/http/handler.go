package handler

import (
	"net/http"

	"anoa.com/kolabboard/internal/modules/card/dto"
	card "anoa.com/kolabboard/internal/modules/card/service"
	"anoa.com/kolabboard/pkg/response"
	"github.com/gin-gonic/gin"
)

type CardHandler struct {
	service card.Service
}

func NewCardHandler(service card.Service) *CardHandler {
	return &CardHandler{service: service}
}

func (h *CardHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	cd, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "card created", cd)
}

func (h *CardHandler) ListByBoard(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	boardID, ok := response.ParamUUID(c, "boardId")
	if !ok {
		return
	}

	cards, err := h.service.ListByBoard(c.Request.Context(), userID, boardID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "cards retrieved", cards)
}

func (h *CardHandler) Get(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	cardID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	cd, err := h.service.Get(c.Request.Context(), userID, cardID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "card retrieved", cd)
}

func (h *CardHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	cardID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	cd, err := h.service.Update(c.Request.Context(), userID, cardID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "card updated", cd)
}

func (h *CardHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	cardID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, cardID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "card deleted", nil)
}

func (h *CardHandler) Search(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query dto.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err)
		return
	}

	cards, err := h.service.Search(c.Request.Context(), userID, query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "cards retrieved", cards)
}
