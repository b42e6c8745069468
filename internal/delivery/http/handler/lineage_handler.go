package handler

import (
	"datatrail/internal/delivery/http/dto"
	"datatrail/internal/delivery/http/response"
	"datatrail/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type LineageHandler struct {
	uc usecase.HighlightUsecase
}

func NewLineageHandler(uc usecase.HighlightUsecase) *LineageHandler {
	return &LineageHandler{uc: uc}
}

func (h *LineageHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/lineage/highlight", h.Highlight)
}

func (h *LineageHandler) Highlight(c fiber.Ctx) error {
	var req dto.HighlightRequest
	if err := bindAndValidate(c, &req, dto.Validate); err != nil {
		return err
	}

	edges, err := h.uc.Highlight(req.DomainEdges(), req.Selected)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Raw(c, fiber.StatusOK, dto.HighlightResponse{Edges: edges})
}
