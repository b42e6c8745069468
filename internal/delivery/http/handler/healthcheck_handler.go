package handler

import (
	"context"
	"strings"

	"datatrail/internal/delivery/http/dto"
	"datatrail/internal/delivery/http/middleware"
	"datatrail/internal/delivery/http/response"
	"datatrail/internal/domain/healthcheck"
	"datatrail/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type productCacheInvalidator interface {
	InvalidateProduct(ctx context.Context, product string) error
}

type HealthCheckHandler struct {
	uc    usecase.HealthCheckUsecase
	cache productCacheInvalidator
}

func NewHealthCheckHandler(uc usecase.HealthCheckUsecase, cache productCacheInvalidator) *HealthCheckHandler {
	return &HealthCheckHandler{uc: uc, cache: cache}
}

func (h *HealthCheckHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/healthCheck/:productName", h.Check)
	r.Delete("/healthCheck/:productName/cache", h.Invalidate)
}

func (h *HealthCheckHandler) Check(c fiber.Ctx) error {
	var req dto.HealthCheckRequest
	if err := bindAndValidate(c, &req, dto.Validate); err != nil {
		return err
	}

	out, err := h.uc.Check(c.Context(), usecase.HealthCheckParams{
		ProductName: c.Params("productName"),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		SkipCache:   req.SkipCache,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	results := out.Report.Results
	if results == nil {
		results = []healthcheck.Result{}
	}
	return response.Raw(c, fiber.StatusOK, dto.HealthCheckResponse{
		ProductName:     out.ProductName,
		Results:         results,
		DroppedJobs:     out.Report.DroppedJobs,
		DroppedJobNames: out.Report.DroppedJobNames,
		UnhealthyJobs:   out.UnhealthyJobs(),
		Cached:          out.Cached,
	})
}

// Invalidate drops the cached reports of a product, typically after new
// observations were loaded.
func (h *HealthCheckHandler) Invalidate(c fiber.Ctx) error {
	product := strings.TrimSpace(c.Params("productName"))
	if product == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, nil)
	}
	if h.cache != nil {
		if err := h.cache.InvalidateProduct(c.Context(), product); err != nil {
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"productName": product})
}
