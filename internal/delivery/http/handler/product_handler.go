package handler

import (
	"datatrail/internal/delivery/http/dto"
	"datatrail/internal/delivery/http/response"
	"datatrail/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProductHandler struct {
	products usecase.ProductUsecase
	mapping  usecase.ProductMappingUsecase
}

func NewProductHandler(products usecase.ProductUsecase, mapping usecase.ProductMappingUsecase) *ProductHandler {
	return &ProductHandler{products: products, mapping: mapping}
}

func (h *ProductHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/list/products", h.ListProducts)
	r.Get("/productMapping/:productName", h.GetMapping)
}

func (h *ProductHandler) ListProducts(c fiber.Ctx) error {
	names, err := h.products.ListProducts(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Raw(c, fiber.StatusOK, dto.NewProductListResponse(names))
}

// GetMapping accepts optional startDate, endDate and selected query values.
func (h *ProductHandler) GetMapping(c fiber.Ctx) error {
	out, err := h.mapping.GetMapping(c.Context(), usecase.MappingParams{
		ProductName: c.Params("productName"),
		StartDate:   c.Query("startDate"),
		EndDate:     c.Query("endDate"),
		Selected:    c.Query("selected"),
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Raw(c, fiber.StatusOK, dto.ProductMappingResponse{
		ProductName:  out.ProductName,
		Dependencies: out.Dependencies,
		Graph:        out.Graph,
	})
}
