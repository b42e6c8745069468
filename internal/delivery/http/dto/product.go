package dto

import "datatrail/internal/domain/lineage"

type ProductResponse struct {
	ProductName string `json:"product_name"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

func NewProductListResponse(names []string) ProductListResponse {
	out := ProductListResponse{Products: make([]ProductResponse, 0, len(names))}
	for _, n := range names {
		out.Products = append(out.Products, ProductResponse{ProductName: n})
	}
	return out
}

type ProductMappingResponse struct {
	ProductName  string               `json:"productName"`
	Dependencies []lineage.Dependency `json:"dependencies"`
	Graph        lineage.Graph        `json:"graph"`
}
