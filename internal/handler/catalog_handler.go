package handler

import (
	"go-dealer-stock/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

type brandRequest struct {
	Name string `json:"name"`
}

type modelRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CreateBrand handles POST /api/dealer/brands
func (h *CatalogHandler) CreateBrand(c *fiber.Ctx) error {
	dealerID, err := getDealerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req brandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	brand, err := h.service.CreateBrand(c.Context(), dealerID, req.Name)
	if err != nil {
		return c.Status(serviceErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(brand)
}

// ListBrands handles GET /api/dealer/brands
func (h *CatalogHandler) ListBrands(c *fiber.Ctx) error {
	dealerID, err := getDealerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	brands, err := h.service.ListBrands(c.Context(), dealerID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(brands)
}

// UpdateBrand handles PUT /api/dealer/brands/:id
func (h *CatalogHandler) UpdateBrand(c *fiber.Ctx) error {
	dealerID, err := getDealerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	brandID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid brand ID"})
	}

	var req brandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	brand, err := h.service.UpdateBrand(c.Context(), dealerID, brandID, req.Name)
	if err != nil {
		return c.Status(serviceErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(brand)
}

// DeleteBrand handles DELETE /api/dealer/brands/:id
func (h *CatalogHandler) DeleteBrand(c *fiber.Ctx) error {
	dealerID, err := getDealerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	brandID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid brand ID"})
	}

	if err := h.service.DeleteBrand(c.Context(), dealerID, brandID); err != nil {
		return c.Status(serviceErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Brand deleted"})
}

// CreateModel handles POST /api/dealer/brands/:brandId/models
func (h *CatalogHandler) CreateModel(c *fiber.Ctx) error {
	dealerID, err := getDealerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	brandID, err := parseUUID(c.Params("brandId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid brand ID"})
	}

	var req modelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	vm, err := h.service.CreateModel(c.Context(), dealerID, brandID, req.Name, req.Price)
	if err != nil {
		return c.Status(serviceErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(vm)
}

// ListModels handles GET /api/dealer/brands/:brandId/models
func (h *CatalogHandler) ListModels(c *fiber.Ctx) error {
	dealerID, err := getDealerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	brandID, err := parseUUID(c.Params("brandId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid brand ID"})
	}

	models, err := h.service.ListModels(c.Context(), dealerID, brandID)
	if err != nil {
		return c.Status(serviceErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(models)
}

// UpdateModel handles PUT /api/dealer/models/:id
func (h *CatalogHandler) UpdateModel(c *fiber.Ctx) error {
	dealerID, err := getDealerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	modelID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid model ID"})
	}

	var req modelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	vm, err := h.service.UpdateModel(c.Context(), dealerID, modelID, req.Name, req.Price)
	if err != nil {
		return c.Status(serviceErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(vm)
}

// DeleteModel handles DELETE /api/dealer/models/:id
func (h *CatalogHandler) DeleteModel(c *fiber.Ctx) error {
	dealerID, err := getDealerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	modelID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid model ID"})
	}

	if err := h.service.DeleteModel(c.Context(), dealerID, modelID); err != nil {
		return c.Status(serviceErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Model deleted"})
}
