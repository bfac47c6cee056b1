package handler

import (
	"go-pharmacy-stock/internal/model"
	"go-pharmacy-stock/internal/service"
	"go-pharmacy-stock/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// productResponse is a product plus its aggregate stock in small units,
// summed over all batches with each batch's own conversion rate.
type productResponse struct {
	model.Product
	TotalStock int `json:"total_stock"`
}

func toProductResponse(p model.Product) productResponse {
	return productResponse{Product: p, TotalStock: stock.ProductTotal(&p)}
}

func toProductResponses(products []model.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i := range products {
		out[i] = toProductResponse(products[i])
	}
	return out
}

// GetProducts lists products, optionally narrowed to one store.
// GET /api/v1/products?store_id=...
func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	if storeParam := c.Query("store_id"); storeParam != "" {
		storeID, err := parseUUID(storeParam)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
		}
		products, err := h.service.GetProductsByStore(storeID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
		}
		return c.JSON(toProductResponses(products))
	}

	products, err := h.service.GetAllProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(toProductResponses(products))
}

// GetProduct returns one product with its batches.
// GET /api/v1/products/:id
func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(productID)
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(toProductResponse(*product))
}

// Inbound records a stock receipt.
// POST /api/v1/stock/inbound
func (h *InventoryHandler) Inbound(c *fiber.Ctx) error {
	var req service.StockMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.service.Inbound(&req, actorFromCtx(c))
	if err != nil {
		return failErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Inbound recorded", "entry": entry})
}

// Outbound records a stock shipment.
// POST /api/v1/stock/outbound
func (h *InventoryHandler) Outbound(c *fiber.Ctx) error {
	var req service.StockMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.service.Outbound(&req, actorFromCtx(c))
	if err != nil {
		return failErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Outbound recorded", "entry": entry})
}

type adjustProductRequest struct {
	StoreID uuid.UUID `json:"store_id"`
	model.Product
}

// AdjustProduct overwrites product-level fields.
// PUT /api/v1/products/:id
func (h *InventoryHandler) AdjustProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req adjustProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	req.Product.ID = productID

	entry, err := h.service.AdjustProduct(req.StoreID, &req.Product, actorFromCtx(c))
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product adjusted", "data": req.Product, "entry": entry})
}

type adjustBatchRequest struct {
	StoreID uuid.UUID `json:"store_id"`
	model.Batch
}

// AdjustBatch overwrites a whole batch record.
// PUT /api/v1/products/:id/batches/:batchId
func (h *InventoryHandler) AdjustBatch(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	batchID, err := parseUUID(c.Params("batchId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid batch ID"})
	}

	var req adjustBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	req.Batch.ID = batchID

	entry, err := h.service.AdjustBatch(req.StoreID, productID, &req.Batch, actorFromCtx(c))
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Batch adjusted", "data": req.Batch, "entry": entry})
}

// DeleteProduct removes a product and its batches.
// DELETE /api/v1/products/:id?store_id=...
func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	storeID, err := parseUUID(c.Query("store_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	entry, err := h.service.DeleteProduct(storeID, productID, actorFromCtx(c))
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted", "entry": entry})
}

type importProductsRequest struct {
	StoreID  uuid.UUID       `json:"store_id"`
	Products []model.Product `json:"products"`
}

// ImportProducts bulk-creates products (Excel import upstream).
// POST /api/v1/products/import
func (h *InventoryHandler) ImportProducts(c *fiber.Ctx) error {
	var req importProductsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.service.ImportProducts(req.StoreID, req.Products, actorFromCtx(c))
	if err != nil {
		return failErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"message": "Products imported",
		"count":   len(req.Products),
		"data":    req.Products,
		"entry":   entry,
	})
}

// ImportBatch adds one batch to an existing product.
// POST /api/v1/products/:id/batches
func (h *InventoryHandler) ImportBatch(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req adjustBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.service.ImportBatch(req.StoreID, productID, &req.Batch, actorFromCtx(c))
	if err != nil {
		return failErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Batch imported", "data": req.Batch, "entry": entry})
}
