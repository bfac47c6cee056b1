package handler

import (
	"go-pharmacy-stock/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type StoreHandler struct {
	storeRepo repository.StoreRepository
}

func NewStoreHandler(storeRepo repository.StoreRepository) *StoreHandler {
	return &StoreHandler{storeRepo: storeRepo}
}

// GetStores returns all stores with their children
// GET /api/v1/stores
func (h *StoreHandler) GetStores(c *fiber.Ctx) error {
	stores, err := h.storeRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stores"})
	}
	return c.JSON(stores)
}

// GetStore returns a single store
// GET /api/v1/stores/:id
func (h *StoreHandler) GetStore(c *fiber.Ctx) error {
	storeID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	store, err := h.storeRepo.FindByID(storeID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Store not found"})
	}
	return c.JSON(store)
}
