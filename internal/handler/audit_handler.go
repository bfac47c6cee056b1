package handler

import (
	"time"

	"go-pharmacy-stock/internal/model"
	"go-pharmacy-stock/internal/repository"
	"go-pharmacy-stock/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuditHandler struct {
	service service.AuditService
}

func NewAuditHandler(s service.AuditService) *AuditHandler {
	return &AuditHandler{service: s}
}

// GetEntries lists mutation log entries, most recent first.
// GET /api/v1/logs?operator_id=&kind=&store_id=&from=&to=
func (h *AuditHandler) GetEntries(c *fiber.Ctx) error {
	var filter repository.LogEntryFilter

	if v := c.Query("operator_id"); v != "" {
		id, err := parseUUID(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid operator ID"})
		}
		filter.OperatorID = &id
	}
	if v := c.Query("kind"); v != "" {
		filter.Kind = model.ActionKind(v)
	}
	if v := c.Query("store_id"); v != "" {
		id, err := parseUUID(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
		}
		filter.StoreID = &id
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid from date, use YYYY-MM-DD"})
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid to date, use YYYY-MM-DD"})
		}
		// Inclusive end of day.
		end := t.AddDate(0, 0, 1).Add(-time.Second)
		filter.To = &end
	}

	entries, err := h.service.ListEntries(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch log entries"})
	}
	return c.JSON(entries)
}

// GetEntry returns a single log entry.
// GET /api/v1/logs/:id
func (h *AuditHandler) GetEntry(c *fiber.Ctx) error {
	entryID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	entry, err := h.service.GetEntry(entryID)
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(entry)
}

// Revoke undoes the operation a log entry records.
// POST /api/v1/logs/:id/revoke
func (h *AuditHandler) Revoke(c *fiber.Ctx) error {
	entryID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	entry, err := h.service.Revoke(entryID, actorFromCtx(c))
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Entry revoked", "entry": entry})
}
