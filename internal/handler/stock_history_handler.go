package handler

import (
	"go-stocktrack/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHistoryHandler struct {
	service service.HistoryService
}

func NewStockHistoryHandler(s service.HistoryService) *StockHistoryHandler {
	return &StockHistoryHandler{service: s}
}

// GetAll handles GET /stock-history with optional ?limit= and ?page=
func (h *StockHistoryHandler) GetAll(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	offset := 0
	if limit > 0 {
		offset = (page - 1) * limit
	}

	entries, err := h.service.GetAll(limit, offset)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}
	return c.JSON(entries)
}

// GetByProduct handles GET /stock-history/product?id=<productId>
func (h *StockHistoryHandler) GetByProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Query("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	entries, err := h.service.GetByProduct(productID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{
		"productId": productID,
		"total":     len(entries),
		"history":   entries,
	})
}

// GetByUser handles GET /stock-history/user?id=<userId>
func (h *StockHistoryHandler) GetByUser(c *fiber.Ctx) error {
	userID, err := parseUUID(c.Query("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid user ID"})
	}

	entries, err := h.service.GetByUser(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{
		"userId":  userID,
		"total":   len(entries),
		"history": entries,
	})
}

// Search handles GET /stock-history/search?q=<text> over the note field
func (h *StockHistoryHandler) Search(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(400).JSON(fiber.Map{"message": "Search query missing"})
	}

	entries, err := h.service.Search(q)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}
	return c.JSON(entries)
}

// Delete handles DELETE /stock-history?id=<id> (admin only, see route setup)
func (h *StockHistoryHandler) Delete(c *fiber.Ctx) error {
	entryID, err := parseUUID(c.Query("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid history ID"})
	}

	if err := h.service.Delete(entryID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "History entry deleted successfully"})
}
