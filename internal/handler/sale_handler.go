package handler

import (
	"time"

	"go-stocktrack/internal/model"
	"go-stocktrack/internal/repository"
	"go-stocktrack/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SaleHandler preserves the original query-param contract of the sales API:
// a single /sales resource where id, action and list filters arrive as query
// parameters rather than path segments.
type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

// CreateSale handles POST /sales
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req service.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	sale, err := h.service.CreateSale(&req, currentUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(sale)
}

// GetSales handles GET /sales. Dispatches on query params:
// ?action=stats returns aggregates, ?id= returns one sale, otherwise a
// filtered list.
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	if c.Query("action") == "stats" {
		stats, err := h.service.GetSalesStats()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"message": err.Error()})
		}
		return c.JSON(stats)
	}

	if id := c.Query("id"); id != "" {
		saleID, err := parseUUID(id)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid sale ID"})
		}
		sale, err := h.service.GetSaleByID(saleID)
		if err != nil {
			return notFound(c, err)
		}
		return c.JSON(sale)
	}

	filter, err := parseSaleFilter(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": err.Error()})
	}

	sales, err := h.service.GetSales(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}
	return c.JSON(sales)
}

// UpdateSale handles PUT /sales?id=<id>
func (h *SaleHandler) UpdateSale(c *fiber.Ctx) error {
	saleID, err := parseUUID(c.Query("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid sale ID"})
	}

	var req service.UpdateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	sale, err := h.service.UpdateSale(saleID, &req, currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sale)
}

// CancelSale handles DELETE /sales?id=<id>
func (h *SaleHandler) CancelSale(c *fiber.Ctx) error {
	saleID, err := parseUUID(c.Query("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid sale ID"})
	}

	if err := h.service.CancelSale(saleID, currentUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sale cancelled successfully"})
}

func parseSaleFilter(c *fiber.Ctx) (repository.SaleFilter, error) {
	var filter repository.SaleFilter

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			if t, err = time.Parse("2006-01-02", from); err != nil {
				return filter, err
			}
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			if t, err = time.Parse("2006-01-02", to); err != nil {
				return filter, err
			}
		}
		filter.To = &t
	}
	if product := c.Query("product"); product != "" {
		id, err := parseUUID(product)
		if err != nil {
			return filter, err
		}
		filter.ProductID = &id
	}
	if soldBy := c.Query("soldBy"); soldBy != "" {
		id, err := parseUUID(soldBy)
		if err != nil {
			return filter, err
		}
		filter.SoldByID = &id
	}
	filter.PaymentMethod = model.PaymentMethod(c.Query("paymentMethod"))
	filter.Status = model.SaleStatus(c.Query("status"))

	return filter, nil
}
