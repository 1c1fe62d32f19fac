package handler

import (
	"strconv"

	"go-dealer-stock/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetOverview returns aggregate stats for the authenticated dealer
// GET /api/dealer/overview
func (h *DashboardHandler) GetOverview(c *fiber.Ctx) error {
	dealerID, err := getDealerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	stats, err := h.service.GetDealerStats(c.Context(), dealerID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch overview"})
	}

	return c.JSON(stats)
}

// GetDailyMovement returns per-day inbound/outbound units for charts
// GET /api/dealer/overview/daily?days=7
func (h *DashboardHandler) GetDailyMovement(c *fiber.Ctx) error {
	dealerID, err := getDealerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	daysStr := c.Query("days", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		days = 7
	}

	data, err := h.service.GetDailyMovement(c.Context(), dealerID, days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch daily movement"})
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}
