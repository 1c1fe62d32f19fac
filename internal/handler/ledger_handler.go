package handler

import (
	"errors"
	"time"

	"go-dealer-stock/internal/model"
	"go-dealer-stock/internal/service"

	"github.com/gofiber/fiber/v2"
)

type LedgerHandler struct {
	ledger service.LedgerService
	query  service.QueryService
}

func NewLedgerHandler(ledger service.LedgerService, query service.QueryService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, query: query}
}

// movementRequest is the body the front end posts for both purchases and
// sales. BrandID is accepted for compatibility with the original client but
// ownership is resolved through the model.
type movementRequest struct {
	BrandID  string `json:"brandId"`
	ModelID  string `json:"modelId"`
	Quantity int    `json:"quantity"`
	Date     string `json:"date"`
}

func parseMovementDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func (h *LedgerHandler) appendMovement(c *fiber.Ctx, kind model.MovementKind) error {
	dealerID, err := getDealerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req movementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	modelID, err := parseUUID(req.ModelID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid model ID"})
	}

	occurredAt, err := parseMovementDate(req.Date)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date"})
	}

	result, err := h.ledger.AppendMovement(c.Context(), dealerID, &service.AppendMovementRequest{
		ModelID:    modelID,
		Kind:       kind,
		Quantity:   req.Quantity,
		OccurredAt: occurredAt,
	})
	if err != nil {
		var insufficient *service.InsufficientStockError
		if errors.As(err, &insufficient) {
			// The front end matches on this exact message.
			return c.Status(409).JSON(fiber.Map{
				"message":   "Insufficient stock",
				"available": insufficient.Available,
				"requested": insufficient.Requested,
			})
		}
		return c.Status(serviceErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(result)
}

// AddPurchase handles POST /api/dealer/stock
func (h *LedgerHandler) AddPurchase(c *fiber.Ctx) error {
	return h.appendMovement(c, model.MovementPurchase)
}

// AddSale handles POST /api/dealer/sell
func (h *LedgerHandler) AddSale(c *fiber.Ctx) error {
	return h.appendMovement(c, model.MovementSale)
}

// GetStock handles GET /api/dealer/stock?q=
// Returns every matching model position with its full movement history.
func (h *LedgerHandler) GetStock(c *fiber.Ctx) error {
	dealerID, err := getDealerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	positions, err := h.query.Overview(c.Context(), dealerID, c.Query("q"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(positions)
}

// GetPosition handles GET /api/dealer/models/:id/position
func (h *LedgerHandler) GetPosition(c *fiber.Ctx) error {
	dealerID, err := getDealerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	modelID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid model ID"})
	}

	position, err := h.query.GetPosition(c.Context(), dealerID, modelID)
	if err != nil {
		return c.Status(serviceErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(position)
}

// GetHistory handles GET /api/dealer/models/:id/history
func (h *LedgerHandler) GetHistory(c *fiber.Ctx) error {
	dealerID, err := getDealerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	modelID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid model ID"})
	}

	history, err := h.query.GetHistory(c.Context(), dealerID, modelID)
	if err != nil {
		return c.Status(serviceErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(history)
}
