package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cardcol/cardcol/internal/catalog"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SearchRequest is the body of POST /cards.
type SearchRequest struct {
	Name string `json:"name"`
}

// AdjustRequest is the body of PUT /cards. A null Number means +1.
type AdjustRequest struct {
	ID     string `json:"id"`
	Number *int   `json:"number"`
}

// HealthResponse reports liveness and the contract version.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "ok", Version: catalog.ContractVersion})
}

func (h *Handler) ListCards(c *fiber.Ctx) error {
	cards, err := h.Cards.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(cards)
}

func (h *Handler) SearchCards(c *fiber.Ctx) error {
	var req SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_body", "request body must be JSON with a name field")
	}
	if strings.TrimSpace(req.Name) == "" {
		return badRequest(c, "missing_name", "name is required")
	}

	cards, err := h.Cards.Search(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(cards)
}

func (h *Handler) AdjustCard(c *fiber.Ctx) error {
	var req AdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_body", "request body must be JSON with id and number fields")
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return badRequest(c, "missing_id", "id is required")
	}

	count, err := h.Cards.Adjust(c.UserContext(), id, req.Number)
	if err != nil {
		return err
	}
	h.Log.WithContext(c.UserContext()).WithFields(map[string]interface{}{
		"card":  id,
		"count": count,
	}).Info("ownership adjusted")
	return c.JSON(count)
}

func (h *Handler) ListSeries(c *fiber.Ctx) error {
	series, err := h.Series.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(series)
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: code, Message: message})
}
