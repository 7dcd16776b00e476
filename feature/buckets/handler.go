package buckets

import (
	"errors"
	"net/url"

	"roster-manager/core/kv"
	"roster-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for raw buckets.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the bucket routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/buckets")
	group.Get("/", h.HandleList)
	group.Post("/import", h.HandleImport)
	group.Get("/:key", h.HandleGet)
	group.Put("/:key", h.HandlePut)
	group.Delete("/:key", h.HandleDelete)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidJSON), errors.Is(err, ErrUnknownScope), errors.Is(err, kv.ErrInvalidDump):
		status = fiber.StatusBadRequest
	default:
		logger.WithRayID(h.service.logger, c).Error("Bucket request failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func keyParam(c *fiber.Ctx) string {
	key := c.Params("key")
	if k, err := url.PathUnescape(key); err == nil {
		return k
	}
	return key
}

// HandleList lists bucket keys.
// @Summary List Buckets
// @Description List the bucket keys of a scope, optionally by prefix.
// @Tags buckets
// @Produce json
// @Param prefix query string false "Key prefix"
// @Param scope query string false "local (default) or session"
// @Success 200 {object} map[string][]string "Keys"
// @Failure 400 {object} map[string]string "Unknown scope"
// @Router /buckets [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	keys, err := h.service.List(c.UserContext(), c.Query("scope"), c.Query("prefix"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"keys": keys})
}

// HandleGet returns the raw JSON value of a bucket.
// @Summary Get Bucket
// @Tags buckets
// @Produce json
// @Param key path string true "Bucket key"
// @Param scope query string false "local (default) or session"
// @Success 200 {object} any "Stored value"
// @Failure 404 {object} map[string]string "Bucket not found"
// @Router /buckets/{key} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	value, ok, err := h.service.Get(c.UserContext(), c.Query("scope"), keyParam(c))
	if err != nil {
		return h.fail(c, err)
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "bucket not found",
		})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendString(value)
}

// HandlePut stores the request body as a bucket value.
// @Summary Put Bucket
// @Description Store a JSON value under a key, replacing any previous value.
// @Tags buckets
// @Accept json
// @Produce json
// @Param key path string true "Bucket key"
// @Param scope query string false "local (default) or session"
// @Success 200 {object} map[string]string "Stored"
// @Failure 400 {object} map[string]string "Invalid JSON"
// @Router /buckets/{key} [put]
func (h *Handler) HandlePut(c *fiber.Ctx) error {
	key := keyParam(c)
	if err := h.service.Put(c.UserContext(), c.Query("scope"), key, c.Body()); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "stored", "key": key})
}

// HandleDelete removes a bucket.
// @Summary Delete Bucket
// @Tags buckets
// @Produce json
// @Param key path string true "Bucket key"
// @Param scope query string false "local (default) or session"
// @Success 200 {object} map[string]string "Deleted"
// @Router /buckets/{key} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	key := keyParam(c)
	if err := h.service.Delete(c.UserContext(), c.Query("scope"), key); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "deleted", "key": key})
}

// HandleImport loads a storage dump.
// @Summary Import Storage Dump
// @Description Load a JSON object mapping bucket keys to values.
// @Tags buckets
// @Accept json
// @Produce json
// @Param scope query string false "local (default) or session"
// @Success 200 {object} map[string][]string "Imported keys"
// @Failure 400 {object} map[string]string "Invalid dump"
// @Router /buckets/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	keys, err := h.service.Import(c.UserContext(), c.Query("scope"), c.Body())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"imported": keys})
}
