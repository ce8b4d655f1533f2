package objects

import (
	"context"
	"errors"
	"net/url"

	"r2-manager/core/logger"
	"r2-manager/core/r2"
	"r2-manager/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Store is the subset of *r2.Client the handler needs.
type Store interface {
	ListKeys(ctx context.Context) ([]string, error)
	GetObject(ctx context.Context, key string) ([]byte, error)
	PutObject(ctx context.Context, key string, body []byte) (string, error)
	DeleteObject(ctx context.Context, key string) (bool, error)
}

// Handler handles HTTP requests for objects.
type Handler struct {
	store  Store
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(store Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes registers the object routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/objects")
	group.Get("/", h.HandleList)
	group.Get("/*", h.HandleGet)
	group.Put("/*", h.HandlePut)
	group.Delete("/*", h.HandleDelete)
}

// HandleList returns every key in the bucket.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	keys, err := h.store.ListKeys(c.UserContext())
	if err != nil {
		l.Error("Listing failed", zap.Error(err))
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"keys": keys})
}

// HandleGet returns the object bytes.
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	key, err := objectKey(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if key == "" {
		return h.HandleList(c)
	}
	l := logger.WithRayID(h.logger, c).With(zap.String("key", key))

	data, err := h.store.GetObject(c.UserContext(), key)
	if err != nil {
		l.Error("Get failed", zap.Error(err))
		return h.fail(c, err)
	}

	c.Set(fiber.HeaderContentType, r2.ContentType(key))
	return c.Send(data)
}

// HandlePut stores the request body under key.
func (h *Handler) HandlePut(c *fiber.Ctx) error {
	key, err := objectKey(c)
	if err != nil || key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "object key required"})
	}
	l := logger.WithRayID(h.logger, c).With(zap.String("key", key))

	// fasthttp reuses the body buffer after the handler returns
	body := append([]byte(nil), c.Body()...)

	stored, err := h.store.PutObject(c.UserContext(), key, body)
	if err != nil {
		l.Error("Put failed", zap.Error(err))
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"key": stored})
}

// HandleDelete deletes the object under key.
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	key, err := objectKey(c)
	if err != nil || key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "object key required"})
	}
	l := logger.WithRayID(h.logger, c).With(zap.String("key", key))

	deleted, err := h.store.DeleteObject(c.UserContext(), key)
	if err != nil {
		l.Error("Delete failed", zap.Error(err))
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, r2.ErrObjectOp), errors.Is(err, r2.ErrBucketOp):
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func objectKey(c *fiber.Ctx) (string, error) {
	return url.PathUnescape(c.Params("*"))
}
