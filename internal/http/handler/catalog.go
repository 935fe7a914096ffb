package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"movieflix/internal/http/middleware"
	"movieflix/internal/model"
	"movieflix/internal/service"
)

// Resource exposes one catalog service over HTTP. Req and Res are the wire
// DTOs; ToEntity and ToResponse map them to and from the entity.
type Resource[T model.Entity, Req any, Res any] struct {
	Service    service.CatalogService[T]
	ToEntity   func(Req) T
	ToResponse func(T) Res

	validate *validator.Validate
	log      *zap.Logger
	kind     string
}

// NewResource wires a catalog service to its DTO mapping.
func NewResource[T model.Entity, Req any, Res any](
	svc service.CatalogService[T],
	toEntity func(Req) T,
	toResponse func(T) Res,
	validate *validator.Validate,
	log *zap.Logger,
) *Resource[T, Req, Res] {
	var zero T
	return &Resource[T, Req, Res]{
		Service:    svc,
		ToEntity:   toEntity,
		ToResponse: toResponse,
		validate:   validate,
		log:        log,
		kind:       zero.Kind(),
	}
}

// List returns every record. An empty catalog yields [].
func (r *Resource[T, Req, Res]) List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := r.Service.FindAll(c.UserContext())
		if err != nil {
			return r.serviceError(c, err)
		}

		out := make([]Res, 0, len(items))
		for _, it := range items {
			out = append(out, r.ToResponse(it))
		}
		return c.JSON(out)
	}
}

// Create decodes and validates the body, persists it and answers 201.
func (r *Resource[T, Req, Res]) Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := r.validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", validationMessage(err))
		}

		created, err := r.Service.Save(c.UserContext(), r.ToEntity(req))
		if err != nil {
			return r.serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(r.ToResponse(*created))
	}
}

// Get returns one record or 404.
func (r *Resource[T, Req, Res]) Get() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		found, err := r.Service.FindByID(c.UserContext(), id)
		if err != nil {
			return r.serviceError(c, err)
		}
		return c.JSON(r.ToResponse(*found))
	}
}

// Delete answers 204, or 404 when the id is unknown.
func (r *Resource[T, Req, Res]) Delete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := r.Service.Delete(c.UserContext(), id); err != nil {
			return r.serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func (r *Resource[T, Req, Res]) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", r.kind+" not found")
	case errors.Is(err, service.ErrInvalidID):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	case errors.Is(err, service.ErrInvalidName):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	}

	r.log.Error("catalog_request_failed",
		zap.String("request_id", middleware.RequestIDFrom(c)),
		zap.String("resource", r.kind),
		zap.String("method", c.Method()),
		zap.Error(err),
	)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
