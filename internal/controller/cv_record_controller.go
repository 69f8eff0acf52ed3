// FILE: internal/controller/cv_record_controller.go
package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gulfcv-be/internal/dto"
	"gulfcv-be/internal/pkg/serverutils"
	"gulfcv-be/internal/service"
)

type ICvRecordController interface {
	RegisterRoutes(r fiber.Router, requireAgency fiber.Handler)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
}

type cvRecordController struct {
	service service.ICvRecordService
}

func NewCvRecordController(cvRecordService service.ICvRecordService) ICvRecordController {
	return &cvRecordController{service: cvRecordService}
}

func (c *cvRecordController) RegisterRoutes(r fiber.Router, requireAgency fiber.Handler) {
	h := r.Group("/cv-records", requireAgency)
	h.Post("/", c.Create)
	h.Get("/", c.List)
	h.Get("/:id", c.Get)
}

func (c *cvRecordController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCvRecordRequest
	// An unreadable body still counts as an attempt with server defaults.
	_ = ctx.BodyParser(&req)

	res, err := c.service.Create(ctx.UserContext(), serverutils.AgencyId(ctx), &req)
	if err != nil {
		return err
	}
	// A replayed idempotency key is a 200; only a fresh record is a 201.
	status := fiber.StatusCreated
	if res.AlreadyCounted {
		status = fiber.StatusOK
	}
	return ctx.Status(status).JSON(res)
}

func (c *cvRecordController) List(ctx *fiber.Ctx) error {
	limit := queryInt(ctx, "limit", 20)
	offset := queryInt(ctx, "offset", 0)

	res, err := c.service.List(ctx.UserContext(), serverutils.AgencyId(ctx), limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *cvRecordController) Get(ctx *fiber.Ctx) error {
	recordId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Record not found"})
	}

	record, err := c.service.Get(ctx.UserContext(), serverutils.AgencyId(ctx), recordId)
	if err != nil {
		return err
	}
	return ctx.JSON(dto.CvRecordDetailResponse{Record: record})
}

func queryInt(ctx *fiber.Ctx, name string, fallback int) int {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
