package controller

import (
	"errors"

	"syncpad-be/internal/dto"
	"syncpad-be/internal/pkg/serverutils"
	"syncpad-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMiniNoteController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	Inbox(ctx *fiber.Ctx) error
	MarkRead(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type miniNoteController struct {
	miniNoteService service.IMiniNoteService
}

func NewMiniNoteController(miniNoteService service.IMiniNoteService) IMiniNoteController {
	return &miniNoteController{
		miniNoteService: miniNoteService,
	}
}

func (c *miniNoteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/mini-note/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Send)
	h.Get("", c.Inbox)
	h.Patch(":id/read", c.MarkRead)
	h.Delete(":id", c.Delete)
}

func (c *miniNoteController) Send(ctx *fiber.Ctx) error {
	userId := requesterId(ctx)

	var req dto.SendMiniNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.miniNoteService.Send(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrRecipientNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if errors.Is(err, service.ErrSelfMiniNote) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Mini note sent", res))
}

func (c *miniNoteController) Inbox(ctx *fiber.Ctx) error {
	userId := requesterId(ctx)

	res, err := c.miniNoteService.Inbox(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list mini notes", res))
}

func (c *miniNoteController) MarkRead(ctx *fiber.Ctx) error {
	userId := requesterId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.miniNoteService.MarkRead(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Mini note marked as read", nil))
}

func (c *miniNoteController) Delete(ctx *fiber.Ctx) error {
	userId := requesterId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.miniNoteService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Mini note deleted", nil))
}
