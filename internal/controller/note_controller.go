package controller

import (
	"errors"

	"syncpad-be/internal/dto"
	"syncpad-be/internal/pkg/serverutils"
	"syncpad-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	UpdateSettings(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	EnableSharing(ctx *fiber.Ctx) error
	DisableSharing(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Patch(":id/settings", c.UpdateSettings)
	h.Post(":id/share", c.EnableSharing)
	h.Delete(":id/share", c.DisableSharing)
	h.Delete(":id", c.Delete)
}

func requesterId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func mapAccessError(err error) error {
	switch {
	case errors.Is(err, service.ErrPasscodeRequired):
		return fiber.NewError(fiber.StatusForbidden, "Passcode required")
	case errors.Is(err, service.ErrNoteAccessDenied):
		return fiber.NewError(fiber.StatusForbidden, "Access denied")
	case errors.Is(err, service.ErrPasscodeTooShort):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId := requesterId(ctx)

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return mapAccessError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create note", res))
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	userId := requesterId(ctx)

	res, err := c.noteService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list notes", res))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	userId := requesterId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	// Passcode travels as a query param so the GET stays cacheable-free
	// and bookmarkable without a body.
	res, err := c.noteService.Show(ctx.Context(), userId, id, ctx.Query("passcode"))
	if err != nil {
		return mapAccessError(err)
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Note not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userId := requesterId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return mapAccessError(err)
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Note not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note", res))
}

func (c *noteController) UpdateSettings(ctx *fiber.Ctx) error {
	userId := requesterId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateNoteSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.noteService.UpdateSettings(ctx.Context(), userId, &req)
	if err != nil {
		return mapAccessError(err)
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Note not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note settings", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId := requesterId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	deleted, err := c.noteService.Delete(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fiber.NewError(fiber.StatusNotFound, "Note not found")
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete note", nil))
}

func (c *noteController) EnableSharing(ctx *fiber.Ctx) error {
	userId := requesterId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.noteService.EnableSharing(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Note not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Note is now shared", res))
}

func (c *noteController) DisableSharing(ctx *fiber.Ctx) error {
	userId := requesterId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.noteService.DisableSharing(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Note not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Note sharing disabled", res))
}
