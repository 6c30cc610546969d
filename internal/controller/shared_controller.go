package controller

import (
	"syncpad-be/internal/pkg/serverutils"
	"syncpad-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISharedController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

// sharedController serves the anonymous share-link surface. Authentication
// is optional here: owners following their own link get edit rights, but
// a logged-out visitor with a valid token gets through too.
type sharedController struct {
	noteService service.INoteService
}

func NewSharedController(noteService service.INoteService) ISharedController {
	return &sharedController{
		noteService: noteService,
	}
}

func (c *sharedController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/shared")
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Get(":token", c.Show)
}

func (c *sharedController) Show(ctx *fiber.Ctx) error {
	token := ctx.Params("token")
	if token == "" {
		return fiber.NewError(fiber.StatusNotFound, "Note not found")
	}

	res, err := c.noteService.ShowShared(ctx.Context(), requesterId(ctx), token, ctx.Query("passcode"))
	if err != nil {
		return mapAccessError(err)
	}
	if res == nil {
		// Unknown and retired tokens are indistinguishable on purpose.
		return fiber.NewError(fiber.StatusNotFound, "Note not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show shared note", res))
}
