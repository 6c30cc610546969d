package controller

import (
	"errors"

	"syncpad-be/internal/dto"
	"syncpad-be/internal/pkg/serverutils"
	"syncpad-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Profile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	ChangePassword(ctx *fiber.Ctx) error
}

type userController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) IUserController {
	return &userController{
		userService: userService,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/me", c.Profile)
	h.Put("/me", c.UpdateProfile)
	h.Post("/me/change-password", c.ChangePassword)
}

func (c *userController) Profile(ctx *fiber.Ctx) error {
	userId := requesterId(ctx)

	res, err := c.userService.Profile(ctx.Context(), userId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show profile", res))
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	userId := requesterId(ctx)

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.userService.UpdateProfile(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Profile updated", res))
}

func (c *userController) ChangePassword(ctx *fiber.Ctx) error {
	userId := requesterId(ctx)

	var req dto.ChangePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.userService.ChangePassword(ctx.Context(), userId, &req); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return fiber.NewError(fiber.StatusUnauthorized, "Current password is incorrect")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Password changed", nil))
}
