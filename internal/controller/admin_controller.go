package controller

import (
	"syncpad-be/internal/dto"
	"syncpad-be/internal/pkg/serverutils"
	"syncpad-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	DashboardStats(ctx *fiber.Ctx) error
	ListUsers(ctx *fiber.Ctx) error
	UpdateUserStatus(ctx *fiber.Ctx) error
	SystemLogs(ctx *fiber.Ctx) error
	LogDetail(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
	authService  service.IAuthService
}

func NewAdminController(adminService service.IAdminService, authService service.IAuthService) IAdminController {
	return &adminController{
		adminService: adminService,
		authService:  authService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Post("/login", c.Login)

	protected := h.Group("")
	protected.Use(serverutils.JwtMiddleware)
	protected.Use(serverutils.AdminMiddleware)
	protected.Get("/dashboard", c.DashboardStats)
	protected.Get("/users", c.ListUsers)
	protected.Patch("/users/:id/status", c.UpdateUserStatus)
	protected.Get("/logs", c.SystemLogs)
	protected.Get("/logs/:id", c.LogDetail)
}

func (c *adminController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.LoginAdmin(ctx.Context(), &req)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *adminController) DashboardStats(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetDashboardStats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get dashboard stats", res))
}

func (c *adminController) ListUsers(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.adminService.ListUsers(ctx.Context(), query, page, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list users", res))
}

func (c *adminController) UpdateUserStatus(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	var req dto.UpdateUserStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.adminService.UpdateUserStatus(ctx.Context(), &req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("User status updated", nil))
}

func (c *adminController) SystemLogs(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 50)
	level := ctx.Query("level")

	res, err := c.adminService.GetSystemLogs(ctx.Context(), page, limit, level)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get system logs", res))
}

func (c *adminController) LogDetail(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetLogDetail(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Log not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get log detail", res))
}
