package controller

import (
	"skillswap-be/internal/dto"
	"skillswap-be/internal/pkg/serverutils"
	"skillswap-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type userController struct {
	userService  service.IUserService
	skillService service.ISkillService
}

func NewUserController(userService service.IUserService, skillService service.ISkillService) IUserController {
	return &userController{userService: userService, skillService: skillService}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/users")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/:id", c.Show)
	h.Patch("/:id", c.Update)

	r.Get("/search", serverutils.JwtMiddleware, c.Search)
}

func (c *userController) Show(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	res, err := c.userService.GetUser(ctx.Context(), uint(id))
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get user", res))
}

func (c *userController) Update(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uint)

	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}
	if uint(id) != userId {
		return fiber.NewError(fiber.StatusForbidden, "cannot update another user's profile")
	}

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	res, err := c.userService.UpdateProfile(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Profile updated", res))
}

func (c *userController) Search(ctx *fiber.Ctx) error {
	var query dto.SearchUsersQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query")
	}

	res, err := c.skillService.SearchUsers(ctx.Context(), &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search users", res))
}
