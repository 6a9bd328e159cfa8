package controller

import (
	"errors"

	"skillswap-be/internal/dto"
	"skillswap-be/internal/pkg/serverutils"
	"skillswap-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISkillController interface {
	RegisterRoutes(r fiber.Router)
	GetUserSkills(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type skillController struct {
	skillService service.ISkillService
}

func NewSkillController(skillService service.ISkillService) ISkillController {
	return &skillController{skillService: skillService}
}

func (c *skillController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/skills")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Delete("/:id", c.Delete)

	users := r.Group("/users")
	users.Use(serverutils.JwtMiddleware)
	users.Get("/:id/skills", c.GetUserSkills)
}

func (c *skillController) GetUserSkills(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	res, err := c.skillService.GetUserSkills(ctx.Context(), uint(id))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get skills", res))
}

func (c *skillController) Create(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uint)

	var req dto.CreateSkillRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.skillService.CreateSkill(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Skill added", res))
}

func (c *skillController) Delete(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uint)

	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid skill id")
	}

	if err := c.skillService.DeleteSkill(ctx.Context(), userId, uint(id)); err != nil {
		if errors.Is(err, service.ErrSkillNotOwned) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Skill removed", nil))
}
