package handler

import (
	"go-boutique-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

// StaffHandler manages profile roles for the back-office console.
type StaffHandler struct {
	service service.AuthService
}

func NewStaffHandler(s service.AuthService) *StaffHandler {
	return &StaffHandler{service: s}
}

func (h *StaffHandler) GetProfiles(c *fiber.Ctx) error {
	profiles, err := h.service.AllProfiles()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(profiles)
}

// ToggleRole flips the target between user and admin. The acting admin cannot
// toggle themself.
func (h *StaffHandler) ToggleRole(c *fiber.Ctx) error {
	actorID, ok := currentUserID(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
	}

	targetID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid profile ID"})
	}

	profile, err := h.service.ToggleRole(actorID, targetID)
	if err != nil {
		switch err {
		case service.ErrOwnRole:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		case service.ErrProfileNotFound:
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "Role updated", "data": profile})
}
