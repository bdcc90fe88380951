package handlers

import (
	"github.com/craftfolio/api/database"
	"github.com/craftfolio/api/models"
	"github.com/craftfolio/api/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	Website   *string `json:"website"`
	Location  *string `json:"location"`
	Skills    *string `json:"skills"`
}

type UpdateMessageSettingsRequest struct {
	MessagePermission *string `json:"message_permission" validate:"omitempty,oneof=everyone followers existing none"`
	AllowMessages     *bool   `json:"allow_messages"`
}

func GetProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	return utils.Success(c, fiber.StatusOK, user)
}

func UpdateProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	if req.Website != nil {
		user.Website = req.Website
	}
	if req.Location != nil {
		user.Location = req.Location
	}
	if req.Skills != nil {
		user.Skills = req.Skills
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to update profile", err)
	}

	return utils.Success(c, fiber.StatusOK, user)
}

func UpdateMessageSettings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req UpdateMessageSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	if req.MessagePermission != nil {
		user.MessagePermission = *req.MessagePermission
	}
	if req.AllowMessages != nil {
		user.AllowMessages = *req.AllowMessages
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to update settings", err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message_permission": user.MessagePermission,
		"allow_messages":     user.AllowMessages,
	})
}
