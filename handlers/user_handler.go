package handlers

import (
	"github.com/craftfolio/api/database"
	"github.com/craftfolio/api/models"
	"github.com/craftfolio/api/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// optionalUserID extracts the caller id on routes behind OptionalAuth,
// where c.Locals("user") may be unset.
func optionalUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, false
	}
	idStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	var target models.User
	if err := database.DB.
		Preload("BlockedUsers").
		Where("username = ?", username).
		First(&target).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	viewerID, authed := optionalUserID(c)
	// A blocked viewer sees the same response as a missing user.
	if authed && target.HasBlocked(viewerID) {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	followerCount := database.DB.Model(&target).Association("Followers").Count()
	followingCount := database.DB.Model(&target).Association("Following").Count()

	var projectCount int64
	database.DB.Model(&models.Project{}).Where("owner_id = ?", target.ID).Count(&projectCount)

	isFollowing := false
	if authed {
		var edge int64
		database.DB.Table("user_follows").
			Where("follower_id = ? AND following_id = ?", viewerID, target.ID).
			Count(&edge)
		isFollowing = edge > 0
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":              target.ID,
		"username":        target.Username,
		"full_name":       target.FullName,
		"bio":             target.Bio,
		"avatar_url":      target.AvatarURL,
		"website":         target.Website,
		"location":        target.Location,
		"skills":          target.Skills,
		"follower_count":  followerCount,
		"following_count": followingCount,
		"project_count":   projectCount,
		"is_following":    isFollowing,
		"created_at":      target.CreatedAt,
	})
}

func FollowUser(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var target models.User
	if err := database.DB.
		Preload("BlockedUsers").
		Where("username = ?", c.Params("username")).
		First(&target).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	if target.ID == userID {
		return utils.Error(c, fiber.StatusBadRequest, "You cannot follow yourself")
	}

	var me models.User
	if err := database.DB.Preload("BlockedUsers").First(&me, "id = ?", userID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	if me.HasBlocked(target.ID) || target.HasBlocked(userID) {
		return utils.Error(c, fiber.StatusForbidden, "You cannot follow this user")
	}

	if err := database.DB.Model(&me).Association("Following").Append(&target); err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to follow user", err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"following": target.Username})
}

func UnfollowUser(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var target models.User
	if err := database.DB.Where("username = ?", c.Params("username")).First(&target).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	me := models.User{ID: userID}
	if err := database.DB.Model(&me).Association("Following").Delete(&target); err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to unfollow user", err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"unfollowed": target.Username})
}

func BlockUser(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var target models.User
	if err := database.DB.Where("username = ?", c.Params("username")).First(&target).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	if target.ID == userID {
		return utils.Error(c, fiber.StatusBadRequest, "You cannot block yourself")
	}

	// Blocking severs the follow relationship in both directions together
	// with writing the block edge.
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		me := models.User{ID: userID}
		if err := tx.Model(&me).Association("BlockedUsers").Append(&target); err != nil {
			return err
		}
		if err := tx.Model(&me).Association("Following").Delete(&target); err != nil {
			return err
		}
		if err := tx.Model(&target).Association("Following").Delete(&me); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to block user", err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"blocked": target.Username})
}

func UnblockUser(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var target models.User
	if err := database.DB.Where("username = ?", c.Params("username")).First(&target).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	me := models.User{ID: userID}
	if err := database.DB.Model(&me).Association("BlockedUsers").Delete(&target); err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to unblock user", err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"unblocked": target.Username})
}

func ListFollowers(c *fiber.Ctx) error {
	return listFollowEdges(c, "Followers")
}

func ListFollowing(c *fiber.Ctx) error {
	return listFollowEdges(c, "Following")
}

func listFollowEdges(c *fiber.Ctx, edge string) error {
	var target models.User
	if err := database.DB.Where("username = ?", c.Params("username")).First(&target).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	page, limit, offset := utils.ParsePagination(c, 20)

	total := database.DB.Model(&target).Association(edge).Count()

	var users []models.User
	if err := database.DB.Model(&target).
		Offset(offset).Limit(limit).
		Association(edge).Find(&users); err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to load users", err)
	}

	profiles := make([]models.PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Public())
	}

	return utils.SuccessList(c, profiles, utils.NewPagination(page, limit, total))
}
