package handlers

import (
	"errors"

	"github.com/craftfolio/api/database"
	"github.com/craftfolio/api/models"
	"github.com/craftfolio/api/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRequest struct {
	Rating  string  `json:"rating" validate:"required,oneof=like dislike"`
	Comment *string `json:"comment" validate:"omitempty,max=1000"`
}

// SubmitReview creates the caller's review for a project, or updates it if
// one already exists. One review per (project, author) pair.
func SubmitReview(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	var project models.Project
	if err := database.DB.First(&project, "id = ?", c.Params("projectId")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Project not found")
	}

	if project.OwnerID == userID {
		return utils.Error(c, fiber.StatusForbidden, "You cannot review your own project")
	}

	review := models.Review{
		ProjectID: project.ID,
		AuthorID:  userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	err := database.DB.Create(&review).Error
	if err == nil {
		return utils.Success(c, fiber.StatusCreated, review)
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to save review", err)
	}

	// Second submission by the same author updates the existing row.
	var existing models.Review
	if err := database.DB.
		Where("project_id = ? AND author_id = ?", project.ID, userID).
		First(&existing).Error; err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to save review", err)
	}

	existing.Rating = req.Rating
	existing.Comment = req.Comment
	if err := database.DB.Save(&existing).Error; err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to save review", err)
	}

	return utils.Success(c, fiber.StatusOK, existing)
}

func ListProjectReviews(c *fiber.Ctx) error {
	projectID := c.Params("projectId")

	var project models.Project
	if err := database.DB.First(&project, "id = ?", projectID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Project not found")
	}

	page, limit, offset := utils.ParsePagination(c, 20)

	var total int64
	database.DB.Model(&models.Review{}).Where("project_id = ?", project.ID).Count(&total)

	var reviews []models.Review
	if err := database.DB.
		Preload("Author").
		Where("project_id = ?", project.ID).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&reviews).Error; err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to load reviews", err)
	}

	return utils.SuccessList(c, reviews, utils.NewPagination(page, limit, total))
}

func DeleteReview(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var review models.Review
	if err := database.DB.First(&review, "id = ?", c.Params("reviewId")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Review not found")
	}

	if review.AuthorID != userID {
		return utils.Error(c, fiber.StatusForbidden, "You are not the author of this review")
	}

	if err := database.DB.Delete(&review).Error; err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to delete review", err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": review.ID})
}
