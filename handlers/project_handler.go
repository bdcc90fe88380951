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

type CreateProjectRequest struct {
	Title         string   `json:"title" validate:"required,min=3,max=150"`
	Description   string   `json:"description" validate:"required,min=10"`
	CategoryID    string   `json:"category_id" validate:"required,uuid"`
	CoverImageURL *string  `json:"cover_image_url" validate:"omitempty,url"`
	DemoLink      *string  `json:"demo_link" validate:"omitempty,url"`
	RepoLink      *string  `json:"repo_link" validate:"omitempty,url"`
	Tags          *string  `json:"tags" validate:"omitempty,max=255"`
	ImageURLs     []string `json:"image_urls" validate:"omitempty,max=10,dive,url"`
}

type UpdateProjectRequest struct {
	Title         *string `json:"title" validate:"omitempty,min=3,max=150"`
	Description   *string `json:"description" validate:"omitempty,min=10"`
	CategoryID    *string `json:"category_id" validate:"omitempty,uuid"`
	CoverImageURL *string `json:"cover_image_url" validate:"omitempty,url"`
	DemoLink      *string `json:"demo_link" validate:"omitempty,url"`
	RepoLink      *string `json:"repo_link" validate:"omitempty,url"`
	Tags          *string `json:"tags" validate:"omitempty,max=255"`
}

func ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to load categories", err)
	}
	return utils.Success(c, fiber.StatusOK, categories)
}

func CreateProject(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	categoryID, _ := uuid.Parse(req.CategoryID)
	var category models.Category
	if err := database.DB.First(&category, "id = ?", categoryID).Error; err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Unknown category")
	}

	project := models.Project{
		OwnerID:       userID,
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    categoryID,
		CoverImageURL: req.CoverImageURL,
		DemoLink:      req.DemoLink,
		RepoLink:      req.RepoLink,
		Tags:          req.Tags,
	}
	for i, url := range req.ImageURLs {
		project.Images = append(project.Images, models.ProjectImage{URL: url, Position: i})
	}

	if err := database.DB.Create(&project).Error; err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to create project", err)
	}

	return utils.Success(c, fiber.StatusCreated, project)
}

func ListProjects(c *fiber.Ctx) error {
	page, limit, offset := utils.ParsePagination(c, 12)

	query := database.DB.Model(&models.Project{}).
		Preload("Owner").
		Preload("Category")

	if slug := c.Query("category"); slug != "" {
		query = query.Joins("JOIN categories ON categories.id = projects.category_id").
			Where("categories.slug = ?", slug)
	}
	if owner := c.Query("owner"); owner != "" {
		query = query.Joins("JOIN users ON users.id = projects.owner_id").
			Where("users.username = ?", owner)
	}

	var total int64
	query.Count(&total)

	var projects []models.Project
	if err := query.
		Order("projects.created_at desc").
		Offset(offset).Limit(limit).
		Find(&projects).Error; err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to load projects", err)
	}

	return utils.SuccessList(c, projects, utils.NewPagination(page, limit, total))
}

func GetProject(c *fiber.Ctx) error {
	projectID := c.Params("projectId")

	var project models.Project
	if err := database.DB.
		Preload("Owner").
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Likes").
		First(&project, "id = ?", projectID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Project not found")
	}

	viewerID, authed := optionalUserID(c)
	if err := countView(&project, viewerID, authed); err == nil {
		project.ViewCount++
	}

	liked := authed && project.LikedBy(viewerID)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"project":    project,
		"like_count": len(project.Likes),
		"liked":      liked,
	})
}

// countView bumps the view counter. Signed-in visitors are deduplicated
// through project_views and owner views never count; anonymous visitors
// always increment. Returns a non-nil error when no increment happened.
func countView(project *models.Project, viewerID uuid.UUID, authed bool) error {
	increment := func(tx *gorm.DB) error {
		return tx.Model(&models.Project{}).
			Where("id = ?", project.ID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	}

	if !authed {
		return increment(database.DB)
	}
	if viewerID == project.OwnerID {
		return gorm.ErrRecordNotFound
	}

	var seen int64
	database.DB.Table("project_views").
		Where("project_id = ? AND user_id = ?", project.ID, viewerID).
		Count(&seen)
	if seen > 0 {
		return gorm.ErrRecordNotFound
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		viewer := models.User{ID: viewerID}
		if err := tx.Model(project).Association("ViewedBy").Append(&viewer); err != nil {
			return err
		}
		return increment(tx)
	})
}

func UpdateProject(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var project models.Project
	if err := database.DB.First(&project, "id = ?", c.Params("projectId")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Project not found")
	}

	if project.OwnerID != userID {
		return utils.Error(c, fiber.StatusForbidden, "You are not the owner of this project")
	}

	var req UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.CategoryID != nil {
		categoryID, _ := uuid.Parse(*req.CategoryID)
		var category models.Category
		if err := database.DB.First(&category, "id = ?", categoryID).Error; err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "Unknown category")
		}
		project.CategoryID = categoryID
	}
	if req.CoverImageURL != nil {
		project.CoverImageURL = req.CoverImageURL
	}
	if req.DemoLink != nil {
		project.DemoLink = req.DemoLink
	}
	if req.RepoLink != nil {
		project.RepoLink = req.RepoLink
	}
	if req.Tags != nil {
		project.Tags = req.Tags
	}

	if err := database.DB.Save(&project).Error; err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to update project", err)
	}

	return utils.Success(c, fiber.StatusOK, project)
}

func DeleteProject(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var project models.Project
	if err := database.DB.First(&project, "id = ?", c.Params("projectId")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Project not found")
	}

	if project.OwnerID != userID {
		return utils.Error(c, fiber.StatusForbidden, "You are not the owner of this project")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&project).Association("Likes").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&project).Association("ViewedBy").Clear(); err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
	if err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to delete project", err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": project.ID})
}

func ToggleProjectLike(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var project models.Project
	if err := database.DB.Preload("Likes").First(&project, "id = ?", c.Params("projectId")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Project not found")
	}

	me := models.User{ID: userID}
	liked := project.LikedBy(userID)

	var err error
	if liked {
		err = database.DB.Model(&project).Association("Likes").Delete(&me)
	} else {
		err = database.DB.Model(&project).Association("Likes").Append(&me)
	}
	if err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to update like", err)
	}

	likeCount := database.DB.Model(&project).Association("Likes").Count()

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"liked":      !liked,
		"like_count": likeCount,
	})
}
