package handlers

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/craftfolio/api/database"
	"github.com/craftfolio/api/models"
	"github.com/craftfolio/api/services"
	"github.com/craftfolio/api/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// loadUserWithEdges fetches a user with the social-graph edges the chat
// permission evaluator consults.
func loadUserWithEdges(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := database.DB.
		Preload("Followers").
		Preload("Following").
		Preload("BlockedUsers").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func findConversationByPair(a, b uuid.UUID) (*models.Conversation, error) {
	one, two := models.OrderPair(a, b)
	var conversation models.Conversation
	err := database.DB.
		Preload("Participants").
		Where("user_one_id = ? AND user_two_id = ?", one, two).
		First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

type conversationSummary struct {
	ID            uuid.UUID            `json:"id"`
	Other         models.PublicProfile `json:"other"`
	LastMessage   *models.Message      `json:"last_message"`
	LastMessageAt *time.Time           `json:"last_message_at"`
	UnreadCount   int                  `json:"unread_count"`
	CreatedAt     time.Time            `json:"created_at"`
}

func GetUserConversations(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var conversations []models.Conversation
	if err := database.DB.
		Preload("UserOne").
		Preload("UserTwo").
		Preload("LastMessage").
		Preload("Participants").
		Where("user_one_id = ? OR user_two_id = ?", userID, userID).
		Order("last_message_at desc NULLS LAST, created_at desc").
		Find(&conversations).Error; err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to load conversations", err)
	}

	summaries := make([]conversationSummary, 0, len(conversations))
	for i := range conversations {
		conv := &conversations[i]
		other := conv.UserTwo
		if conv.UserTwoID == userID {
			other = conv.UserOne
		}
		summaries = append(summaries, conversationSummary{
			ID:            conv.ID,
			Other:         other.Public(),
			LastMessage:   conv.LastMessage,
			LastMessageAt: conv.LastMessageAt,
			UnreadCount:   conv.UnreadFor(userID),
			CreatedAt:     conv.CreatedAt,
		})
	}

	return utils.Success(c, fiber.StatusOK, summaries)
}

// GetOrCreateConversation returns the conversation between the caller and
// :userId, creating it if first contact is allowed. An existing
// conversation is returned without consulting the new-contact permission
// gate; only blocks stand in the way of reopening one.
func GetOrCreateConversation(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	targetID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}
	if targetID == userID {
		return utils.Error(c, fiber.StatusForbidden, "You cannot message yourself")
	}

	target, err := loadUserWithEdges(targetID)
	if err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}
	me, err := loadUserWithEdges(userID)
	if err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	if me.HasBlocked(targetID) || target.HasBlocked(userID) {
		return utils.Error(c, fiber.StatusForbidden, "Messaging is not available between these users")
	}

	if conversation, err := findConversationByPair(userID, targetID); err == nil {
		return utils.Success(c, fiber.StatusOK, conversation)
	}

	if err := services.CanStartConversation(me, target); err != nil {
		return utils.Error(c, fiber.StatusForbidden, err.Error())
	}

	one, two := models.OrderPair(userID, targetID)
	conversation := models.Conversation{
		UserOneID: one,
		UserTwoID: two,
		Participants: []models.ConversationParticipant{
			{UserID: one},
			{UserID: two},
		},
	}
	if err := database.DB.Create(&conversation).Error; err != nil {
		// Two simultaneous first contacts can both miss the lookup above;
		// the pair index rejects the loser, which re-reads the winner.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, readErr := findConversationByPair(userID, targetID)
			if readErr != nil {
				return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to create conversation", readErr)
			}
			return utils.Success(c, fiber.StatusOK, existing)
		}
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to create conversation", err)
	}

	return utils.Success(c, fiber.StatusCreated, conversation)
}

func DeleteConversation(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var conversation models.Conversation
	if err := database.DB.First(&conversation, "id = ?", c.Params("conversationId")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Conversation not found")
	}

	if !conversation.HasParticipant(userID) {
		return utils.Error(c, fiber.StatusForbidden, "You are not a participant of this conversation")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// The last-message pointer references a row about to be deleted;
		// clear it before the messages go.
		if err := tx.Model(&conversation).Updates(map[string]any{
			"last_message_id": nil,
			"last_message_at": nil,
		}).Error; err != nil {
			return err
		}

		messageIDs := tx.Model(&models.Message{}).
			Select("id").
			Where("conversation_id = ?", conversation.ID)
		if err := tx.Where("message_id IN (?)", messageIDs).Delete(&models.MessageReceipt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("conversation_id = ?", conversation.ID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("conversation_id = ?", conversation.ID).Delete(&models.ConversationParticipant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&conversation).Error
	})
	if err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to delete conversation", err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": conversation.ID})
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

func SendMessage(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Message content cannot be empty")
	}
	if utf8.RuneCountInString(content) > models.MaxMessageLength {
		return utils.Error(c, fiber.StatusBadRequest, "Message content is too long")
	}

	var conversation models.Conversation
	if err := database.DB.First(&conversation, "id = ?", c.Params("conversationId")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Conversation not found")
	}

	if !conversation.HasParticipant(userID) {
		return utils.Error(c, fiber.StatusForbidden, "You are not a participant of this conversation")
	}

	// Permission settings may have changed since the conversation was
	// created, so blocks and the "none" level are re-checked on every send.
	me, err := loadUserWithEdges(userID)
	if err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}
	other, err := loadUserWithEdges(conversation.OtherParticipant(userID))
	if err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}
	if err := services.CanMessage(me, other); err != nil {
		return utils.Error(c, fiber.StatusForbidden, err.Error())
	}

	now := time.Now()
	message := models.Message{
		ConversationID: conversation.ID,
		SenderID:       userID,
		Content:        content,
		Receipts: []models.MessageReceipt{
			{ReaderID: userID, ReadAt: now},
		},
	}

	// Message insert, conversation summary update and the recipient's
	// unread bump commit or fail as one unit.
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		if err := tx.Model(&conversation).Updates(map[string]any{
			"last_message_id": message.ID,
			"last_message_at": now,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.ConversationParticipant{}).
			Where("conversation_id = ? AND user_id = ?", conversation.ID, other.ID).
			UpdateColumn("unread_count", gorm.Expr("unread_count + 1")).Error
	})
	if err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to send message", err)
	}

	notifyNewMessage(&message)

	return utils.Success(c, fiber.StatusCreated, message)
}

func MarkConversationRead(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var conversation models.Conversation
	if err := database.DB.First(&conversation, "id = ?", c.Params("conversationId")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Conversation not found")
	}

	if !conversation.HasParticipant(userID) {
		return utils.Error(c, fiber.StatusForbidden, "You are not a participant of this conversation")
	}

	now := time.Now()
	var receipted int
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		alreadyRead := tx.Model(&models.MessageReceipt{}).
			Select("message_id").
			Where("reader_id = ?", userID)

		var unread []models.Message
		if err := tx.
			Where("conversation_id = ? AND sender_id <> ? AND deleted = false", conversation.ID, userID).
			Where("id NOT IN (?)", alreadyRead).
			Find(&unread).Error; err != nil {
			return err
		}

		if len(unread) > 0 {
			receipts := make([]models.MessageReceipt, 0, len(unread))
			for _, m := range unread {
				receipts = append(receipts, models.MessageReceipt{
					MessageID: m.ID,
					ReaderID:  userID,
					ReadAt:    now,
				})
			}
			// A concurrent mark-read can receipt the same messages between
			// the select above and this insert; losing the race is fine.
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&receipts).Error; err != nil {
				return err
			}
			receipted = len(receipts)
		}

		return tx.Model(&models.ConversationParticipant{}).
			Where("conversation_id = ? AND user_id = ?", conversation.ID, userID).
			UpdateColumn("unread_count", 0).Error
	})
	if err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to mark conversation as read", err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"marked_read": receipted})
}

func GetConversationMessages(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var conversation models.Conversation
	if err := database.DB.First(&conversation, "id = ?", c.Params("conversationId")).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Conversation not found")
	}

	if !conversation.HasParticipant(userID) {
		return utils.Error(c, fiber.StatusForbidden, "You are not a participant of this conversation")
	}

	page, limit, offset := utils.ParsePagination(c, 50)

	var total int64
	database.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND deleted = false", conversation.ID).
		Count(&total)

	var messages []models.Message
	if err := database.DB.
		Preload("Receipts").
		Where("conversation_id = ? AND deleted = false", conversation.ID).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&messages).Error; err != nil {
		return utils.ErrorWithDetail(c, fiber.StatusInternalServerError, "Failed to load messages", err)
	}

	// Pages are taken newest-first; each page is returned in chronological
	// order for rendering.
	reverseMessages(messages)

	return utils.SuccessList(c, messages, utils.NewPagination(page, limit, total))
}

func reverseMessages(messages []models.Message) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
