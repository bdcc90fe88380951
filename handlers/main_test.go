package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/craftfolio/api/database"
	"github.com/craftfolio/api/middleware"
	"github.com/craftfolio/api/models"
	ws "github.com/craftfolio/api/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const testJWTSecret = "handlers-test-secret"

var pgContainer *postgres.PostgresContainer

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", testJWTSecret)

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("craftfolio"),
		postgres.WithUsername("craftfolio"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}
	pgContainer = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		log.Printf("failed to get connection string: %v", err)
		return
	}

	database.DB, err = gorm.Open(gormpostgres.Open(connStr), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		log.Printf("failed to connect to test database: %v", err)
		return
	}

	database.Migrate()

	go ws.RunHub()

	code := m.Run()

	if err := pgContainer.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

// newMessagingApp mirrors the messaging route group so the handlers run
// behind the same JWT middleware they see in production.
func newMessagingApp() *fiber.App {
	app := fiber.New()

	api := app.Group("/api/v1", middleware.Protected())
	api.Get("/conversations", GetUserConversations)

	conversation := api.Group("/conversation")
	conversation.Get("/:userId", GetOrCreateConversation)
	conversation.Delete("/:conversationId", DeleteConversation)
	conversation.Get("/:conversationId/messages", GetConversationMessages)
	conversation.Post("/:conversationId/messages", SendMessage)
	conversation.Put("/:conversationId/read", MarkConversationRead)

	return app
}

func seedUser(t *testing.T, permission string) *models.User {
	t.Helper()

	suffix := uuid.NewString()[:8]
	user := &models.User{
		Username:          "user" + suffix,
		Email:             suffix + "@example.com",
		Password:          "not-a-real-hash",
		FullName:          "Test User",
		MessagePermission: permission,
		AllowMessages:     true,
	}
	require.NoError(t, database.DB.Create(user).Error)
	return user
}

func seedConversation(t *testing.T, a, b *models.User) *models.Conversation {
	t.Helper()

	one, two := models.OrderPair(a.ID, b.ID)
	conversation := &models.Conversation{
		UserOneID: one,
		UserTwoID: two,
		Participants: []models.ConversationParticipant{
			{UserID: one},
			{UserID: two},
		},
	}
	require.NoError(t, database.DB.Create(conversation).Error)
	return conversation
}

func blockUser(t *testing.T, blocker, blocked *models.User) {
	t.Helper()
	require.NoError(t, database.DB.Model(blocker).Association("BlockedUsers").Append(blocked))
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

// doRequest issues an authenticated request against the test app and
// decodes the response envelope.
func doRequest(t *testing.T, app *fiber.App, method, target, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func dataField(t *testing.T, envelope map[string]any, key string) any {
	t.Helper()

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %v", envelope)
	return data[key]
}
