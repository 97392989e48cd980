package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/homemenu/backend/internal/models"
	"github.com/homemenu/backend/pkg/logger"
	"github.com/homemenu/backend/pkg/utils"
	"gorm.io/gorm"
)

func setupMiddlewareTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Init()
	utils.ConfigureJWT("middleware-test-secret", 24)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed automigrating: %v", err)
	}
	return db
}

func createMiddlewareTestUser(t *testing.T, db *gorm.DB, email string) (*models.User, string) {
	t.Helper()
	hash, _ := utils.HashPassword("password123")
	user := &models.User{
		Username:     "tester",
		Email:        email,
		PasswordHash: hash,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed creating user: %v", err)
	}
	token, err := utils.GenerateToken(user)
	if err != nil {
		t.Fatalf("failed generating token: %v", err)
	}
	return user, token
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("failed decoding body: %v body=%q", err, string(raw))
	}
	return body
}

func TestRequireAuth(t *testing.T) {
	db := setupMiddlewareTestDB(t)
	auth := NewAuthMiddleware(db)
	user, token := createMiddlewareTestUser(t, db, "auth-require@test.com")

	app := fiber.New()
	app.Use(RequestLogger())
	app.Get("/protected", auth.RequireAuth, func(c *fiber.Ctx) error {
		current := GetCurrentUser(c)
		return c.JSON(fiber.Map{"email": current.Email, "userID": c.Locals("userID")})
	})

	t.Run("missing authorization header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		resp, _ := app.Test(req, 5000)
		body := decodeBody(t, resp)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
		if body["error"] != "missing authorization header" {
			t.Fatalf("expected missing header error, got %v", body["error"])
		}
	})

	t.Run("invalid authorization format", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic somecreds")
		resp, _ := app.Test(req, 5000)
		body := decodeBody(t, resp)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
		if body["error"] != "invalid authorization format" {
			t.Fatalf("expected invalid format error, got %v", body["error"])
		}
	})

	t.Run("invalid JWT token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer invalid-jwt-token")
		resp, _ := app.Test(req, 5000)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("valid JWT token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req, 5000)
		body := decodeBody(t, resp)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		if body["email"] != "auth-require@test.com" {
			t.Fatalf("expected email to be auth-require@test.com, got %v", body["email"])
		}
		if body["userID"] != user.ID.String() {
			t.Fatalf("expected userID local %s, got %v", user.ID, body["userID"])
		}
		if resp.Header.Get("X-Request-ID") == "" {
			t.Error("expected request id header")
		}
	})

	t.Run("JWT for deleted user", func(t *testing.T) {
		deletedUser := &models.User{
			Username:     "gone",
			Email:        "deleted@test.com",
			PasswordHash: "hash",
		}
		db.Create(deletedUser)
		deletedToken, _ := utils.GenerateToken(deletedUser)
		db.Delete(deletedUser)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+deletedToken)
		resp, _ := app.Test(req, 5000)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
	})
}

func TestGetCurrentUser_NoUser(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if GetCurrentUser(c) != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), 5000)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
}
