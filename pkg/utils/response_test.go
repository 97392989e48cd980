package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func setupResponseTestApp() *fiber.App {
	app := fiber.New()

	app.Get("/success", func(c *fiber.Ctx) error {
		return Success(c, fiber.StatusCreated, fiber.Map{"roomNumber": "042137"})
	})

	app.Get("/error", func(c *fiber.Ctx) error {
		return Error(c, fiber.StatusNotFound, "room not found or expired")
	})

	return app
}

func performResponseTestRequest(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request to %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed decoding %s response body: %v", path, err)
	}

	return resp.StatusCode, body
}

func TestResponseHelpers(t *testing.T) {
	app := setupResponseTestApp()

	t.Run("Success returns expected envelope", func(t *testing.T) {
		status, body := performResponseTestRequest(t, app, "/success")

		if status != fiber.StatusCreated {
			t.Fatalf("expected status %d, got %d", fiber.StatusCreated, status)
		}
		if success, ok := body["success"].(bool); !ok || !success {
			t.Fatalf("expected success=true, got %v", body["success"])
		}

		data, ok := body["data"].(map[string]any)
		if !ok {
			t.Fatalf("expected data object, got %T", body["data"])
		}
		if data["roomNumber"] != "042137" {
			t.Fatalf("expected data.roomNumber to be %q, got %v", "042137", data["roomNumber"])
		}
	})

	t.Run("Error returns expected envelope", func(t *testing.T) {
		status, body := performResponseTestRequest(t, app, "/error")

		if status != fiber.StatusNotFound {
			t.Fatalf("expected status %d, got %d", fiber.StatusNotFound, status)
		}
		if success, ok := body["success"].(bool); !ok || success {
			t.Fatalf("expected success=false, got %v", body["success"])
		}
		if body["error"] != "room not found or expired" {
			t.Fatalf("unexpected error message: %v", body["error"])
		}
	})
}
