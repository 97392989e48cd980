package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
)

func TestMenuEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "alice", "alice@example.com", "password123")
	headers := authHeaders(token)

	t.Run("get provisions an empty menu", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/menu", nil, headers)
		assertStatus(t, resp, http.StatusOK)
		menu := dataMap(t, decodeJSONMap(t, resp))
		if menu["title"] != "My Menu" || menu["ownerName"] != "alice" {
			t.Errorf("unexpected menu: %+v", menu)
		}
		if items, _ := menu["items"].([]any); len(items) != 0 {
			t.Errorf("expected no items, got %v", menu["items"])
		}
		if _, present := menu["roomNumber"]; present {
			t.Error("fresh menu must not carry a room number")
		}
	})

	t.Run("update title", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPut, "/api/menu", map[string]any{"title": "Dinner"}, headers)
		assertStatus(t, resp, http.StatusOK)
		if menu := dataMap(t, decodeJSONMap(t, resp)); menu["title"] != "Dinner" {
			t.Errorf("expected title Dinner, got %v", menu["title"])
		}

		resp = performJSONRequest(t, env.app, http.MethodPut, "/api/menu", map[string]any{"title": ""}, headers)
		assertStatus(t, resp, http.StatusBadRequest)
	})

	var itemID string

	t.Run("add item", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/menu/items", map[string]any{
			"name":        "Dumplings",
			"description": "pork",
			"category":    "Meat",
		}, headers)
		assertStatus(t, resp, http.StatusCreated)
		item := dataMap(t, decodeJSONMap(t, resp))
		if item["isAvailable"] != true {
			t.Errorf("expected available item, got %v", item["isAvailable"])
		}
		itemID, _ = item["id"].(string)
		if _, err := uuid.Parse(itemID); err != nil {
			t.Fatalf("expected item id, got %q", itemID)
		}
	})

	t.Run("add item validation", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/menu/items", map[string]any{
			"name":     "Cake",
			"category": "Dessert",
		}, headers)
		assertStatus(t, resp, http.StatusBadRequest)
		assertEnvelopeError(t, decodeJSONMap(t, resp), "invalid input: category must be one of: Vegetable Meat Soup Mixed")
	})

	t.Run("update item", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPut, "/api/menu/items/"+itemID, map[string]any{
			"name":        "Dumplings",
			"category":    "Meat",
			"isAvailable": false,
		}, headers)
		assertStatus(t, resp, http.StatusOK)
		if item := dataMap(t, decodeJSONMap(t, resp)); item["isAvailable"] != false {
			t.Errorf("expected unavailable item, got %v", item["isAvailable"])
		}

		resp = performJSONRequest(t, env.app, http.MethodPut, "/api/menu/items/"+uuid.NewString(), map[string]any{
			"name":     "Ghost",
			"category": "Soup",
		}, headers)
		assertStatus(t, resp, http.StatusNotFound)
		assertEnvelopeError(t, decodeJSONMap(t, resp), "menu item not found")

		resp = performJSONRequest(t, env.app, http.MethodPut, "/api/menu/items/not-a-uuid", map[string]any{
			"name":     "Ghost",
			"category": "Soup",
		}, headers)
		assertStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("delete item", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodDelete, "/api/menu/items/"+itemID, nil, headers)
		assertStatus(t, resp, http.StatusOK)

		resp = performRequest(t, env.app, http.MethodDelete, "/api/menu/items/"+itemID, nil, headers)
		assertStatus(t, resp, http.StatusNotFound)
	})

	t.Run("requires authentication", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/menu", nil, nil)
		assertStatus(t, resp, http.StatusUnauthorized)
	})
}
