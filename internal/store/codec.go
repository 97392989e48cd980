package store

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/homemenu/backend/internal/models"
)

var errMalformed = errors.New("malformed snapshot")

// EncodeItems renders items the way the "menus" collection stores them:
// a JSON array, base64 encoded.
func EncodeItems(items []models.MenuItem) (string, error) {
	if items == nil {
		items = []models.MenuItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encoding items: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeItems reverses EncodeItems. Optional fields that are absent take
// their defaults; fields that are present with the wrong shape fail.
func DecodeItems(payload string) ([]models.MenuItem, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: items are not base64: %v", errMalformed, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: items are not a JSON array", errMalformed)
	}

	var raws []map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raws); err != nil {
		return nil, fmt.Errorf("%w: items are not a JSON array of objects: %v", errMalformed, err)
	}

	items := make([]models.MenuItem, 0, len(raws))
	for i, raw := range raws {
		item, err := decodeItem(raw)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func decodeItem(raw map[string]json.RawMessage) (models.MenuItem, error) {
	var item models.MenuItem

	id, err := requiredString(raw, "id")
	if err != nil {
		return item, err
	}
	if item.ID, err = uuid.Parse(id); err != nil {
		return item, fmt.Errorf("%w: id %q is not a UUID", errMalformed, id)
	}

	if item.Name, err = requiredString(raw, "name"); err != nil {
		return item, err
	}
	if item.Name == "" {
		return item, fmt.Errorf("%w: name is empty", errMalformed)
	}

	if item.Description, err = optionalString(raw, "description", ""); err != nil {
		return item, err
	}

	category, err := requiredString(raw, "category")
	if err != nil {
		return item, err
	}
	item.Category = models.FoodCategory(category)
	if !item.Category.Valid() {
		return item, fmt.Errorf("%w: unknown category %q", errMalformed, category)
	}

	if item.IsAvailable, err = optionalBool(raw, "isAvailable", true); err != nil {
		return item, err
	}
	return item, nil
}

// DocumentFromMenu builds the "menus" row for a snapshot of menu.
func DocumentFromMenu(menu models.Menu) (models.MenuDocument, error) {
	items, err := EncodeItems(menu.Items)
	if err != nil {
		return models.MenuDocument{}, err
	}
	return models.MenuDocument{
		ID:          menu.ID.String(),
		OwnerName:   menu.OwnerName,
		Title:       menu.Title,
		Items:       items,
		LastUpdated: menu.LastUpdated.UTC(),
	}, nil
}

// MenuFromDocument decodes a "menus" row. Snapshots never carry a room
// number.
func MenuFromDocument(doc models.MenuDocument) (models.Menu, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return models.Menu{}, fmt.Errorf("%w: id %q is not a UUID", errMalformed, doc.ID)
	}
	items, err := DecodeItems(doc.Items)
	if err != nil {
		return models.Menu{}, err
	}
	return models.Menu{
		ID:          id,
		OwnerName:   doc.OwnerName,
		Title:       doc.Title,
		Items:       items,
		LastUpdated: doc.LastUpdated,
	}, nil
}

// decodeDocumentJSON reads a document serialized as a JSON object, as kept
// in object storage.
func decodeDocumentJSON(data []byte) (models.MenuDocument, error) {
	var doc models.MenuDocument

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return doc, fmt.Errorf("%w: document is not a JSON object: %v", errMalformed, err)
	}

	var err error
	if doc.ID, err = requiredString(raw, "id"); err != nil {
		return doc, err
	}
	if doc.OwnerName, err = optionalString(raw, "ownerName", ""); err != nil {
		return doc, err
	}
	if doc.Title, err = optionalString(raw, "title", ""); err != nil {
		return doc, err
	}
	if doc.Items, err = requiredString(raw, "items"); err != nil {
		return doc, err
	}

	if value, ok := raw["lastUpdated"]; ok {
		if isNull(value) {
			return doc, fmt.Errorf("%w: lastUpdated is null", errMalformed)
		}
		if err := json.Unmarshal(value, &doc.LastUpdated); err != nil {
			return doc, fmt.Errorf("%w: lastUpdated is not a timestamp", errMalformed)
		}
	}
	if !doc.LastUpdated.IsZero() {
		doc.LastUpdated = doc.LastUpdated.UTC()
	}
	return doc, nil
}

// isNull reports a present JSON null. json.Unmarshal accepts null for any
// target and leaves it untouched, so it has to be rejected explicitly.
func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

func requiredString(raw map[string]json.RawMessage, key string) (string, error) {
	value, ok := raw[key]
	if !ok {
		return "", fmt.Errorf("%w: missing %s", errMalformed, key)
	}
	if isNull(value) {
		return "", fmt.Errorf("%w: %s is null", errMalformed, key)
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return "", fmt.Errorf("%w: %s is not a string", errMalformed, key)
	}
	return s, nil
}

func optionalString(raw map[string]json.RawMessage, key, fallback string) (string, error) {
	if _, ok := raw[key]; !ok {
		return fallback, nil
	}
	return requiredString(raw, key)
}

func optionalBool(raw map[string]json.RawMessage, key string, fallback bool) (bool, error) {
	value, ok := raw[key]
	if !ok {
		return fallback, nil
	}
	if isNull(value) {
		return false, fmt.Errorf("%w: %s is null", errMalformed, key)
	}
	var b bool
	if err := json.Unmarshal(value, &b); err != nil {
		return false, fmt.Errorf("%w: %s is not a boolean", errMalformed, key)
	}
	return b, nil
}
