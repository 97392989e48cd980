package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/homemenu/backend/internal/models"
	"github.com/homemenu/backend/internal/storage"
	"github.com/homemenu/backend/pkg/logger"
)

// ObjectStorage is the subset of storage.MinIOClient the snapshot store
// needs.
type ObjectStorage interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, objectName string) (io.ReadCloser, error)
	Delete(ctx context.Context, objectName string) error
}

// ObjectSnapshotStore keeps each snapshot as the JSON object
// menus/<id>.json.
type ObjectSnapshotStore struct {
	Storage ObjectStorage
}

func NewObjectSnapshotStore(objects ObjectStorage) *ObjectSnapshotStore {
	return &ObjectSnapshotStore{Storage: objects}
}

func snapshotObjectName(menuID string) string {
	return fmt.Sprintf("menus/%s.json", menuID)
}

func (s *ObjectSnapshotStore) Put(ctx context.Context, menu models.Menu) error {
	doc, err := DocumentFromMenu(menu)
	if err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := s.Storage.Upload(ctx, snapshotObjectName(doc.ID), bytes.NewReader(data), int64(len(data)), "application/json"); err != nil {
		return unavailable("put snapshot", err)
	}
	return nil
}

func (s *ObjectSnapshotStore) Get(ctx context.Context, menuID string) (*models.Menu, error) {
	reader, err := s.Storage.Download(ctx, snapshotObjectName(menuID))
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("get snapshot", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, unavailable("read snapshot", err)
	}

	doc, err := decodeDocumentJSON(data)
	if err == nil {
		var menu models.Menu
		if menu, err = MenuFromDocument(doc); err == nil {
			return &menu, nil
		}
	}
	logger.Warn("snapshot_decode_failed", map[string]interface{}{
		"menu_id": menuID,
		"error":   err.Error(),
	})

	// An undecodable object can never be served; drop it so the next share
	// of this menu starts clean.
	if delErr := s.Storage.Delete(ctx, snapshotObjectName(menuID)); delErr != nil {
		logger.Warn("snapshot_delete_failed", map[string]interface{}{
			"menu_id": menuID,
			"error":   delErr.Error(),
		})
	}
	return nil, ErrNotFound
}
