package audio

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"scene-editor/core/assets"
	"scene-editor/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Identifier is the registry key for the sound category.
const Identifier = "sounds"

// Title is the user-facing name of the sound category.
const Title = "Sounds"

var supportedExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
	".ogg": true,
}

// Handler manages sound assets stored under a bucket prefix. Sound files
// are too large to inline, so items never carry a payload.
type Handler struct {
	assets.Updates

	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger

	mu     sync.RWMutex
	items  []assets.Item
	filter string
}

// New creates the sound handler.
func New(client storage.Client, bucket string, cfg assets.Config, logger *zap.Logger) *Handler {
	return &Handler{
		client: client,
		bucket: bucket,
		prefix: cfg.AudioPrefix,
		logger: logger,
	}
}

func (h *Handler) Items() []assets.Item {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]assets.Item, len(h.items))
	copy(out, h.items)
	return out
}

func (h *Handler) ReplaceItems(items []assets.Item) {
	h.mu.Lock()
	h.items = items
	h.mu.Unlock()
}

// SetFilter stores the display-only search filter.
func (h *Handler) SetFilter(text string) {
	h.mu.Lock()
	h.filter = text
	h.mu.Unlock()
}

// Filter returns the current display filter.
func (h *Handler) Filter() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.filter
}

// Refresh rebuilds the item list from storage.
func (h *Handler) Refresh(ctx context.Context, scope *assets.Scope) error {
	if scope != nil && scope.Key != "" {
		return h.refreshOne(ctx, scope.Key)
	}

	var infos []minio.ObjectInfo
	for obj := range h.client.ListObjects(ctx, h.bucket, minio.ListObjectsOptions{
		Prefix:    h.prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return fmt.Errorf("failed to list sounds: %w", obj.Err)
		}
		if !supportedExtensions[strings.ToLower(path.Ext(obj.Key))] {
			continue
		}
		infos = append(infos, obj)
	}

	items := make([]assets.Item, 0, len(infos))
	for i, info := range infos {
		items = append(items, assets.Item{
			ID:    uuid.NewString(),
			Key:   strings.TrimPrefix(info.Key, h.prefix),
			Style: map[string]string{"icon": "sound"},
		})
		h.Publish(i+1, len(infos))
	}

	h.ReplaceItems(items)
	return nil
}

func (h *Handler) refreshOne(ctx context.Context, key string) error {
	_, err := h.client.StatObject(ctx, h.bucket, h.prefix+key, minio.StatObjectOptions{})

	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.items {
		if h.items[i].Key == key {
			if err != nil {
				h.items = append(h.items[:i], h.items[i+1:]...)
			}
			return nil
		}
	}
	if err == nil {
		h.items = append(h.items, assets.Item{
			ID:    uuid.NewString(),
			Key:   key,
			Style: map[string]string{"icon": "sound"},
		})
	}
	return nil
}

// OnDropFiles uploads the sound files from the drop set; files with other
// extensions are ignored.
func (h *Handler) OnDropFiles(ctx context.Context, files []assets.File) error {
	for _, f := range files {
		if !supportedExtensions[strings.ToLower(path.Ext(f.Name))] {
			continue
		}
		objectName := h.prefix + path.Base(f.Name)
		_, err := h.client.PutObject(ctx, h.bucket, objectName,
			bytes.NewReader(f.Data), int64(len(f.Data)),
			minio.PutObjectOptions{ContentType: "application/octet-stream"})
		if err != nil {
			return fmt.Errorf("failed to upload sound %s: %w", f.Name, err)
		}
		h.logger.Info("Sound uploaded", zap.String("object", objectName))
	}
	return nil
}
