package textures

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"sync/atomic"

	"scene-editor/core/assets"
	"scene-editor/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Identifier is the registry key for the texture category.
const Identifier = "textures"

// Title is the user-facing name of the texture category.
const Title = "Textures"

// fetchers bounds concurrent preview downloads within one refresh.
const fetchers = 4

var supportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".dds":  true,
	".hdr":  true,
	".env":  true,
}

// Handler manages texture assets stored under a bucket prefix. Small
// objects are inlined as base64 previews during refresh.
type Handler struct {
	assets.Updates

	client          storage.Client
	bucket          string
	prefix          string
	previewMaxBytes int64
	logger          *zap.Logger

	mu     sync.RWMutex
	items  []assets.Item
	filter string
}

// New creates the texture handler.
func New(client storage.Client, bucket string, cfg assets.Config, logger *zap.Logger) *Handler {
	return &Handler{
		client:          client,
		bucket:          bucket,
		prefix:          cfg.TexturePrefix,
		previewMaxBytes: cfg.PreviewMaxBytes,
		logger:          logger,
	}
}

// Items returns the current item list.
func (h *Handler) Items() []assets.Item {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]assets.Item, len(h.items))
	copy(out, h.items)
	return out
}

// ReplaceItems replaces the item list wholesale.
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

// Refresh rebuilds the item list from storage. With a scope, only the
// scoped object is re-stated and updated in place.
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
			return fmt.Errorf("failed to list textures: %w", obj.Err)
		}
		if !supportedExtensions[strings.ToLower(path.Ext(obj.Key))] {
			continue
		}
		infos = append(infos, obj)
	}

	items := make([]assets.Item, len(infos))
	total := len(infos)
	var done int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchers)
	for i, info := range infos {
		i, info := i, info
		g.Go(func() error {
			item := assets.Item{
				ID:    uuid.NewString(),
				Key:   strings.TrimPrefix(info.Key, h.prefix),
				Style: map[string]string{"objectFit": "contain"},
			}
			if info.Size > 0 && info.Size <= h.previewMaxBytes {
				preview, err := h.fetchPreview(gctx, info.Key)
				if err != nil {
					// A missing preview keeps the item usable.
					h.logger.Debug("Texture preview unavailable",
						zap.String("object", info.Key), zap.Error(err))
				} else {
					item.Base64 = preview
				}
			}
			items[i] = item
			h.Publish(int(atomic.AddInt32(&done, 1)), total)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	h.ReplaceItems(items)
	return nil
}

// refreshOne re-states the scoped object and upserts its item.
func (h *Handler) refreshOne(ctx context.Context, key string) error {
	objectName := h.prefix + key
	info, err := h.client.StatObject(ctx, h.bucket, objectName, minio.StatObjectOptions{})
	if err != nil {
		// Object gone: drop the item.
		h.removeItem(key)
		return nil
	}

	item := assets.Item{
		ID:    uuid.NewString(),
		Key:   key,
		Style: map[string]string{"objectFit": "contain"},
	}
	if info.Size > 0 && info.Size <= h.previewMaxBytes {
		if preview, err := h.fetchPreview(ctx, objectName); err == nil {
			item.Base64 = preview
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.items {
		if h.items[i].Key == key {
			item.ID = h.items[i].ID
			h.items[i] = item
			return nil
		}
	}
	h.items = append(h.items, item)
	return nil
}

func (h *Handler) removeItem(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.items {
		if h.items[i].Key == key {
			h.items = append(h.items[:i], h.items[i+1:]...)
			return
		}
	}
}

func (h *Handler) fetchPreview(ctx context.Context, objectName string) (string, error) {
	reader, err := h.client.GetObject(ctx, h.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return "", err
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, h.previewMaxBytes))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// OnDropFiles uploads the texture files from the drop set; files with
// other extensions are ignored.
func (h *Handler) OnDropFiles(ctx context.Context, files []assets.File) error {
	for _, f := range files {
		if !supportedExtensions[strings.ToLower(path.Ext(f.Name))] {
			continue
		}
		objectName := h.prefix + path.Base(f.Name)
		_, err := h.client.PutObject(ctx, h.bucket, objectName,
			bytes.NewReader(f.Data), int64(len(f.Data)),
			minio.PutObjectOptions{ContentType: contentType(f.Name)})
		if err != nil {
			return fmt.Errorf("failed to upload texture %s: %w", f.Name, err)
		}
		h.logger.Info("Texture uploaded", zap.String("object", objectName))
	}
	return nil
}

// Clean removes objects under the texture prefix that no texture item can
// ever reference (unsupported extensions, zero-byte leftovers).
func (h *Handler) Clean(ctx context.Context) error {
	objectsCh := make(chan minio.ObjectInfo)
	errCh := make(chan error, 1)

	go func() {
		defer close(objectsCh)
		for obj := range h.client.ListObjects(ctx, h.bucket, minio.ListObjectsOptions{
			Prefix:    h.prefix,
			Recursive: true,
		}) {
			if obj.Err != nil {
				errCh <- obj.Err
				return
			}
			if supportedExtensions[strings.ToLower(path.Ext(obj.Key))] && obj.Size > 0 {
				continue
			}
			objectsCh <- minio.ObjectInfo{Key: obj.Key}
		}
	}()

	failures := 0
	for rmErr := range h.client.RemoveObjects(ctx, h.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		h.logger.Warn("Failed to remove stale texture object",
			zap.String("object", rmErr.ObjectName), zap.Error(rmErr.Err))
		failures++
	}

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to list textures for cleaning: %w", err)
	default:
	}

	h.logger.Info("Texture clean finished", zap.Int("failures", failures))
	return nil
}

func contentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".bmp":
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}
