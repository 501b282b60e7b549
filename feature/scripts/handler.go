package scripts

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strconv"
	"strings"
	"sync"

	"scene-editor/core/assets"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Identifier is the registry key for the script-graph category.
const Identifier = "scripts"

// Title is the user-facing name of the script-graph category.
const Title = "Scripts"

var supportedExtensions = map[string]bool{
	".graph": true,
	".json":  true,
}

// Handler manages visual-script graph assets stored in the project
// database. Item payloads are the base64-encoded graph sources, so a
// snapshot restore can rebuild the behavior editor's state without the
// database.
type Handler struct {
	assets.Updates

	db     *gorm.DB
	logger *zap.Logger

	mu     sync.RWMutex
	items  []assets.Item
	filter string
}

// New creates the script handler.
func New(db *gorm.DB, logger *zap.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// Migrate creates or updates the script graph table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Graph{}); err != nil {
		return fmt.Errorf("failed to migrate script graphs: %w", err)
	}
	return nil
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

// Refresh rebuilds the item list from the database. With a scope, only the
// named graph is reloaded.
func (h *Handler) Refresh(ctx context.Context, scope *assets.Scope) error {
	if scope != nil && scope.Key != "" {
		return h.refreshOne(ctx, scope.Key)
	}

	var graphs []Graph
	if err := h.db.WithContext(ctx).Order("name").Find(&graphs).Error; err != nil {
		return fmt.Errorf("failed to load script graphs: %w", err)
	}

	items := make([]assets.Item, 0, len(graphs))
	for i, g := range graphs {
		items = append(items, itemFor(g))
		h.Publish(i+1, len(graphs))
	}

	h.ReplaceItems(items)
	return nil
}

func (h *Handler) refreshOne(ctx context.Context, name string) error {
	var g Graph
	err := h.db.WithContext(ctx).Where("name = ?", name).First(&g).Error

	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.items {
		if h.items[i].Key == name {
			if err != nil {
				h.items = append(h.items[:i], h.items[i+1:]...)
			} else {
				h.items[i] = itemFor(g)
			}
			return nil
		}
	}
	if err == nil {
		h.items = append(h.items, itemFor(g))
	}
	return nil
}

func itemFor(g Graph) assets.Item {
	return assets.Item{
		ID:     strconv.FormatUint(uint64(g.ID), 10),
		Key:    g.Name,
		Base64: base64.StdEncoding.EncodeToString([]byte(g.Source)),
		Style:  map[string]string{"icon": "graph"},
	}
}

// OnDropFiles upserts a graph row per dropped graph file, keyed by the
// file's base name.
func (h *Handler) OnDropFiles(ctx context.Context, files []assets.File) error {
	for _, f := range files {
		ext := strings.ToLower(path.Ext(f.Name))
		if !supportedExtensions[ext] {
			continue
		}
		name := strings.TrimSuffix(path.Base(f.Name), path.Ext(f.Name))
		graph := Graph{Name: name, Source: string(f.Data)}
		err := h.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"source", "updated_at"}),
		}).Create(&graph).Error
		if err != nil {
			return fmt.Errorf("failed to store script graph %s: %w", name, err)
		}
		h.logger.Info("Script graph stored", zap.String("name", name))
	}
	return nil
}

// Clean deletes graphs whose source is empty; they cannot be loaded by the
// behavior editor.
func (h *Handler) Clean(ctx context.Context) error {
	result := h.db.WithContext(ctx).Where("source = ?", "").Delete(&Graph{})
	if result.Error != nil {
		return fmt.Errorf("failed to prune empty script graphs: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		h.logger.Info("Pruned empty script graphs", zap.Int64("count", result.RowsAffected))
	}
	return nil
}
