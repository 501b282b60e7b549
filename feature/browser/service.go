package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"scene-editor/core/assets"
	"scene-editor/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Service orchestrates the asset subsystem: ingestion, cleaning, snapshot
// persistence and the display filter, on top of the coordinator and
// registry from core/assets.
type Service struct {
	registry    *assets.Registry
	coordinator *assets.Coordinator
	client      storage.Client
	bucket      string
	sink        assets.ProgressSink
	confirmer   assets.Confirmer
	cfg         assets.Config
	logger      *zap.Logger

	// ingestMu makes concurrent ingestions refuse each other instead of
	// interleaving file routing.
	ingestMu sync.Mutex

	onInspectorRefresh func()
}

// NewService creates the asset service.
func NewService(registry *assets.Registry, coordinator *assets.Coordinator, client storage.Client, bucket string, sink assets.ProgressSink, confirmer assets.Confirmer, cfg assets.Config, logger *zap.Logger) *Service {
	if sink == nil {
		sink = assets.NopSink{}
	}
	if confirmer == nil {
		confirmer = assets.AutoConfirm{}
	}
	return &Service{
		registry:    registry,
		coordinator: coordinator,
		client:      client,
		bucket:      bucket,
		sink:        sink,
		confirmer:   confirmer,
		cfg:         cfg,
		logger:      logger,
	}
}

// SetInspectorRefresh registers the external inspector's re-render
// callback, invoked after a successful ingestion. The inspector is a
// frontend collaborator; the server wires a logging default and the hook
// exists so a push transport can replace it without touching the service.
func (s *Service) SetInspectorRefresh(fn func()) {
	s.onInspectorRefresh = fn
}

// Registry exposes the registry for read-only surfaces.
func (s *Service) Registry() *assets.Registry { return s.registry }

// Coordinator exposes the refresh coordinator.
func (s *Service) Coordinator() *assets.Coordinator { return s.coordinator }

// IngestFiles routes the files to every live drop-capable handler, then
// triggers a full refresh and the inspector callback. It returns ErrBusy
// while a refresh pass or another ingestion is running; files are never
// queued.
func (s *Service) IngestFiles(ctx context.Context, files []assets.File) error {
	if !s.ingestMu.TryLock() {
		return assets.ErrBusy
	}
	defer s.ingestMu.Unlock()

	if s.coordinator.InFlight() {
		return assets.ErrBusy
	}

	live := s.registry.Live()
	task := s.sink.Open(float64(len(live)), "Importing files")
	for i, d := range live {
		if target, ok := d.Instance().(assets.DropTarget); ok {
			s.dropOn(ctx, d, target, files)
		}
		// Progress ticks whether or not the handler consumed anything.
		task.Update(float64(i+1), d.Title)
	}
	task.Close(0)

	s.coordinator.RefreshAll(ctx, assets.RefreshOptions{})

	if s.onInspectorRefresh != nil {
		s.onInspectorRefresh()
	}
	return nil
}

// dropOn invokes a single handler's drop hook with failure isolation.
func (s *Service) dropOn(ctx context.Context, d *assets.Descriptor, target assets.DropTarget, files []assets.File) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("Asset handler panicked on dropped files",
				zap.String("handler", d.Title), zap.Any("panic", r))
		}
	}()
	if err := target.OnDropFiles(ctx, files); err != nil {
		s.logger.Warn("Asset handler rejected dropped files",
			zap.String("handler", d.Title), zap.Error(err))
	}
}

// CleanAll asks for confirmation, then invokes Clean on every live handler
// that defines one. A failing handler is logged and skipped; the operation
// reports completion regardless. Returns false when the prompt was
// declined.
func (s *Service) CleanAll(ctx context.Context) (bool, error) {
	ok, err := s.confirmer.Confirm(ctx, "Remove unused assets? This cannot be undone.")
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	live := s.registry.Live()
	task := s.sink.Open(float64(len(live)), "Cleaning assets")
	for i, d := range live {
		if cleaner, ok := d.Instance().(assets.Cleaner); ok {
			s.cleanOne(ctx, d, cleaner)
		}
		task.Update(float64(i+1), d.Title)
	}
	task.Close(0)
	return true, nil
}

func (s *Service) cleanOne(ctx context.Context, d *assets.Descriptor, cleaner assets.Cleaner) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("Asset handler panicked during clean",
				zap.String("handler", d.Title), zap.Any("panic", r))
		}
	}()
	if err := cleaner.Clean(ctx); err != nil {
		s.logger.Warn("Asset handler clean failed",
			zap.String("handler", d.Title), zap.Error(err))
	}
}

// SetFilter fans the display-only search filter out to every live
// filterable handler. It never triggers a refresh.
func (s *Service) SetFilter(text string) {
	for _, d := range s.registry.Live() {
		if f, ok := d.Instance().(assets.Filterable); ok {
			f.SetFilter(text)
		}
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ListItems returns every live handler's items keyed by title, optionally
// restricted to keys containing filter (a view-time restriction, handler
// state is untouched).
func (s *Service) ListItems(filter string) map[string][]assets.Item {
	out := make(map[string][]assets.Item)
	for _, d := range s.registry.Live() {
		items := d.Instance().Items()
		if filter != "" {
			kept := items[:0:0]
			for _, it := range items {
				if containsFold(it.Key, filter) {
					kept = append(kept, it)
				}
			}
			items = kept
		}
		out[d.Title] = items
	}
	return out
}

// SaveSnapshot captures the registry snapshot and persists it as the asset
// field of the project document in the bucket.
func (s *Service) SaveSnapshot(ctx context.Context) (map[string][]assets.ItemRecord, error) {
	snap := s.registry.Snapshot()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal asset snapshot: %w", err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.cfg.SnapshotObject,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return nil, fmt.Errorf("failed to upload asset snapshot: %w", err)
	}

	s.logger.Info("Asset snapshot saved",
		zap.String("object", s.cfg.SnapshotObject),
		zap.Int("handlers", len(snap)))
	return snap, nil
}

// LoadSnapshot fetches the persisted snapshot and restores it into the
// live handlers. Titles without a live handler are ignored.
func (s *Service) LoadSnapshot(ctx context.Context) error {
	reader, err := s.client.GetObject(ctx, s.bucket, s.cfg.SnapshotObject, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to fetch asset snapshot: %w", err)
	}
	defer reader.Close()

	var snap map[string][]assets.ItemRecord
	if err := json.NewDecoder(reader).Decode(&snap); err != nil {
		return fmt.Errorf("failed to decode asset snapshot: %w", err)
	}

	s.registry.Restore(snap)
	s.logger.Info("Asset snapshot restored", zap.Int("handlers", len(snap)))
	return nil
}
