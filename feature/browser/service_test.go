package browser_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"scene-editor/core/assets"
	"scene-editor/core/storage/mocks"
	"scene-editor/feature/browser"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubHandler is a minimal in-memory handler for service tests.
type stubHandler struct {
	assets.Updates

	mu        sync.Mutex
	items     []assets.Item
	refreshes int
	refreshFn func(ctx context.Context) error
}

func (h *stubHandler) Items() []assets.Item {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]assets.Item, len(h.items))
	copy(out, h.items)
	return out
}

func (h *stubHandler) ReplaceItems(items []assets.Item) {
	h.mu.Lock()
	h.items = items
	h.mu.Unlock()
}

func (h *stubHandler) Refresh(ctx context.Context, scope *assets.Scope) error {
	h.mu.Lock()
	h.refreshes++
	fn := h.refreshFn
	h.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return nil
}

func (h *stubHandler) refreshCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.refreshes
}

// dropHandler additionally accepts dropped files.
type dropHandler struct {
	stubHandler

	dropped [][]assets.File
	dropErr error
}

func (h *dropHandler) OnDropFiles(ctx context.Context, files []assets.File) error {
	h.mu.Lock()
	h.dropped = append(h.dropped, files)
	h.mu.Unlock()
	return h.dropErr
}

// cleanHandler additionally prunes.
type cleanHandler struct {
	stubHandler

	cleans   int
	cleanErr error
}

func (h *cleanHandler) Clean(ctx context.Context) error {
	h.mu.Lock()
	h.cleans++
	h.mu.Unlock()
	return h.cleanErr
}

// filterHandler additionally records display filters.
type filterHandler struct {
	stubHandler

	filter string
}

func (h *filterHandler) SetFilter(text string) {
	h.mu.Lock()
	h.filter = text
	h.mu.Unlock()
}

type declineConfirmer struct{}

func (declineConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	return false, nil
}

func newTestService(t *testing.T, client *mocks.Client, handlers map[string]assets.Handler) (*browser.Service, *assets.Registry) {
	t.Helper()
	registry := assets.NewRegistry()
	for _, id := range []string{"textures", "sounds", "scripts"} {
		h, ok := handlers[id]
		if !ok {
			continue
		}
		registry.Register(assets.Descriptor{Title: id, Identifier: id})
		registry.Mount(id, h)
	}
	coordinator := assets.NewCoordinator(registry, nil, zap.NewNop())
	cfg := assets.Config{SnapshotObject: "project/assets.json"}
	svc := browser.NewService(registry, coordinator, client, "scene", nil, nil, cfg, zap.NewNop())
	return svc, registry
}

func TestIngestFiles_RoutesToDropTargetsAndRefreshes(t *testing.T) {
	target := &dropHandler{}
	plain := &stubHandler{}
	svc, _ := newTestService(t, &mocks.Client{}, map[string]assets.Handler{
		"textures": target,
		"sounds":   plain,
	})

	notified := false
	svc.SetInspectorRefresh(func() { notified = true })

	files := []assets.File{{Name: "wood.png", Data: []byte{1}}}
	require.NoError(t, svc.IngestFiles(context.Background(), files))

	require.Len(t, target.dropped, 1)
	assert.Equal(t, files, target.dropped[0])
	assert.Equal(t, 1, target.refreshCount(), "ingestion triggers a full refresh")
	assert.Equal(t, 1, plain.refreshCount())
	assert.True(t, notified)
}

func TestIngestFiles_DropErrorIsIsolated(t *testing.T) {
	failing := &dropHandler{dropErr: errors.New("disk full")}
	second := &dropHandler{}
	svc, _ := newTestService(t, &mocks.Client{}, map[string]assets.Handler{
		"textures": failing,
		"sounds":   second,
	})

	require.NoError(t, svc.IngestFiles(context.Background(), []assets.File{{Name: "a.png"}}))
	assert.Len(t, second.dropped, 1)
}

func TestIngestFiles_BusyWhileRefreshRunning(t *testing.T) {
	started := make(chan struct{})
	proceed := make(chan struct{})
	blocking := &dropHandler{}
	blocking.refreshFn = func(ctx context.Context) error {
		close(started)
		<-proceed
		return nil
	}
	svc, _ := newTestService(t, &mocks.Client{}, map[string]assets.Handler{
		"textures": blocking,
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Coordinator().RefreshAll(context.Background(), assets.RefreshOptions{})
	}()
	<-started

	err := svc.IngestFiles(context.Background(), []assets.File{{Name: "late.png"}})
	assert.ErrorIs(t, err, assets.ErrBusy)
	assert.Empty(t, blocking.dropped, "busy ingestion must not route files")

	close(proceed)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("refresh did not finish")
	}
}

func TestCleanAll_SkipsHandlersWithoutClean(t *testing.T) {
	cleaner := &cleanHandler{}
	plain := &stubHandler{}
	svc, _ := newTestService(t, &mocks.Client{}, map[string]assets.Handler{
		"textures": cleaner,
		"sounds":   plain,
	})

	ran, err := svc.CleanAll(context.Background())
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 1, cleaner.cleans)
}

func TestCleanAll_DeclinedConfirmationRunsNothing(t *testing.T) {
	cleaner := &cleanHandler{}
	registry := assets.NewRegistry()
	registry.Register(assets.Descriptor{Title: "textures", Identifier: "textures"})
	registry.Mount("textures", cleaner)
	coordinator := assets.NewCoordinator(registry, nil, zap.NewNop())
	svc := browser.NewService(registry, coordinator, &mocks.Client{}, "scene",
		nil, declineConfirmer{}, assets.Config{}, zap.NewNop())

	ran, err := svc.CleanAll(context.Background())
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Equal(t, 0, cleaner.cleans)
}

func TestCleanAll_FailingCleanerDoesNotAbort(t *testing.T) {
	failing := &cleanHandler{cleanErr: errors.New("bucket gone")}
	second := &cleanHandler{}
	svc, _ := newTestService(t, &mocks.Client{}, map[string]assets.Handler{
		"textures": failing,
		"sounds":   second,
	})

	ran, err := svc.CleanAll(context.Background())
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 1, second.cleans)
}

func TestSetFilter_ReachesOnlyFilterableHandlers(t *testing.T) {
	filterable := &filterHandler{}
	plain := &stubHandler{}
	svc, _ := newTestService(t, &mocks.Client{}, map[string]assets.Handler{
		"textures": filterable,
		"sounds":   plain,
	})

	svc.SetFilter("wood")
	assert.Equal(t, "wood", filterable.filter)
	assert.Equal(t, 0, filterable.refreshCount(), "setting a filter never refreshes")
}

func TestListItems_FiltersByKeyCaseInsensitively(t *testing.T) {
	textures := &stubHandler{items: []assets.Item{
		{ID: "1", Key: "Wood.png"},
		{ID: "2", Key: "stone.png"},
	}}
	svc, _ := newTestService(t, &mocks.Client{}, map[string]assets.Handler{
		"textures": textures,
	})

	all := svc.ListItems("")
	require.Len(t, all["textures"], 2)

	filtered := svc.ListItems("WOOD")
	require.Len(t, filtered["textures"], 1)
	assert.Equal(t, "Wood.png", filtered["textures"][0].Key)

	// View-time only, handler state untouched.
	assert.Len(t, textures.Items(), 2)
}

func TestSaveSnapshot_UploadsProjectDocument(t *testing.T) {
	client := &mocks.Client{}
	textures := &stubHandler{items: []assets.Item{{ID: "1", Key: "wood.png"}}}
	svc, _ := newTestService(t, client, map[string]assets.Handler{
		"textures": textures,
	})

	client.On("PutObject", mock.Anything, "scene", "project/assets.json",
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	snap, err := svc.SaveSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap["textures"], 1)
	client.AssertExpectations(t)
}

func TestSaveSnapshot_UploadFailure(t *testing.T) {
	client := &mocks.Client{}
	svc, _ := newTestService(t, client, map[string]assets.Handler{
		"textures": &stubHandler{},
	})

	client.On("PutObject", mock.Anything, "scene", "project/assets.json",
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("connection refused"))

	_, err := svc.SaveSnapshot(context.Background())
	assert.ErrorContains(t, err, "failed to upload asset snapshot")
}

func TestLoadSnapshot_RestoresLiveHandlers(t *testing.T) {
	client := &mocks.Client{}
	textures := &stubHandler{}
	svc, _ := newTestService(t, client, map[string]assets.Handler{
		"textures": textures,
	})

	snap := map[string][]assets.ItemRecord{
		"textures": {{ID: "1", Key: "wood.png", Base64: "aGk="}},
		"unknown":  {{ID: "9", Key: "ghost.png"}},
	}
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	client.On("GetObject", mock.Anything, "scene", "project/assets.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(data)), nil)

	require.NoError(t, svc.LoadSnapshot(context.Background()))
	require.Len(t, textures.Items(), 1)
	assert.Equal(t, "wood.png", textures.Items()[0].Key)
}

func TestLoadSnapshot_FetchFailure(t *testing.T) {
	client := &mocks.Client{}
	svc, _ := newTestService(t, client, map[string]assets.Handler{
		"textures": &stubHandler{},
	})

	client.On("GetObject", mock.Anything, "scene", "project/assets.json", mock.Anything).
		Return(nil, errors.New("no such key"))

	err := svc.LoadSnapshot(context.Background())
	assert.ErrorContains(t, err, "failed to fetch asset snapshot")
}
