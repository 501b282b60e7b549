package browser

import (
	"errors"
	"io"

	"scene-editor/core/assets"
	"scene-editor/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the asset browser.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the asset browser routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/assets")
	group.Get("/", h.HandleList)
	group.Get("/handlers", h.HandleHandlers)
	group.Post("/refresh", h.HandleRefresh)
	group.Post("/ingest", h.HandleIngest)
	group.Post("/clean", h.HandleClean)
	group.Get("/snapshot", h.HandleSnapshot)
	group.Post("/snapshot", h.HandleSaveSnapshot)
	group.Post("/restore", h.HandleRestore)
	group.Put("/filter", h.HandleFilter)
}

// HandleList lists every live handler's items.
// @Summary List Assets
// @Description Returns all asset items grouped by handler title. An optional filter restricts the view to keys containing the given text.
// @Tags assets
// @Accept json
// @Produce json
// @Param filter query string false "Restrict to keys containing this text"
// @Success 200 {object} map[string][]assets.Item "Items by handler title"
// @Router /assets [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	return c.JSON(h.service.ListItems(c.Query("filter")))
}

// HandleHandlers lists the registered asset categories.
// @Summary List Asset Handlers
// @Description Returns the registry descriptors: title, identifier, generated id, live state and item count.
// @Tags assets
// @Accept json
// @Produce json
// @Success 200 {array} map[string]interface{} "Descriptors"
// @Router /assets/handlers [get]
func (h *Handler) HandleHandlers(c *fiber.Ctx) error {
	var out []fiber.Map
	for _, d := range h.service.Registry().Descriptors() {
		entry := fiber.Map{
			"title":      d.Title,
			"identifier": d.Identifier,
			"id":         d.GeneratedID(),
			"live":       d.Instance() != nil,
		}
		if inst := d.Instance(); inst != nil {
			entry["items"] = len(inst.Items())
		}
		out = append(out, entry)
	}
	return c.JSON(out)
}

// HandleRefresh triggers a refresh pass.
// @Summary Refresh Assets
// @Description Refreshes every live handler sequentially. While a pass is running, further requests coalesce into a single follow-up pass and answer 202.
// @Tags assets
// @Accept json
// @Produce json
// @Param target query string false "Restrict the pass to one handler identifier"
// @Param key query string false "Object-scoped refresh key within the target handler"
// @Param force query boolean false "Clear item lists before refreshing"
// @Success 200 {object} map[string]string "Refreshed"
// @Success 202 {object} map[string]string "Coalesced into the running pass"
// @Router /assets/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	opts := assets.RefreshOptions{
		Target: c.Query("target"),
		Force:  c.Query("force") == "true",
	}
	if key := c.Query("key"); key != "" {
		opts.Scope = &assets.Scope{Key: key}
	}

	l.Info("Refresh requested",
		zap.String("target", opts.Target),
		zap.Bool("force", opts.Force))

	if !h.service.Coordinator().RefreshAll(c.Context(), opts) {
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "coalesced"})
	}
	return c.JSON(fiber.Map{"status": "refreshed"})
}

// HandleIngest accepts uploaded files and routes them to the handlers.
// @Summary Ingest Files
// @Description Routes the uploaded files to every live handler, then triggers a full refresh. Refused with 409 while a refresh or another ingestion is running.
// @Tags assets
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Files to ingest"
// @Success 200 {object} map[string]interface{} "Ingested"
// @Failure 400 {object} map[string]string "No files"
// @Failure 409 {object} map[string]string "Busy"
// @Router /assets/ingest [post]
func (h *Handler) HandleIngest(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "multipart form required"})
	}

	var files []assets.File
	for _, headers := range form.File {
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			files = append(files, assets.File{Name: fh.Filename, Data: data})
		}
	}
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no files supplied"})
	}

	if err := h.service.IngestFiles(c.Context(), files); err != nil {
		if errors.Is(err, assets.ErrBusy) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Ingestion failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Files ingested", zap.Int("count", len(files)))
	return c.JSON(fiber.Map{"status": "ingested", "files": len(files)})
}

// HandleClean prunes unused assets across all handlers.
// @Summary Clean Assets
// @Description Invokes Clean on every live handler that defines one. Per-handler failures are logged and skipped.
// @Tags assets
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Cleaned"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /assets/clean [post]
func (h *Handler) HandleClean(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	cleaned, err := h.service.CleanAll(c.Context())
	if err != nil {
		l.Error("Clean failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !cleaned {
		return c.JSON(fiber.Map{"status": "declined"})
	}
	return c.JSON(fiber.Map{"status": "cleaned"})
}

// HandleSnapshot returns the current snapshot without persisting it.
// @Summary Get Asset Snapshot
// @Description Returns the serializable capture of every live handler's item list, keyed by title.
// @Tags assets
// @Accept json
// @Produce json
// @Success 200 {object} map[string][]assets.ItemRecord "Snapshot"
// @Router /assets/snapshot [get]
func (h *Handler) HandleSnapshot(c *fiber.Ctx) error {
	return c.JSON(h.service.Registry().Snapshot())
}

// HandleSaveSnapshot persists the snapshot into the project document.
// @Summary Save Asset Snapshot
// @Description Captures the snapshot and stores it in the asset bucket as part of the project document.
// @Tags assets
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Saved"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /assets/snapshot [post]
func (h *Handler) HandleSaveSnapshot(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	snap, err := h.service.SaveSnapshot(c.Context())
	if err != nil {
		l.Error("Snapshot save failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "saved", "handlers": len(snap)})
}

// HandleRestore restores the persisted snapshot into the live handlers.
// @Summary Restore Asset Snapshot
// @Description Loads the persisted snapshot from the bucket and replaces matching handlers' item lists wholesale.
// @Tags assets
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Restored"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /assets/restore [post]
func (h *Handler) HandleRestore(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.LoadSnapshot(c.Context()); err != nil {
		l.Error("Snapshot restore failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "restored"})
}

// HandleFilter applies the display-only search filter.
// @Summary Set Display Filter
// @Description Fans the search text out to every live filterable handler. Display-only; never triggers a refresh.
// @Tags assets
// @Accept json
// @Produce json
// @Param body body object true "Filter request" SchemaExample({"text": "wood"})
// @Success 200 {object} map[string]string "Applied"
// @Router /assets/filter [put]
func (h *Handler) HandleFilter(c *fiber.Ctx) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	h.service.SetFilter(body.Text)
	return c.JSON(fiber.Map{"status": "applied"})
}
