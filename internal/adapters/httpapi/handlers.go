package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mapmyfirm/internal/application"
	"mapmyfirm/internal/application/commands"
	"mapmyfirm/internal/domain"
	"mapmyfirm/internal/ports"
)

// maxImportBytes bounds an uploaded export document
const maxImportBytes = 32 << 20

// Handlers serves the project API
type Handlers struct {
	store ports.ProjectStore
	log   *slog.Logger
	now   func() time.Time
}

// NewHandlers creates handlers over a project store
func NewHandlers(store ports.ProjectStore, log *slog.Logger) *Handlers {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handlers{store: store, log: log, now: time.Now}
}

// CreateProjectRequest is the body of POST /api/projects
type CreateProjectRequest struct {
	Name         string   `json:"project_name"`
	SiteURL      string   `json:"wordpress_site_url"`
	ContentTypes []string `json:"selected_content_types"`
	HubType      string   `json:"hub_cpt_name"`
}

// MatchRequest is the body of POST /api/projects/:id/match. Text is split
// into lines and appended to Locations.
type MatchRequest struct {
	Locations []string `json:"locations"`
	Text      string   `json:"text"`
	HubType   string   `json:"hub_cpt_name"`
}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handlers) ListProjects(c *gin.Context) {
	projects, err := h.store.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"count":    len(projects),
	})
}

func (h *Handlers) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", application.ErrInvalidJSON, err))
		return
	}

	cmd := commands.NewCreateProjectCommand(h.store, req.Name, req.SiteURL)
	cmd.ContentTypes = req.ContentTypes
	cmd.HubTypeName = req.HubType
	result, err := cmd.Execute(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": result.ID, "project": result.State})
}

func (h *Handlers) GetProject(c *gin.Context) {
	state, err := h.store.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SaveProject replaces the stored snapshot with the request body
func (h *Handlers) SaveProject(c *gin.Context) {
	var state domain.ProjectState
	if err := c.ShouldBindJSON(&state); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", application.ErrInvalidJSON, err))
		return
	}
	if state.IsEmpty() {
		h.fail(c, application.ErrEmptyProject)
		return
	}

	id := c.Param("id")
	if err := h.store.Save(c.Request.Context(), id, state); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "page_count": len(state.Pages)})
}

func (h *Handlers) DeleteProject(c *gin.Context) {
	msg, err := commands.NewDeleteProjectCommand(h.store, c.Param("id")).Execute(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// GetTree returns the page forest. The q, type and tag query parameters
// run a filter and report matching and auto-expanded IDs alongside.
func (h *Handlers) GetTree(c *gin.Context) {
	state, err := h.store.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := gin.H{"roots": toTreeJSON(domain.BuildTree(state.Pages))}

	filter := domain.TreeFilter{Types: c.QueryArray("type"), Tags: c.QueryArray("tag")}
	if term := c.Query("q"); term != "" || !filter.IsEmpty() {
		result := domain.FilterTree(state.Pages, term, filter)
		resp["matched_ids"] = nonNil(result.MatchedIDs)
		resp["expanded_ids"] = nonNil(result.ExpandedIDs)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) MatchLocations(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", application.ErrInvalidJSON, err))
		return
	}

	lines := append(req.Locations, domain.SplitLocationLines(req.Text)...)
	cmd := commands.NewMatchLocationsCommand(h.store, c.Param("id"), lines)
	cmd.HubTypeName = req.HubType
	cmd.Log = h.log
	result, err := cmd.Execute(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"locations": result.Locations,
		"matched":   result.Matched,
		"message":   result.Message,
	})
}

func (h *Handlers) GenerateChecklist(c *gin.Context) {
	items, err := commands.NewGenerateChecklistCommand(h.store, c.Param("id")).Execute(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *Handlers) GetStats(c *gin.Context) {
	stats, err := commands.NewChecklistStatsCommand(h.store, c.Param("id")).Execute(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handlers) ExportJSON(c *gin.Context) {
	state, err := h.store.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	now := h.now()
	data, err := application.ExportProject(*state, now)
	if err != nil {
		h.fail(c, err)
		return
	}
	attachment(c, application.ExportFilename(state.Config, now))
	c.Data(http.StatusOK, "application/json", data)
}

func (h *Handlers) ExportCSV(c *gin.Context) {
	state, err := h.store.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := application.WriteChecklistCSV(&buf, state.ChecklistItems); err != nil {
		h.fail(c, err)
		return
	}
	attachment(c, application.CSVFilename(h.now()))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ImportProject stores an export document. ?id= overwrites that project.
func (h *Handlers) ImportProject(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		h.fail(c, err)
		return
	}

	cmd := commands.NewImportProjectCommand(h.store, data)
	cmd.ID = c.Query("id")
	cmd.Log = h.log
	result, err := cmd.Execute(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := gin.H{"id": result.ID, "page_count": len(result.State.Pages)}
	if result.Warning != "" {
		resp["warning"] = result.Warning
	}
	c.JSON(http.StatusCreated, resp)
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
}

// fail maps an application error to a status code and JSON body
func (h *Handlers) fail(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}

	var importErr *application.ImportError
	if errors.As(err, &importErr) {
		body["missing"] = importErr.Missing
	}
	var valErr *application.ValidationError
	if errors.As(err, &valErr) {
		body["field"] = valErr.Field
	}

	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.AbortWithStatusJSON(status, body)
}

func statusFor(err error) int {
	var valErr *application.ValidationError
	var importErr *application.ImportError
	switch {
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &valErr),
		errors.As(err, &importErr),
		errors.Is(err, application.ErrInvalidJSON),
		errors.Is(err, application.ErrInvalidID),
		errors.Is(err, application.ErrUnknownArea):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrEmptyProject):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
