package application

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"mapmyfirm/internal/domain"
)

// ProjectExport is the versioned document written by ExportProject
type ProjectExport struct {
	Version    string              `json:"version"`
	ExportedAt time.Time           `json:"exported_at"`
	Project    domain.ProjectState `json:"project"`
}

// ExportProject serializes a project as indented JSON
func ExportProject(state domain.ProjectState, now time.Time) ([]byte, error) {
	doc := ProjectExport{
		Version:    domain.CurrentVersion,
		ExportedAt: now.UTC(),
		Project:    state,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode project: %w", err)
	}
	return data, nil
}

// ImportResult carries an imported project and any non-fatal warning
type ImportResult struct {
	State   domain.ProjectState
	Warning string
}

// ImportProject parses and validates an export document. Structural problems
// are reported together in an *ImportError; a version mismatch is accepted
// with a warning.
func ImportProject(data []byte, log *slog.Logger) (ImportResult, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		return ImportResult{}, ErrInvalidJSON
	}

	var missing []string

	var version string
	if raw, ok := doc["version"]; !ok || json.Unmarshal(raw, &version) != nil || version == "" {
		missing = append(missing, "version")
	}

	var project map[string]json.RawMessage
	if raw, ok := doc["project"]; !ok || json.Unmarshal(raw, &project) != nil || project == nil {
		missing = append(missing, "project")
		return ImportResult{}, &ImportError{Missing: missing}
	}

	if !isObject(project["config"]) {
		missing = append(missing, "project.config")
	}
	for _, field := range []string{"nodes", "gbp_locations", "checklist_items"} {
		if !isArray(project[field]) {
			missing = append(missing, "project."+field+" (array)")
		}
	}
	if len(missing) > 0 {
		return ImportResult{}, &ImportError{Missing: missing}
	}

	var state domain.ProjectState
	if err := json.Unmarshal(doc["project"], &state); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	normalizeImported(&state)

	var result ImportResult
	result.State = state
	if version != domain.CurrentVersion {
		result.Warning = fmt.Sprintf("version mismatch: expected %s, got %s; importing anyway", domain.CurrentVersion, version)
		if log != nil {
			log.Warn("import version mismatch", "expected", domain.CurrentVersion, "got", version)
		}
	}
	return result, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// normalizeImported fills nil collections so callers never see null arrays
func normalizeImported(state *domain.ProjectState) {
	if state.Pages == nil {
		state.Pages = []domain.SiteNode{}
	}
	if state.Locations == nil {
		state.Locations = []domain.Location{}
	}
	if state.ChecklistItems == nil {
		state.ChecklistItems = []domain.ChecklistItem{}
	}
	if state.TreeExpandedIDs == nil {
		state.TreeExpandedIDs = []string{}
	}
	if state.Config.SelectedContentTypes == nil {
		state.Config.SelectedContentTypes = []string{}
	}
	for i := range state.ChecklistItems {
		if state.ChecklistItems[i].PracticeAreas == nil {
			state.ChecklistItems[i].PracticeAreas = domain.EmptyPracticeAreas()
		}
	}
}

// ExportSummary describes an export document without importing it
type ExportSummary struct {
	ProjectName   string `json:"project_name"`
	SiteURL       string `json:"site_url"`
	ScanDate      string `json:"scan_date"`
	ExportDate    string `json:"export_date"`
	PageCount     int    `json:"page_count"`
	LocationCount int    `json:"location_count"`
}

// ProjectSummary reads the headline facts of an export document.
// It returns nil when the document cannot be read.
func ProjectSummary(data []byte) *ExportSummary {
	var doc struct {
		ExportedAt string `json:"exported_at"`
		Project    *struct {
			Config *struct {
				ProjectName string `json:"project_name"`
				SiteURL     string `json:"wordpress_site_url"`
				ScanDate    string `json:"scan_date"`
			} `json:"config"`
			Nodes     []json.RawMessage `json:"nodes"`
			Locations []json.RawMessage `json:"gbp_locations"`
		} `json:"project"`
	}
	if err := json.Unmarshal(data, &doc); err != nil || doc.Project == nil || doc.Project.Config == nil {
		return nil
	}

	cfg := doc.Project.Config
	return &ExportSummary{
		ProjectName:   orDefault(cfg.ProjectName, "Untitled Project"),
		SiteURL:       orDefault(cfg.SiteURL, "Unknown"),
		ScanDate:      orDefault(cfg.ScanDate, "Unknown"),
		ExportDate:    orDefault(doc.ExportedAt, "Unknown"),
		PageCount:     len(doc.Project.Nodes),
		LocationCount: len(doc.Project.Locations),
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// ChecklistCSVHeader is the header row written by WriteChecklistCSV
func ChecklistCSVHeader() []string {
	header := []string{"Location", "Hub Exists"}
	for _, a := range domain.PracticeAreas {
		header = append(header, a.DisplayName())
	}
	return append(header, "Completed", "Notes")
}

// WriteChecklistCSV writes one row per item. Data cells are always quoted.
func WriteChecklistCSV(w io.Writer, items []domain.ChecklistItem) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(strings.Join(ChecklistCSVHeader(), ",")); err != nil {
		return err
	}

	for _, item := range items {
		row := []string{item.Location, yesNo(item.HubExists)}
		for _, a := range domain.PracticeAreas {
			row = append(row, yesNo(item.Area(a).Exists))
		}
		row = append(row, yesNo(item.Completed), item.Notes)

		quoted := make([]string, len(row))
		for i, cell := range row {
			quoted[i] = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
		}
		if _, err := bw.WriteString("\n" + strings.Join(quoted, ",")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// ExportFilename names an export file after the project or its site
func ExportFilename(cfg domain.ProjectConfig, now time.Time) string {
	base := "mapmyfirm"
	if name := slugify(cfg.ProjectName); name != "" {
		base = name
	} else if site := slugify(stripScheme(cfg.SiteURL)); site != "" {
		base = site
	}
	return fmt.Sprintf("%s_%s.json", base, now.Format("2006-01-02_15-04-05"))
}

// CSVFilename names a checklist CSV export
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("practice-area-checklist-%d.csv", now.UnixMilli())
}

func slugify(s string) string {
	return strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func stripScheme(u string) string {
	u = strings.TrimPrefix(u, "https://")
	return strings.TrimPrefix(u, "http://")
}
