package application

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"mapmyfirm/internal/domain"
)

var exportTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func strPtr(s string) *string { return &s }

func sampleProject() domain.ProjectState {
	areas := domain.EmptyPracticeAreas()
	areas[domain.CarAccident] = domain.PracticeAreaPage{Exists: true, PageID: "2"}

	state := domain.NewProjectState()
	state.Config.ProjectName = "Acme Law"
	state.Config.SiteURL = "https://acme.test"
	state.Pages = []domain.SiteNode{
		{ID: "1", Title: "Los Angeles Office", Slug: "los-angeles", Type: "location", Status: domain.StatusPublish, ManualTags: []string{}},
		{ID: "2", Title: "Car Accident Lawyer", Slug: "car-accident", ParentID: strPtr("1"), Type: "page", Status: domain.StatusPublish, ManualTags: []string{}},
	}
	state.Locations = []domain.Location{{ID: "loc-1", LocationString: "Los Angeles, CA", MatchedHubID: strPtr("1"), ConfidenceScore: 100}}
	state.ChecklistItems = []domain.ChecklistItem{{
		ID: "item-1", Location: "Los Angeles, CA", HubID: strPtr("1"), HubExists: true,
		PracticeAreas: areas, Notes: `call "Bob"`, LastUpdated: exportTime,
	}}
	return state
}

func TestExportImport_RoundTrip(t *testing.T) {
	state := sampleProject()

	data, err := ExportProject(state, exportTime)
	if err != nil {
		t.Fatalf("ExportProject: %v", err)
	}
	if !bytes.Contains(data, []byte(`"version": "1.0.0"`)) {
		t.Errorf("expected indented version field, got %s", data)
	}

	result, err := ImportProject(data, nil)
	if err != nil {
		t.Fatalf("ImportProject: %v", err)
	}
	if result.Warning != "" {
		t.Errorf("unexpected warning %q", result.Warning)
	}
	if !reflect.DeepEqual(result.State, state) {
		t.Errorf("round trip changed state:\n got %+v\nwant %+v", result.State, state)
	}
}

func TestImportProject_InvalidJSON(t *testing.T) {
	for _, input := range []string{"{not json", "", "null", "42"} {
		if _, err := ImportProject([]byte(input), nil); !errors.Is(err, ErrInvalidJSON) {
			t.Errorf("ImportProject(%q) error = %v, want ErrInvalidJSON", input, err)
		}
	}
}

func TestImportProject_Structure(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantMissing []string
	}{
		{
			name:        "no project",
			input:       `{"version":"1.0.0"}`,
			wantMissing: []string{"project"},
		},
		{
			name:        "no version and no project",
			input:       `{}`,
			wantMissing: []string{"version", "project"},
		},
		{
			name:        "every project field",
			input:       `{"version":"1.0.0","project":{"nodes":{}}}`,
			wantMissing: []string{"project.config", "project.nodes (array)", "project.gbp_locations (array)", "project.checklist_items (array)"},
		},
		{
			name:        "null array",
			input:       `{"version":"1.0.0","project":{"config":{},"nodes":[],"gbp_locations":null,"checklist_items":[]}}`,
			wantMissing: []string{"project.gbp_locations (array)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportProject([]byte(tt.input), nil)

			var importErr *ImportError
			if !errors.As(err, &importErr) {
				t.Fatalf("expected ImportError, got %v", err)
			}
			if !reflect.DeepEqual(importErr.Missing, tt.wantMissing) {
				t.Errorf("missing = %v, want %v", importErr.Missing, tt.wantMissing)
			}
		})
	}
}

func TestImportProject_VersionMismatch(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))

	input := `{"version":"0.9.0","project":{"config":{"project_name":"Old"},"nodes":[],"gbp_locations":[],"checklist_items":[{"id":"x","location":"Reno, NV"}]}}`
	result, err := ImportProject([]byte(input), log)
	if err != nil {
		t.Fatalf("expected mismatch to import, got %v", err)
	}
	if !strings.Contains(result.Warning, "0.9.0") {
		t.Errorf("expected warning naming the version, got %q", result.Warning)
	}
	if !strings.Contains(logs.String(), "version mismatch") {
		t.Errorf("expected warning logged, got %q", logs.String())
	}
	if result.State.Config.ProjectName != "Old" {
		t.Errorf("unexpected state %+v", result.State.Config)
	}
	if len(result.State.ChecklistItems[0].PracticeAreas) != len(domain.PracticeAreas) {
		t.Error("expected missing practice areas filled in")
	}
}

func TestProjectSummary(t *testing.T) {
	data, err := ExportProject(sampleProject(), exportTime)
	if err != nil {
		t.Fatal(err)
	}

	got := ProjectSummary(data)
	if got == nil {
		t.Fatal("expected summary")
	}
	want := ExportSummary{
		ProjectName:   "Acme Law",
		SiteURL:       "https://acme.test",
		ScanDate:      "Unknown",
		ExportDate:    "2026-03-14T09:26:53Z",
		PageCount:     2,
		LocationCount: 1,
	}
	if *got != want {
		t.Errorf("ProjectSummary = %+v, want %+v", *got, want)
	}

	if s := ProjectSummary([]byte(`{"project":{"config":{}}}`)); s == nil || s.ProjectName != "Untitled Project" {
		t.Errorf("expected default name, got %+v", s)
	}
	if s := ProjectSummary([]byte(`{"version":"1.0.0"}`)); s != nil {
		t.Errorf("expected nil without project, got %+v", s)
	}
	if s := ProjectSummary([]byte(`garbage`)); s != nil {
		t.Errorf("expected nil for garbage, got %+v", s)
	}
}

func TestWriteChecklistCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteChecklistCSV(&buf, sampleProject().ChecklistItems); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(buf.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}

	wantHeader := "Location,Hub Exists,Personal Injury,Car Accident,Motorcycle Accident,Pedestrian Accident," +
		"Slip and Fall,Truck Accident,Rideshare Accident,Wrongful Death,Completed,Notes"
	if lines[0] != wantHeader {
		t.Errorf("header = %q", lines[0])
	}

	wantRow := `"Los Angeles, CA","Yes","No","Yes","No","No","No","No","No","No","No","call ""Bob"""`
	if lines[1] != wantRow {
		t.Errorf("row = %q\nwant %q", lines[1], wantRow)
	}
	if n := len(ChecklistCSVHeader()); n != 12 {
		t.Errorf("expected 12 columns, got %d", n)
	}
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.ProjectConfig
		want string
	}{
		{"project name", domain.ProjectConfig{ProjectName: "Acme Law, LLP"}, "acme-law-llp_2026-03-14_09-26-53.json"},
		{"site url", domain.ProjectConfig{SiteURL: "https://www.Example.com/"}, "www-example-com_2026-03-14_09-26-53.json"},
		{"symbols only", domain.ProjectConfig{ProjectName: "!!!"}, "mapmyfirm_2026-03-14_09-26-53.json"},
		{"nothing", domain.ProjectConfig{}, "mapmyfirm_2026-03-14_09-26-53.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExportFilename(tt.cfg, exportTime); got != tt.want {
				t.Errorf("ExportFilename() = %q, want %q", got, tt.want)
			}
		})
	}
}
