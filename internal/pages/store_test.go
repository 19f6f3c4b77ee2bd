package pages

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gdg-fisk/content-pipeline/constants"
	"github.com/gdg-fisk/content-pipeline/internal/common"
	"github.com/gdg-fisk/content-pipeline/internal/content"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	backend, err := OpenSQLite(filepath.Join(t.TempDir(), "pages.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	s, err := NewStore(context.Background(), backend, DefaultCatalog(), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleProject(id string) content.Project {
	return content.Project{
		ID:               id,
		ProjectHeroImg:   "https://storage.example/hero.png",
		ProjectTitle:     "Project " + id,
		ReadTimeInMins:   5,
		Overview:         content.Section{TextContents: []content.TextContent{{Content: "overview"}}},
		ProblemStatement: "problem",
		Features:         content.Section{TextContents: []content.TextContent{{Content: "feature"}}},
		Demo:             content.VideoContent{Title: "demo", VideoURL: "/", Genres: []string{"WEB"}},
		RelevantLinks:    []string{"https://example.com"},
	}
}

func TestBootstrapCreatesCatalogDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, entry := range DefaultCatalog() {
		fields, ok, err := s.GetDocument(ctx, entry.Name)
		if err != nil {
			t.Fatalf("GetDocument(%s): %v", entry.Name, err)
		}
		if !ok {
			t.Fatalf("document %s missing after bootstrap", entry.Name)
		}
		if _, ok := fields[constants.LastUpdatedField]; !ok {
			t.Errorf("document %s has no last-updated stamp", entry.Name)
		}
	}

	// Culture page gets its typed default video.
	video, ok, err := s.GetField(ctx, constants.CulturePageDoc, "culturePageVideo")
	if err != nil || !ok {
		t.Fatalf("GetField(culturePageVideo): ok=%v err=%v", ok, err)
	}
	vm, ok := video.(map[string]any)
	if !ok || vm["title"] != DefaultCultureVideo.Title {
		t.Errorf("culturePageVideo = %#v, want default video", video)
	}
}

func TestBootstrapNeverOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.AppendToListField(ctx, constants.ProjectsPageDoc, constants.ProjectsField, sampleProject("p1")); err != nil {
		t.Fatalf("append: %v", err)
	}

	// Re-running bootstrap against the same backend must keep the data.
	s.bootstrap(ctx)

	list, ok, err := s.GetField(ctx, constants.ProjectsPageDoc, constants.ProjectsField)
	if err != nil || !ok {
		t.Fatalf("GetField: ok=%v err=%v", ok, err)
	}
	if got := len(list.([]any)); got != 1 {
		t.Errorf("projects after re-bootstrap = %d, want 1", got)
	}
}

func TestUpsertIdempotence(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	page := content.ProjectsPage{Projects: []content.Project{sampleProject("p1")}}
	if err := s.Upsert(ctx, constants.ProjectsPageDoc, page); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	first, _, err := s.GetDocument(ctx, constants.ProjectsPageDoc)
	if err != nil {
		t.Fatalf("get after first upsert: %v", err)
	}

	if err := s.Upsert(ctx, constants.ProjectsPageDoc, page); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	second, _, err := s.GetDocument(ctx, constants.ProjectsPageDoc)
	if err != nil {
		t.Fatalf("get after second upsert: %v", err)
	}

	delete(first, constants.LastUpdatedField)
	delete(second, constants.LastUpdatedField)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("content fields differ between identical upserts:\n%v\n%v", first, second)
	}
}

func TestSetField(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SetField(ctx, constants.HomePageDoc, "homeVideoUrl", "/new-video"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	got, ok, err := s.GetField(ctx, constants.HomePageDoc, "homeVideoUrl")
	if err != nil || !ok {
		t.Fatalf("GetField: ok=%v err=%v", ok, err)
	}
	if got != "/new-video" {
		t.Errorf("homeVideoUrl = %v, want /new-video", got)
	}

	// Other fields of the document survive a single-field set.
	if _, ok, _ := s.GetField(ctx, constants.HomePageDoc, "testimonials"); !ok {
		t.Error("testimonials field lost after SetField")
	}
}

func TestAppendToListFieldOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, b, c := sampleProject("a"), sampleProject("b"), sampleProject("c")
	if err := s.AppendToListField(ctx, constants.ProjectsPageDoc, constants.ProjectsField, a, b); err != nil {
		t.Fatalf("append [a,b]: %v", err)
	}
	if err := s.AppendToListField(ctx, constants.ProjectsPageDoc, constants.ProjectsField, c); err != nil {
		t.Fatalf("append [c]: %v", err)
	}

	value, ok, err := s.GetField(ctx, constants.ProjectsPageDoc, constants.ProjectsField)
	if err != nil || !ok {
		t.Fatalf("GetField: ok=%v err=%v", ok, err)
	}
	list := value.([]any)
	if len(list) != 3 {
		t.Fatalf("list len = %d, want 3", len(list))
	}
	for i, wantID := range []string{"a", "b", "c"} {
		item := list[i].(map[string]any)
		if item["id"] != wantID {
			t.Errorf("list[%d].id = %v, want %q", i, item["id"], wantID)
		}
	}
}

func TestAppendToNonListField(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.AppendToListField(ctx, constants.HomePageDoc, "homeVideoUrl", "x")
	if !errors.Is(err, common.ErrTypeMismatch) {
		t.Fatalf("err = %v, want ErrTypeMismatch", err)
	}

	// Field unchanged after the failed append.
	got, _, err := s.GetField(ctx, constants.HomePageDoc, "homeVideoUrl")
	if err != nil {
		t.Fatalf("GetField: %v", err)
	}
	if got != DefaultHomeVideoURL {
		t.Errorf("homeVideoUrl = %v, want untouched default %q", got, DefaultHomeVideoURL)
	}
}

func TestAppendToMissingDocument(t *testing.T) {
	s := newTestStore(t)
	err := s.AppendToListField(context.Background(), "NoSuchPage", "items", "x")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetDocumentNotFoundIsExplicit(t *testing.T) {
	s := newTestStore(t)

	fields, ok, err := s.GetDocument(context.Background(), "NoSuchPage")
	if err != nil {
		t.Fatalf("GetDocument returned error for absence: %v", err)
	}
	if ok || fields != nil {
		t.Errorf("got (%v, %v), want explicit not-found", fields, ok)
	}

	_, ok, err = s.GetField(context.Background(), constants.HomePageDoc, "noSuchField")
	if err != nil {
		t.Fatalf("GetField returned error for absent field: %v", err)
	}
	if ok {
		t.Error("GetField reported ok for absent field")
	}
}
