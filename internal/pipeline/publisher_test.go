package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdg-fisk/content-pipeline/constants"
	"github.com/gdg-fisk/content-pipeline/internal/common"
	"github.com/gdg-fisk/content-pipeline/internal/drive"
	"github.com/gdg-fisk/content-pipeline/internal/extract"
	"github.com/gdg-fisk/content-pipeline/internal/media"
	"github.com/gdg-fisk/content-pipeline/internal/pages"
	"github.com/gdg-fisk/content-pipeline/internal/tagger"
)

const validProjectJSON = `{
	"id": "fisk-app",
	"projectHeroImg": "https://assets.example/hero.png",
	"projectTitle": "Fisk App",
	"readTimeInMins": 4,
	"overview": {"textContents": [{"content": "An app."}]},
	"problemStatement": "Students need a portal.",
	"features": {"textContents": [{"content": "Login."}]},
	"demo": {"title": "Demo", "imgUrl": "", "videoUrl": "/", "genres": ["WEB"]},
	"relevantLinks": ["https://example.com"]
}`

type fakeRepo struct {
	document  string
	exportErr error

	calls      []string
	mirrored   string
	mirroredID string
}

func (r *fakeRepo) ListFiles(context.Context, string) (map[string]string, error) {
	r.calls = append(r.calls, "list")
	return map[string]string{"Doc": "file-1"}, nil
}

func (r *fakeRepo) GetFileByName(_ context.Context, _, name string) (drive.File, error) {
	r.calls = append(r.calls, "get")
	return drive.File{ID: "file-1", Name: name}, nil
}

func (r *fakeRepo) ExportFile(context.Context, string, string) ([]byte, error) {
	r.calls = append(r.calls, "export")
	if r.exportErr != nil {
		return nil, r.exportErr
	}
	return []byte(r.document), nil
}

func (r *fakeRepo) DeleteFile(context.Context, string) error {
	r.calls = append(r.calls, "delete")
	return nil
}

func (r *fakeRepo) MirrorTag(_ context.Context, fileID, tag string) error {
	r.calls = append(r.calls, "mirror")
	r.mirroredID = fileID
	r.mirrored = tag
	return nil
}

type fakeUploader struct {
	uploads int
}

func (u *fakeUploader) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	u.uploads++
	return "https://storage.example/" + key, nil
}

type stubModel struct {
	response string
	err      error
	prompts  []string
}

func (m *stubModel) Generate(_ context.Context, parts ...extract.Part) (string, error) {
	for _, p := range parts {
		m.prompts = append(m.prompts, p.Text)
	}
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func newTestStore(t *testing.T) *pages.Store {
	t.Helper()
	backend, err := pages.OpenSQLite(filepath.Join(t.TempDir(), "pages.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	s, err := pages.NewStore(context.Background(), backend, pages.DefaultCatalog(), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestPublisher(t *testing.T, repo *fakeRepo, model *stubModel) (*Publisher, *pages.Store, *fakeUploader) {
	t.Helper()
	store := newTestStore(t)
	uploader := &fakeUploader{}
	targets := Targets(common.DriveConfig{ProjectsFolderID: "folder-p", CodelabsFolderID: "folder-c"})
	p := NewPublisher(
		repo,
		tagger.New(nil),
		media.NewExternalizer(uploader, nil),
		extract.NewExtractor(model, nil),
		store,
		targets,
		0,
		nil,
	)
	return p, store, uploader
}

func projectCount(t *testing.T, store *pages.Store) int {
	t.Helper()
	value, ok, err := store.GetField(context.Background(), constants.ProjectsPageDoc, constants.ProjectsField)
	if err != nil || !ok {
		t.Fatalf("GetField: ok=%v err=%v", ok, err)
	}
	return len(value.([]any))
}

func TestPublishUntaggedDocument(t *testing.T) {
	repo := &fakeRepo{document: "# Fisk App\n\nAn app for students.\n"}
	model := &stubModel{response: "```json\n" + validProjectJSON + "\n```"}
	p, store, _ := newTestPublisher(t, repo, model)

	res, err := p.Publish(context.Background(), Request{Kind: KindProject, FileName: "Fisk App"})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if res.Tag == "" {
		t.Error("result carries no tag")
	}
	if repo.mirrored != res.Tag || repo.mirroredID != "file-1" {
		t.Errorf("mirrored (%q, %q), want tag %q on file-1", repo.mirroredID, repo.mirrored, res.Tag)
	}
	if res.Doc != constants.ProjectsPageDoc || res.Field != constants.ProjectsField {
		t.Errorf("routed to (%s, %s)", res.Doc, res.Field)
	}
	if got := projectCount(t, store); got != 1 {
		t.Errorf("projects stored = %d, want 1", got)
	}

	// Stages ran in order: resolve, export, mirror.
	want := []string{"get", "export", "mirror"}
	if strings.Join(repo.calls, ",") != strings.Join(want, ",") {
		t.Errorf("repo calls = %v, want %v", repo.calls, want)
	}
}

func TestPublishTaggedDocumentSkipsMirror(t *testing.T) {
	repo := &fakeRepo{document: "file_id: \"11111111-2222-3333-4444-555555555555\"\n# Doc\n"}
	model := &stubModel{response: validProjectJSON}
	p, _, _ := newTestPublisher(t, repo, model)

	res, err := p.Publish(context.Background(), Request{Kind: KindProject, FileName: "Doc"})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if res.Tag != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("tag = %q, want the existing one", res.Tag)
	}
	if repo.mirrored != "" {
		t.Error("mirror called for an already tagged document")
	}
}

func TestPublishExternalizesInlineImages(t *testing.T) {
	repo := &fakeRepo{document: "# Doc\n\n[image1]: <data:image/png;base64,QQ==>\n"}
	model := &stubModel{response: validProjectJSON}
	p, _, uploader := newTestPublisher(t, repo, model)

	res, err := p.Publish(context.Background(), Request{Kind: KindProject, FileName: "Doc"})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if uploader.uploads != 1 || len(res.ImageRefs) != 1 {
		t.Fatalf("uploads = %d, refs = %d, want 1 and 1", uploader.uploads, len(res.ImageRefs))
	}

	// The model sees the public URL, never the base64 payload.
	joined := strings.Join(model.prompts, "\n")
	if strings.Contains(joined, "QQ==") {
		t.Error("prompt still contains the inline payload")
	}
	if !strings.Contains(joined, res.ImageRefs[0].PublicURL) {
		t.Error("prompt does not carry the public URL")
	}
}

func TestPublishExportFailureWritesNothing(t *testing.T) {
	repo := &fakeRepo{exportErr: common.Collaborator("document repository", errors.New("backend down"))}
	model := &stubModel{response: validProjectJSON}
	p, store, _ := newTestPublisher(t, repo, model)

	_, err := p.Publish(context.Background(), Request{Kind: KindProject, FileName: "Doc"})
	if !errors.Is(err, common.ErrCollaboratorUnavailable) {
		t.Fatalf("err = %v, want ErrCollaboratorUnavailable", err)
	}
	if got := projectCount(t, store); got != 0 {
		t.Errorf("projects stored = %d after failed run, want 0", got)
	}
	if len(model.prompts) != 0 {
		t.Error("model called after a failed fetch stage")
	}
}

func TestPublishMalformedExtractionWritesNothing(t *testing.T) {
	repo := &fakeRepo{document: "# Doc\n"}
	model := &stubModel{response: "not json"}
	p, store, _ := newTestPublisher(t, repo, model)

	_, err := p.Publish(context.Background(), Request{Kind: KindProject, FileName: "Doc"})
	if !errors.Is(err, common.ErrMalformedExtraction) {
		t.Fatalf("err = %v, want ErrMalformedExtraction", err)
	}
	if got := projectCount(t, store); got != 0 {
		t.Errorf("projects stored = %d after failed extraction, want 0", got)
	}
}

func TestPublishUnknownKind(t *testing.T) {
	repo := &fakeRepo{document: "# Doc\n"}
	p, _, _ := newTestPublisher(t, repo, &stubModel{response: validProjectJSON})

	_, err := p.Publish(context.Background(), Request{Kind: "events", FileName: "Doc"})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(repo.calls) != 0 {
		t.Errorf("repo called %v for unknown kind", repo.calls)
	}
}
