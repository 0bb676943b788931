package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/exercise-importer/internal/classifier"
	"alcyxob/exercise-importer/internal/domain"
	"alcyxob/exercise-importer/internal/media"
	"alcyxob/exercise-importer/internal/repository"
	"alcyxob/exercise-importer/internal/source"
)

// --- fakes ---

type fakeSource struct {
	folders   map[string][]source.Entry
	files     map[string][]byte
	listErr   map[string]error
	downloads []string
}

func (f *fakeSource) ListFolder(ctx context.Context, folderID string) ([]source.Entry, error) {
	if err := f.listErr[folderID]; err != nil {
		return nil, err
	}
	return f.folders[folderID], nil
}

func (f *fakeSource) Download(ctx context.Context, fileID string) ([]byte, error) {
	f.downloads = append(f.downloads, fileID)
	data, ok := f.files[fileID]
	if !ok {
		return nil, errors.New("file not found")
	}
	return data, nil
}

type fakeStorage struct {
	objects   map[string][]byte
	types     map[string]string
	deleted   []string
	uploadErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeStorage) Upload(ctx context.Context, key, contentType string, data []byte) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.objects[key] = data
	f.types[key] = contentType
	return nil
}

func (f *fakeStorage) ObjectURL(ctx context.Context, key string) (string, error) {
	return "https://cdn.example/exercicios-padrao/" + key, nil
}

func (f *fakeStorage) DeleteObject(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.objects, key)
	return nil
}

type fakeRepo struct {
	rows      map[string]domain.Exercise
	insertErr error
	lookups   []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[string]domain.Exercise{}}
}

func (f *fakeRepo) Create(ctx context.Context, ex *domain.Exercise) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	if _, dup := f.rows[ex.Slug]; dup {
		return "", repository.ErrDuplicateSlug
	}
	f.rows[ex.Slug] = *ex
	return ex.Slug, nil
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (*domain.Exercise, error) {
	f.lookups = append(f.lookups, slug)
	ex, ok := f.rows[slug]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &ex, nil
}

// --- helpers ---

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: uint8(x), B: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func folder(id, name string) source.Entry {
	return source.Entry{ID: id, Name: name, MimeType: source.FolderMimeType}
}

func newTestPipeline(src *fakeSource, store *fakeStorage, repo *fakeRepo, opts Options) *Pipeline {
	opts.RootFolderID = "root"
	p := New(opts, src, store, repo, media.NewConverter(0, 0))
	p.runID = func() string { return "run-test" }
	p.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	return p
}

// --- tests ---

func TestRun_OverrideScenario(t *testing.T) {
	src := &fakeSource{
		folders: map[string][]source.Entry{
			"root": {folder("f1", "Triceps")},
			"f1":   {{ID: "img1", Name: "tricep dip.png", MimeType: "image/png"}},
		},
		files: map[string][]byte{"img1": pngBytes(t, 32, 32)},
	}
	store, repo := newFakeStorage(), newFakeRepo()

	report, err := newTestPipeline(src, store, repo, Options{}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.Success)
	assert.Equal(t, 0, report.Summary.Errors)
	assert.Equal(t, 1, report.Summary.Total)
	require.Len(t, report.Processed, 1)

	ex := report.Processed[0]
	assert.Equal(t, "Mergulho para Tríceps", ex.Name)
	assert.Equal(t, classifier.Bodyweight, ex.Equipment)
	assert.Equal(t, classifier.Medium, ex.Difficulty)
	assert.Equal(t, "mergulho-triceps", ex.Slug)
	assert.Equal(t, "Triceps", ex.MuscleGroup)
	assert.Equal(t, "https://cdn.example/exercicios-padrao/triceps/mergulho-triceps.webp", ex.MediaURL)

	require.Contains(t, store.objects, "triceps/mergulho-triceps.webp")
	assert.Equal(t, media.ContentType, store.types["triceps/mergulho-triceps.webp"])
	assert.Equal(t, ex, repo.rows["mergulho-triceps"])

	assert.Equal(t, map[string]int{classifier.Bodyweight: 1}, report.Summary.EquipmentStats)
	assert.Equal(t, map[string]int{classifier.Medium: 1}, report.Summary.DifficultyStats)
	assert.Equal(t, "run-test", report.RunID)
	assert.False(t, report.FinishedAt.IsZero())
}

func TestRun_DetectedScenario(t *testing.T) {
	src := &fakeSource{
		folders: map[string][]source.Entry{
			"root": {folder("f1", "Peito")},
			"f1":   {{ID: "img1", Name: "Incline-Dumbbell-Press.jpg", MimeType: "image/jpeg"}},
		},
		files: map[string][]byte{"img1": jpegBytes(t, 1600, 1200)},
	}
	store, repo := newFakeStorage(), newFakeRepo()

	report, err := newTestPipeline(src, store, repo, Options{}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Processed, 1)

	ex := report.Processed[0]
	assert.Equal(t, classifier.Dumbbells, ex.Equipment)
	assert.Equal(t, classifier.Low, ex.Difficulty)
	assert.Equal(t, "incline-dumbbell-press", ex.Slug)
	assert.Equal(t, "Incline-Dumbbell-Press", ex.Name)
	assert.Equal(t, "Exercício para desenvolvimento do peitoral maior e menor", ex.Description)
	assert.Contains(t, store.objects, "peito/incline-dumbbell-press.webp")
}

func TestRun_CorruptImageIsRecordedAsError(t *testing.T) {
	good := pngBytes(t, 16, 16)
	src := &fakeSource{
		folders: map[string][]source.Entry{
			"root": {folder("f1", "Costas")},
			"f1": {
				{ID: "bad", Name: "Bent-Over-Row.png", MimeType: "image/png"},
				{ID: "ok", Name: "Seated-Cable-Row.png", MimeType: "image/png"},
			},
		},
		files: map[string][]byte{"bad": good[:20], "ok": good},
	}
	store, repo := newFakeStorage(), newFakeRepo()

	report, err := newTestPipeline(src, store, repo, Options{}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Costas/Bent-Over-Row.png"}, report.Errors)
	assert.Equal(t, 1, report.Summary.Errors)
	assert.Equal(t, 1, report.Summary.Success)
	assert.Equal(t, 2, report.Summary.Total)
	require.Len(t, report.Processed, 1)
	assert.Equal(t, "seated-cable-row", report.Processed[0].Slug)
	assert.NotContains(t, store.objects, "costas/bent-over-row.webp")
}

func TestRun_SkipsNonFoldersAndNonImages(t *testing.T) {
	src := &fakeSource{
		folders: map[string][]source.Entry{
			"root": {
				{ID: "readme", Name: "README.txt", MimeType: "text/plain"},
				folder("f1", "Ombros"),
			},
			"f1": {
				{ID: "v", Name: "demo.mp4", MimeType: "video/mp4"},
				{ID: "n", Name: "notes.txt", MimeType: "text/plain"},
				folder("nested", "Extra"),
				{ID: "w", Name: "Lateral-Raise.webp", MimeType: "application/octet-stream"},
			},
		},
		files: map[string][]byte{"w": []byte("RIFF....WEBPVP8 ")},
	}
	store, repo := newFakeStorage(), newFakeRepo()

	report, err := newTestPipeline(src, store, repo, Options{}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"w"}, src.downloads)
	assert.Equal(t, 1, report.Summary.Total)
	assert.Equal(t, []byte("RIFF....WEBPVP8 "), store.objects["ombros/lateral-raise.webp"], "webp input is uploaded unchanged")
}

func TestRun_UploadFailure(t *testing.T) {
	src := &fakeSource{
		folders: map[string][]source.Entry{
			"root": {folder("f1", "Bíceps")},
			"f1":   {{ID: "img", Name: "Barbell-Curl.png", MimeType: "image/png"}},
		},
		files: map[string][]byte{"img": pngBytes(t, 8, 8)},
	}
	store, repo := newFakeStorage(), newFakeRepo()
	store.uploadErr = errors.New("bucket not found")

	report, err := newTestPipeline(src, store, repo, Options{}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Bíceps/Barbell-Curl.png"}, report.Errors)
	assert.Empty(t, report.Processed)
	assert.Empty(t, repo.rows)
}

func TestRun_DownloadFailureIsPerItem(t *testing.T) {
	src := &fakeSource{
		folders: map[string][]source.Entry{
			"root": {folder("f1", "Pernas")},
			"f1": {
				{ID: "gone", Name: "Lunge.png", MimeType: "image/png"},
				{ID: "ok", Name: "Squat.png", MimeType: "image/png"},
			},
		},
		files: map[string][]byte{"ok": pngBytes(t, 8, 8)},
	}
	store, repo := newFakeStorage(), newFakeRepo()

	report, err := newTestPipeline(src, store, repo, Options{}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Pernas/Lunge.png"}, report.Errors)
	assert.Equal(t, 1, report.Summary.Success)
}

func TestRun_InsertFailureLeavesOrphanByDefault(t *testing.T) {
	src := &fakeSource{
		folders: map[string][]source.Entry{
			"root": {folder("f1", "Costas")},
			"f1":   {{ID: "img", Name: "pull up.png", MimeType: "image/png"}},
		},
		files: map[string][]byte{"img": pngBytes(t, 8, 8)},
	}
	store, repo := newFakeStorage(), newFakeRepo()
	repo.insertErr = repository.ErrDuplicateSlug

	report, err := newTestPipeline(src, store, repo, Options{}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Costas/pull up.png"}, report.Errors)
	assert.Contains(t, store.objects, "costas/barra-fixa.webp")
	assert.Empty(t, store.deleted)
}

func TestRun_InsertFailureDeletesOrphanWhenEnabled(t *testing.T) {
	src := &fakeSource{
		folders: map[string][]source.Entry{
			"root": {folder("f1", "Costas")},
			"f1":   {{ID: "img", Name: "pull up.png", MimeType: "image/png"}},
		},
		files: map[string][]byte{"img": pngBytes(t, 8, 8)},
	}
	store, repo := newFakeStorage(), newFakeRepo()
	repo.insertErr = errors.New("connection reset")

	report, err := newTestPipeline(src, store, repo, Options{DeleteOrphanedUploads: true}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.Errors)
	assert.Equal(t, []string{"costas/barra-fixa.webp"}, store.deleted)
	assert.NotContains(t, store.objects, "costas/barra-fixa.webp")
}

func TestRun_RootListingFailureIsFatal(t *testing.T) {
	src := &fakeSource{listErr: map[string]error{"root": errors.New("403 forbidden")}}

	report, err := newTestPipeline(src, newFakeStorage(), newFakeRepo(), Options{}).Run(context.Background())
	assert.ErrorContains(t, err, "403 forbidden")
	require.NotNil(t, report)
	assert.Equal(t, 0, report.Summary.Total)
}

func TestRun_CancelledContextStops(t *testing.T) {
	src := &fakeSource{
		folders: map[string][]source.Entry{
			"root": {folder("f1", "Peito")},
			"f1":   {{ID: "img", Name: "Push-Up.png", MimeType: "image/png"}},
		},
		files: map[string][]byte{"img": pngBytes(t, 8, 8)},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newTestPipeline(src, newFakeStorage(), newFakeRepo(), Options{}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, src.downloads)
	assert.Equal(t, 0, report.Summary.Total)
}

func TestProcessItem_ReportsFailingStage(t *testing.T) {
	src := &fakeSource{files: map[string][]byte{"bad": []byte("garbage")}}
	p := newTestPipeline(src, newFakeStorage(), newFakeRepo(), Options{})

	res := p.ProcessItem(context.Background(), source.Entry{ID: "bad", Name: "x.png"}, "Peito")
	assert.False(t, res.OK())
	assert.Equal(t, StageConvert, res.Stage)
	assert.ErrorIs(t, res.Err, media.ErrDecode)
	assert.Contains(t, res.Reason(), "convert failed")

	res = p.ProcessItem(context.Background(), source.Entry{ID: "missing", Name: "y.png"}, "Peito")
	assert.Equal(t, StageDownload, res.Stage)

	res = p.ProcessItem(context.Background(), source.Entry{ID: "bad", Name: ".png"}, "Peito")
	assert.Equal(t, StageResolve, res.Stage)
	assert.ErrorIs(t, res.Err, ErrEmptySlug)
}

func TestRun_EmptySlugFailsBeforeDownload(t *testing.T) {
	src := &fakeSource{
		folders: map[string][]source.Entry{
			"root": {folder("f1", "Peito")},
			"f1":   {{ID: "img", Name: ".png", MimeType: "image/png"}},
		},
		files: map[string][]byte{"img": pngBytes(t, 8, 8)},
	}
	store, repo := newFakeStorage(), newFakeRepo()

	report, err := newTestPipeline(src, store, repo, Options{}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Peito/.png"}, report.Errors)
	assert.Empty(t, src.downloads)
	assert.Empty(t, store.objects)
	assert.Empty(t, repo.rows)
}

func TestRun_DuplicateSlugLooksUpExistingRecord(t *testing.T) {
	src := &fakeSource{
		folders: map[string][]source.Entry{
			"root": {folder("f1", "Costas")},
			"f1":   {{ID: "img", Name: "pull up.png", MimeType: "image/png"}},
		},
		files: map[string][]byte{"img": pngBytes(t, 8, 8)},
	}
	store, repo := newFakeStorage(), newFakeRepo()
	repo.rows["barra-fixa"] = domain.Exercise{Name: "Barra Fixa", Slug: "barra-fixa", MuscleGroup: "Costas"}

	report, err := newTestPipeline(src, store, repo, Options{}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Costas/pull up.png"}, report.Errors)
	assert.Equal(t, []string{"barra-fixa"}, repo.lookups)
}

func TestRun_OtherInsertErrorsSkipLookup(t *testing.T) {
	src := &fakeSource{
		folders: map[string][]source.Entry{
			"root": {folder("f1", "Costas")},
			"f1":   {{ID: "img", Name: "pull up.png", MimeType: "image/png"}},
		},
		files: map[string][]byte{"img": pngBytes(t, 8, 8)},
	}
	store, repo := newFakeStorage(), newFakeRepo()
	repo.insertErr = errors.New("connection reset")

	_, err := newTestPipeline(src, store, repo, Options{}).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, repo.lookups)
}
