// Package pipeline walks the media folder tree and imports every exercise image.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"alcyxob/exercise-importer/internal/catalog"
	"alcyxob/exercise-importer/internal/config"
	"alcyxob/exercise-importer/internal/domain"
	"alcyxob/exercise-importer/internal/media"
	"alcyxob/exercise-importer/internal/repository"
	"alcyxob/exercise-importer/internal/source"
	"alcyxob/exercise-importer/internal/storage"
)

// ImageConverter turns downloaded bytes into the uploaded format.
type ImageConverter interface {
	Convert(data []byte, filename string) (*media.Result, error)
}

// Options configures a run.
type Options struct {
	RootFolderID string
	// DeleteOrphanedUploads removes the uploaded object when the insert that
	// follows it fails. Off by default: the object is left in the bucket.
	DeleteOrphanedUploads bool
}

// OptionsFromConfig extracts the run options from the loaded configuration.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		RootFolderID:          cfg.Source.FolderID,
		DeleteOrphanedUploads: cfg.Pipeline.DeleteOrphanedUploads,
	}
}

// Pipeline processes the two-level tree: root -> muscle group folders -> images.
// Items are handled one at a time and a failing item never stops the run.
type Pipeline struct {
	opts      Options
	source    source.FileSource
	storage   storage.FileStorage
	repo      repository.ExerciseRepository
	converter ImageConverter

	now   func() time.Time
	runID func() string
}

// New creates a pipeline over the given collaborators.
func New(opts Options, src source.FileSource, store storage.FileStorage, repo repository.ExerciseRepository, conv ImageConverter) *Pipeline {
	return &Pipeline{
		opts:      opts,
		source:    src,
		storage:   store,
		repo:      repo,
		converter: conv,
		now:       time.Now,
		runID:     uuid.NewString,
	}
}

// Run processes every eligible file and returns the report. An error is
// returned only when a folder listing fails or ctx is cancelled; the report
// then holds everything processed up to that point.
func (p *Pipeline) Run(ctx context.Context) (*domain.Report, error) {
	report := domain.NewReport(p.runID(), p.now().UTC())
	defer func() { report.FinishedAt = p.now().UTC() }()

	log.Printf("INFO: Run %s starting at folder %s", report.RunID, p.opts.RootFolderID)

	folders, err := p.source.ListFolder(ctx, p.opts.RootFolderID)
	if err != nil {
		return report, fmt.Errorf("list root folder: %w", err)
	}

	for _, folder := range folders {
		if !folder.IsFolder() {
			continue
		}
		log.Printf("INFO: Processing folder: %s", folder.Name)

		files, err := p.source.ListFolder(ctx, folder.ID)
		if err != nil {
			return report, fmt.Errorf("list folder %s: %w", folder.Name, err)
		}

		for _, file := range files {
			if !file.IsImage() {
				continue
			}
			if err := ctx.Err(); err != nil {
				return report, err
			}

			res := p.ProcessItem(ctx, file, folder.Name)
			if res.OK() {
				report.RecordSuccess(*res.Exercise)
				log.Printf("INFO: %s (%s | %s) processed successfully", res.Exercise.Name, res.Exercise.Equipment, res.Exercise.Difficulty)
				continue
			}

			report.RecordFailure(folder.Name + "/" + file.Name)
			log.Printf("ERROR: %s/%s: %s", folder.Name, file.Name, res.Reason())
		}
	}

	return report, nil
}

// ProcessItem runs resolve -> download -> convert -> upload -> insert for one file.
// The first failing stage ends the chain. Completed stages are not rolled
// back, except for the optional orphan cleanup after a failed insert.
func (p *Pipeline) ProcessItem(ctx context.Context, file source.Entry, folderName string) ItemResult {
	log.Printf("INFO: Processing: %s", file.Name)

	meta, override := catalog.Resolve(file.Name)
	if override {
		log.Printf("INFO: Curated translation found for %s", file.Name)
	} else {
		log.Printf("INFO: Detected: %s | %s", meta.Equipment, meta.Difficulty)
	}
	if meta.Slug == "" {
		return failed(StageResolve, fmt.Errorf("%w: %q", ErrEmptySlug, file.Name))
	}

	data, err := p.source.Download(ctx, file.ID)
	if err != nil {
		return failed(StageDownload, err)
	}

	converted, err := p.converter.Convert(data, file.Name)
	if err != nil {
		return failed(StageConvert, err)
	}

	key := catalog.ObjectKey(folderName, meta.Slug, media.TargetExtension)
	log.Printf("INFO: Uploading to: %s", key)
	if err := p.storage.Upload(ctx, key, media.ContentType, converted.Data); err != nil {
		return failed(StageUpload, err)
	}
	mediaURL, err := p.storage.ObjectURL(ctx, key)
	if err != nil {
		return failed(StageUpload, err)
	}

	exercise := catalog.Build(meta, folderName, mediaURL)
	if _, err := p.repo.Create(ctx, &exercise); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			p.logExisting(ctx, exercise.Slug)
		}
		p.handleOrphan(ctx, key)
		return ItemResult{ObjectKey: key, Stage: StageInsert, Err: err}
	}

	return ItemResult{Exercise: &exercise, ObjectKey: key}
}

// logExisting names the record that already holds slug.
func (p *Pipeline) logExisting(ctx context.Context, slug string) {
	existing, err := p.repo.GetBySlug(ctx, slug)
	if err != nil {
		log.Printf("WARN: Slug '%s' reported as duplicate but lookup failed: %v", slug, err)
		return
	}
	log.Printf("WARN: Slug '%s' already used by '%s' (%s, %s)", slug, existing.Name, existing.MuscleGroup, existing.MediaURL)
}

func (p *Pipeline) handleOrphan(ctx context.Context, key string) {
	if !p.opts.DeleteOrphanedUploads {
		log.Printf("WARN: Object '%s' was uploaded but its record was not inserted; leaving it in storage", key)
		return
	}
	if err := p.storage.DeleteObject(ctx, key); err != nil {
		log.Printf("WARN: Could not remove orphaned object '%s': %v", key, err)
	}
}
