package source

import (
	"context"
	"fmt"
	"io"
	"log"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"alcyxob/exercise-importer/internal/config"
)

// driveSource implements FileSource on top of the Google Drive v3 API.
type driveSource struct {
	files *drive.FilesService
}

// NewDriveSource creates a read-only Drive client authenticated with a service account file.
func NewDriveSource(ctx context.Context, cfg config.SourceConfig) (FileSource, error) {
	opts := []option.ClientOption{option.WithScopes(drive.DriveReadonlyScope)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		log.Printf("ERROR: Failed to create Drive service: %v", err)
		return nil, err
	}

	log.Printf("Drive source initialized (credentials: %s)", cfg.CredentialsFile)
	return &driveSource{files: srv.Files}, nil
}

// ListFolder lists every non-trashed child of folderID, following pagination.
func (d *driveSource) ListFolder(ctx context.Context, folderID string) ([]Entry, error) {
	var entries []Entry

	call := d.files.List().
		Q(fmt.Sprintf("'%s' in parents and trashed = false", folderID)).
		Fields("nextPageToken, files(id, name, mimeType)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true)

	err := call.Pages(ctx, func(page *drive.FileList) error {
		for _, f := range page.Files {
			entries = append(entries, Entry{ID: f.Id, Name: f.Name, MimeType: f.MimeType})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list folder %s: %w", folderID, err)
	}
	return entries, nil
}

// Download fetches the media content of fileID.
func (d *driveSource) Download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := d.files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fileID, err)
	}
	return data, nil
}
