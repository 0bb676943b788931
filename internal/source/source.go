package source

import (
	"context"
	"strings"
)

// FolderMimeType marks folder entries in a Drive listing.
const FolderMimeType = "application/vnd.google-apps.folder"

// Entry is one item of a folder listing.
type Entry struct {
	ID       string
	Name     string
	MimeType string
}

// IsFolder reports whether the entry is a folder.
func (e Entry) IsFolder() bool {
	return e.MimeType == FolderMimeType
}

var imageExtensions = []string{".webp", ".gif", ".png", ".jpg", ".jpeg"}

// IsImage reports whether the entry should be processed as exercise media:
// an image/* mime type or a recognised image extension.
func (e Entry) IsImage() bool {
	if strings.HasPrefix(e.MimeType, "image/") {
		return true
	}
	name := strings.ToLower(e.Name)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// FileSource defines the interface for the folder tree holding the exercise media.
type FileSource interface {
	// ListFolder returns the direct children of a folder.
	ListFolder(ctx context.Context, folderID string) ([]Entry, error)

	// Download returns the full content of a file.
	Download(ctx context.Context, fileID string) ([]byte, error)
}
