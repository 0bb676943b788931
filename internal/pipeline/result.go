package pipeline

import (
	"errors"
	"fmt"

	"alcyxob/exercise-importer/internal/domain"
)

// Stage names the step of the per-item chain.
type Stage string

const (
	StageResolve  Stage = "resolve"
	StageDownload Stage = "download"
	StageConvert  Stage = "convert"
	StageUpload   Stage = "upload"
	StageInsert   Stage = "insert"
)

// ErrEmptySlug is returned for files whose name yields no slug, such as ".png".
var ErrEmptySlug = errors.New("filename yields an empty slug")

// ItemResult is the outcome of one file: a record on success, or the stage
// that failed and why.
type ItemResult struct {
	Exercise  *domain.Exercise
	ObjectKey string
	Stage     Stage
	Err       error
}

// OK reports whether every stage succeeded.
func (r ItemResult) OK() bool {
	return r.Err == nil && r.Exercise != nil
}

func (r ItemResult) Reason() string {
	if r.Err == nil {
		return ""
	}
	return fmt.Sprintf("%s failed: %v", r.Stage, r.Err)
}

func failed(stage Stage, err error) ItemResult {
	return ItemResult{Stage: stage, Err: err}
}
