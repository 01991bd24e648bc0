package utils

import (
	"context"
	"errors"
	"fmt"
)

type Downloader interface {
	ValidateJob(job *WoofJob) error
	BuildJob(ctx context.Context, job *WoofJob) error
	Download(ctx context.Context, job *WoofJob) error
}

// DownloadTarget is the decoded body of the metadata endpoint.
type DownloadTarget struct {
	URL           string `json:"url"`
	FileSizeBytes uint64 `json:"fileSizeBytes"`
}

type WoofJob struct {
	ID               string
	APIURL           string
	OutputDir        string
	OutputPath       string
	Target           DownloadTarget
	HTTPClientConfig HTTPClientConfig
	StrictTLS        bool
}

// DownloadError carries one of the Err* kinds, the operation that failed
// and the URL involved. errors.Is matches both the kind and the cause.
type DownloadError struct {
	Kind error
	Op   string
	URL  string
	Err  error
}

func NewDownloadError(kind error, op, url string, err error) *DownloadError {
	return &DownloadError{Kind: kind, Op: op, URL: url, Err: err}
}

func (e *DownloadError) Error() string {
	msg := e.Op
	if e.URL != "" {
		msg = fmt.Sprintf("%s '%s'", msg, e.URL)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DownloadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func IsDownloadError(err error) bool {
	var de *DownloadError
	return errors.As(err, &de)
}
