package woofhttp

import (
	"context"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/woofget/internal/downloaders/locator"
	"github.com/tanq16/woofget/internal/output"
	"github.com/tanq16/woofget/internal/progress"
	"github.com/tanq16/woofget/internal/utils"
)

// Source is an opened binary fetch whose declared length is known.
type Source struct {
	URL           string
	ContentLength uint64
	Body          io.ReadCloser
}

func (s *Source) Chunks() iter.Seq2[[]byte, error] {
	return BodyChunks(s.Body, utils.DefaultBufferSize)
}

func (s *Source) Close() error {
	return s.Body.Close()
}

// OpenSource issues the binary GET and returns the response once its declared
// content length is known. The caller must Close the returned Source.
func OpenSource(ctx context.Context, link string, client utils.HTTPDoer) (*Source, error) {
	if err := validateURL(link); err != nil {
		return nil, utils.NewDownloadError(utils.ErrBinaryFetch, "Failed to GET from", link, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, utils.NewDownloadError(utils.ErrBinaryFetch, "Failed to GET from", link, err)
	}
	req.Header.Set("Connection", "keep-alive")
	resp, err := client.Do(req)
	if err != nil {
		return nil, utils.NewDownloadError(utils.ErrBinaryFetch, "Failed to GET from", link, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, utils.NewDownloadError(utils.ErrBinaryFetch, "Failed to GET from", link, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}
	if resp.ContentLength < 0 {
		resp.Body.Close()
		return nil, utils.NewDownloadError(utils.ErrMissingContentLength, "Failed to get content length from", link, nil)
	}
	return &Source{URL: link, ContentLength: uint64(resp.ContentLength), Body: resp.Body}, nil
}

func validateURL(link string) error {
	parsedURL, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("invalid URL: %v", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("unsupported scheme: %q", parsedURL.Scheme)
	}
	return nil
}

// HTTPDownloader resolves a target from the metadata endpoint and streams it
// to a file in the job's output directory.
// APIClient and Client override the clients built from the job config.
type HTTPDownloader struct {
	Status    *output.StatusLine
	Clock     progress.Clock
	APIClient utils.HTTPDoer
	Client    utils.HTTPDoer
}

func (d *HTTPDownloader) ValidateJob(job *utils.WoofJob) error {
	if err := validateURL(job.APIURL); err != nil {
		return fmt.Errorf("invalid API endpoint: %w", err)
	}
	if job.OutputDir != "" {
		info, err := os.Stat(job.OutputDir)
		if err != nil {
			return fmt.Errorf("output directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("output directory: %s is not a directory", job.OutputDir)
		}
	}
	return nil
}

func (d *HTTPDownloader) BuildJob(ctx context.Context, job *utils.WoofJob) error {
	client := d.APIClient
	if client == nil {
		apiConfig := job.HTTPClientConfig
		apiConfig.InsecureSkipVerify = !job.StrictTLS
		client = utils.NewWoofHTTPClient(apiConfig)
	}
	target, err := locator.Locate(ctx, job.APIURL, client)
	if err != nil {
		return err
	}
	job.Target = target
	job.OutputPath = filepath.Join(job.OutputDir, utils.FileNameFromURL(target.URL))
	return nil
}

func (d *HTTPDownloader) Download(ctx context.Context, job *utils.WoofJob) error {
	client := d.Client
	if client == nil {
		binConfig := job.HTTPClientConfig
		binConfig.InsecureSkipVerify = false
		// The body read is bounded only by the stream itself.
		binConfig.Timeout = 0
		client = utils.NewWoofHTTPClient(binConfig)
	}

	source, err := OpenSource(ctx, job.Target.URL, client)
	if err != nil {
		return err
	}
	defer source.Close()

	if job.Target.FileSizeBytes != 0 && job.Target.FileSizeBytes != source.ContentLength {
		log.Debug().Str("op", "http/initial").Uint64("reported", job.Target.FileSizeBytes).Uint64("declared", source.ContentLength).Msg("API size differs from content length")
	}

	outFile, err := os.Create(job.OutputPath)
	if err != nil {
		return utils.NewDownloadError(utils.ErrCreateSink, "Failed to create file", job.OutputPath, err)
	}
	defer outFile.Close()

	status := d.Status
	if status == nil {
		status = output.NewStatusLine(os.Stdout)
	}
	opts := []Option{WithSourceURL(source.URL), WithProgress(status.Update)}
	if d.Clock != nil {
		opts = append(opts, WithClock(d.Clock))
	}

	written, err := StreamDownload(source.Chunks(), source.ContentLength, outFile, opts...)
	if err != nil {
		status.Abort()
		log.Error().Str("op", "http/initial").Str("file", job.OutputPath).Uint64("written", written).Msg("transfer incomplete, partial file left in place")
		return err
	}
	if err := outFile.Close(); err != nil {
		status.Abort()
		return utils.NewDownloadError(utils.ErrSinkWrite, "error closing file", job.OutputPath, err)
	}

	status.Finish()
	status.Summary(source.URL, job.OutputPath)
	log.Info().Str("op", "http/initial").Str("file", job.OutputPath).Uint64("bytes", written).Msg("download complete")
	return nil
}
