package woofhttp

import (
	"io"
	"iter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/woofget/internal/progress"
	"github.com/tanq16/woofget/internal/utils"
)

// ProgressFunc receives the running byte count and the declared total.
type ProgressFunc func(downloaded, total uint64)

type Option func(*options)

type options struct {
	throttle   *progress.Throttle
	clock      progress.Clock
	onProgress ProgressFunc
	sourceURL  string
}

// WithThrottle replaces the default one-second throttle.
func WithThrottle(t *progress.Throttle) Option {
	return func(o *options) { o.throttle = t }
}

// WithClock sets the time source consulted at each chunk arrival.
func WithClock(c progress.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithProgress registers the callback invoked whenever the throttle allows it.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) { o.onProgress = fn }
}

// WithSourceURL names the source in returned errors.
func WithSourceURL(url string) Option {
	return func(o *options) { o.sourceURL = url }
}

// BodyChunks adapts r into a pull-based chunk sequence. The yielded slice is
// reused for the next read, so consumers must be done with it before asking
// for another chunk. A non-EOF read error is yielded once and ends the sequence.
func BodyChunks(r io.Reader, bufSize int) iter.Seq2[[]byte, error] {
	if bufSize <= 0 {
		bufSize = utils.DefaultBufferSize
	}
	return func(yield func([]byte, error) bool) {
		buffer := make([]byte, bufSize)
		for {
			bytesRead, readErr := r.Read(buffer)
			if bytesRead > 0 {
				if !yield(buffer[:bytesRead], nil) {
					return
				}
			}
			if readErr != nil {
				if readErr != io.EOF {
					yield(nil, readErr)
				}
				return
			}
		}
	}
}

// StreamDownload writes every chunk to sink in arrival order and returns the
// number of bytes written. Progress is reported through the WithProgress
// callback at most once per throttle interval. On a read or write failure the
// sink keeps exactly the bytes written so far; StreamDownload never closes it.
func StreamDownload(chunks iter.Seq2[[]byte, error], total uint64, sink io.Writer, optFns ...Option) (uint64, error) {
	opts := options{clock: time.Now}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.throttle == nil {
		opts.throttle = progress.NewThrottle(utils.ProgressInterval)
	}

	var downloaded uint64
	for chunk, err := range chunks {
		if err != nil {
			log.Debug().Str("op", "http/simple-downloader").Uint64("downloaded", downloaded).Err(err).Msg("stream aborted")
			return downloaded, utils.NewDownloadError(utils.ErrStreamRead, "error while downloading", opts.sourceURL, err)
		}
		if len(chunk) == 0 {
			continue
		}
		n, writeErr := sink.Write(chunk)
		downloaded += uint64(n)
		if writeErr == nil && n < len(chunk) {
			writeErr = io.ErrShortWrite
		}
		if writeErr != nil {
			log.Debug().Str("op", "http/simple-downloader").Uint64("downloaded", downloaded).Err(writeErr).Msg("sink write failed")
			return downloaded, utils.NewDownloadError(utils.ErrSinkWrite, "error while writing to file", opts.sourceURL, writeErr)
		}
		if opts.onProgress != nil && opts.throttle.ShouldEmit(opts.clock()) {
			opts.onProgress(downloaded, total)
		}
	}
	log.Debug().Str("op", "http/simple-downloader").Uint64("downloaded", downloaded).Uint64("total", total).Msg("stream exhausted")
	return downloaded, nil
}
