package utils

import (
	"errors"
	"time"
)

const DefaultAPIURL = "https://random.dog/woof.json"
const FallbackFileName = "downloaded_file"
const DefaultBufferSize = 1024 * 64 // 64KB read buffer
const ProgressInterval = time.Second
const ToolUserAgent = "woofget/1.0"

var (
	ErrMetadataFetch        = errors.New("metadata fetch failed")
	ErrBinaryFetch          = errors.New("binary fetch failed")
	ErrMissingContentLength = errors.New("missing content length")
	ErrCreateSink           = errors.New("cannot create output file")
	ErrStreamRead           = errors.New("stream read failed")
	ErrSinkWrite            = errors.New("sink write failed")
)
