package locator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/woofget/internal/utils"
)

const maxMetadataSize = 1 << 20

// Locate performs one GET against apiURL and decodes the resource metadata.
// Every failure is reported as utils.ErrMetadataFetch.
func Locate(ctx context.Context, apiURL string, client utils.HTTPDoer) (utils.DownloadTarget, error) {
	var target utils.DownloadTarget
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return target, utils.NewDownloadError(utils.ErrMetadataFetch, "error creating API request", apiURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return target, utils.NewDownloadError(utils.ErrMetadataFetch, "error executing API request", apiURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return target, utils.NewDownloadError(utils.ErrMetadataFetch, "API request", apiURL, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxMetadataSize)).Decode(&target); err != nil {
		return target, utils.NewDownloadError(utils.ErrMetadataFetch, "error decoding API response", apiURL, err)
	}
	if target.URL == "" {
		return target, utils.NewDownloadError(utils.ErrMetadataFetch, "API response", apiURL, errors.New("no url in response"))
	}

	log.Debug().Str("op", "locator").Str("url", target.URL).Uint64("fileSizeBytes", target.FileSizeBytes).Msg("resolved download target")
	return target, nil
}
