package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tanq16/woofget/internal/utils"
)

// Run drives a single job through validation, target resolution and the
// transfer. Exactly one transfer is in flight at a time.
func Run(ctx context.Context, job utils.WoofJob, downloader utils.Downloader) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	logger := utils.GetLogger("scheduler").With().Str("job", job.ID).Logger()

	logger.Debug().Str("api", job.APIURL).Msg("validating job")
	if err := downloader.ValidateJob(&job); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	logger.Debug().Msg("resolving download target")
	if err := downloader.BuildJob(ctx, &job); err != nil {
		return err
	}

	logger.Debug().Str("url", job.Target.URL).Str("output", job.OutputPath).Msg("starting download")
	if err := downloader.Download(ctx, &job); err != nil {
		logger.Debug().Err(err).Msg("download failed")
		return err
	}
	logger.Debug().Msg("job complete")
	return nil
}
