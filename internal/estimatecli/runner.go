package estimatecli

import (
	"context"
	"fmt"
	"io"

	"github.com/okian/carprice/pkg/logger"
)

// Run performs the request described by cfg and writes the result to w.
func Run(ctx context.Context, cfg *Config, w io.Writer) error {
	log := logger.Named("estimate-cli")
	client := NewClient(cfg.BaseURL, cfg.Timeout)

	if cfg.Examples {
		log.Debug(ctx, "fetching sample valuations", logger.String("url", cfg.BaseURL))
		examples, raw, err := client.Examples(ctx)
		if err != nil {
			return err
		}
		if cfg.JSON {
			_, err := w.Write(raw)
			return err
		}
		for i, e := range examples {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if err := Render(w, e); err != nil {
				return err
			}
		}
		return nil
	}

	log.Debug(ctx, "requesting estimate",
		logger.String("url", cfg.BaseURL),
		logger.Any("car", cfg.Request),
	)
	est, raw, err := client.Estimate(ctx, cfg.Request)
	if err != nil {
		return err
	}
	log.Debug(ctx, "estimate received", logger.String("id", est.ID), logger.Float64("predicted", est.PredictedPrice))
	if cfg.JSON {
		_, err := w.Write(raw)
		return err
	}
	if err := Render(w, est); err != nil {
		return fmt.Errorf("render estimate: %w", err)
	}
	return nil
}
