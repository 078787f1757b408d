package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/vk/markovavail/internal/ctxlog"
	"github.com/vk/markovavail/internal/ratesheet"
)

// RunRates evaluates a rate sheet and writes it as a dictionary to the
// configured output, or to outW when none is set.
func RunRates(ctx context.Context, outW, logW io.Writer, cfg *RatesConfig) (err error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, 0, logW).With("run_id", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("RunRates started.", "sheet", cfg.SheetPath)

	sheet, err := ratesheet.Load(ctx, cfg.SheetPath, cfg.Overrides)
	if err != nil {
		return err
	}

	w := outW
	if cfg.OutputPath != "" {
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", cerr)
			}
		}()
		w = f
	}

	if err := sheet.Write(w, time.Now(), cfg.Overrides); err != nil {
		return fmt.Errorf("failed to write rates: %w", err)
	}
	logger.Info("Rates generated.", "rates", len(sheet.Rates), "output", cfg.OutputPath)
	return nil
}
