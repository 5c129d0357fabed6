package main

import (
	"context"
	"io"
	"os"

	"codeberg.org/mutker/actelemetry/internal/export"
	"codeberg.org/mutker/actelemetry/internal/logger"
)

// stdoutPath makes a command write its result to standard output
const stdoutPath = "-"

// withStore imports input into a fresh store and hands it to fn together
// with the destination writer.
func withStore(ctx context.Context, input, output string, fn func(*export.Store, io.Writer) error) error {
	store, err := export.Open(ctx, export.Config{DBPath: dbPath}, logger.Component("export"))
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.ImportFile(ctx, input)
	if err != nil {
		return err
	}
	logger.Info().Str("input", input).Int("rows", n).Msg("Telemetry imported")

	if output == stdoutPath {
		return fn(store, os.Stdout)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}

	if err := fn(store, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info().Str("output", output).Msg("Export written")

	return nil
}
