package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andybodemer/snapraw"
	"github.com/andybodemer/snapraw/internal/discover"
	"github.com/andybodemer/snapraw/internal/report"
)

func newExtractCommand(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "extract PATH...",
		Short: "Write a metadata sidecar next to each photo",
		Long: `Extract decodes capture metadata and writes a _metadata.txt sidecar
beside each photo. A directory argument is walked recursively for
photos with a configured extension. Existing sidecars are left alone.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			photos, err := collectPhotos(app, args)
			if err != nil {
				return err
			}
			if len(photos) == 0 {
				return fmt.Errorf("no photos found")
			}

			var written, skipped, failed int
			for _, path := range photos {
				fields, err := decodeFileFields(app, path)
				if err != nil {
					failed++
					app.log.Error("decode failed", "path", path, "err", err)
					continue
				}
				sidecar, err := report.Write(path, fields)
				switch {
				case errors.Is(err, report.ErrExists):
					skipped++
					app.log.Info("sidecar exists, skipping", "path", sidecar)
				case err != nil:
					return err
				default:
					written++
					fmt.Fprintln(cmd.OutOrStdout(), sidecar)
				}
			}

			app.log.Info("extract finished",
				"written", written, "skipped", skipped, "failed", failed)
			if failed > 0 {
				return fmt.Errorf("%d of %d photos failed to decode", failed, len(photos))
			}
			return nil
		},
	}
}

// collectPhotos expands directory arguments into photo paths using the
// configured extensions. Plain file arguments are taken as-is.
func collectPhotos(app *appContext, args []string) ([]string, error) {
	exts := app.cfg.ExtensionSet()
	var photos []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			photos = append(photos, arg)
			continue
		}
		found, err := discover.FindPhotos(arg, exts)
		if err != nil {
			return nil, err
		}
		photos = append(photos, found...)
	}
	return photos, nil
}

func decodeFileFields(app *appContext, path string) (*snapraw.Fields, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	opts := app.decoderOptions()
	opts.R = f
	opts.Format = snapraw.FormatFromPath(path)
	return snapraw.Decode(opts)
}
