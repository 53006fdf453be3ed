package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/andybodemer/snapraw/internal/destinations"
	"github.com/andybodemer/snapraw/internal/discover"
	"github.com/andybodemer/snapraw/internal/organize"
	"github.com/andybodemer/snapraw/internal/report"
)

func newImportCommand(app *appContext) *cobra.Command {
	var (
		source     string
		dest       string
		shoot      string
		onConflict string
		sidecars   bool
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy photos from a camera card into dated folders",
		Long: `Import finds a mounted camera card, groups its photos by capture
date and copies them into a yyyy/yyyy-mm/yyyy-mm-dd folder tree under
a saved destination. Every copy is checksum-verified.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			src := source
			if src == "" {
				var err error
				src, err = discover.FindCard(app.cfg.VolumeRoots, app.cfg.SkipVolumes)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Found card: %s\n", src)
			}

			photos, err := discover.FindPhotos(src, app.cfg.ExtensionSet())
			if err != nil {
				return err
			}
			if len(photos) == 0 {
				return fmt.Errorf("no photos on %s", src)
			}

			base := dest
			if base == "" {
				base, err = chooseDestination(cmd, app)
				if err != nil {
					return err
				}
			}

			policy, err := organize.ParseConflictPolicy(onConflict)
			if err != nil {
				return err
			}

			opts := organize.Options{
				Decoder:       app.decoderOptions(),
				MtimeFallback: app.cfg.MtimeFallback,
				Policy:        policy,
				Progress:      isatty.IsTerminal(os.Stderr.Fd()),
				Logger:        app.log,
			}

			groups, err := organize.GroupByDate(photos, opts)
			if err != nil {
				return err
			}

			plan := organize.BuildPlan(groups, base, organize.SanitizeShootName(shoot))
			printPlan(out, groups, plan)

			if !yes && !confirm(cmd, "Proceed with import?") {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}

			res, err := organize.Copy(plan, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Copied %d photos, skipped %d.\n", res.Copied, res.Skipped)

			if sidecars {
				for _, item := range plan.Items {
					fields, err := decodeFileFields(app, item.Photo.Path)
					if err != nil {
						app.log.Warn("no sidecar written", "path", item.Photo.Path, "err", err)
						continue
					}
					if _, err := report.Write(item.Dst, fields); err != nil && !errors.Is(err, report.ErrExists) {
						app.log.Warn("no sidecar written", "path", item.Dst, "err", err)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "card or folder to import from (default: autodetect)")
	cmd.Flags().StringVar(&dest, "dest", "", "destination base folder (default: pick from saved destinations)")
	cmd.Flags().StringVar(&shoot, "shoot", "", "shoot name appended to the day folders")
	cmd.Flags().StringVar(&onConflict, "on-conflict", "skip", "existing file handling: skip, overwrite or rename")
	cmd.Flags().BoolVar(&sidecars, "sidecars", false, "also write metadata sidecars next to the copies")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func printPlan(out io.Writer, groups []organize.Group, plan organize.Plan) {
	fmt.Fprintf(out, "\n%d photos, %s, %d days:\n",
		plan.TotalPhotos, humanize.Bytes(uint64(plan.TotalSize)), len(groups))
	for _, g := range groups {
		var size int64
		for _, p := range g.Photos {
			size += p.Size
		}
		fmt.Fprintf(out, "  %s  %4d photos  %s\n",
			g.Date.Format("2006-01-02"), len(g.Photos), humanize.Bytes(uint64(size)))
	}
	if plan.Conflicts > 0 {
		fmt.Fprintf(out, "%d photos already exist at the destination.\n", plan.Conflicts)
	}
	fmt.Fprintln(out)
}

// chooseDestination lists the saved destinations and, on a terminal,
// prompts for a pick. Without a terminal exactly one saved destination
// is required.
func chooseDestination(cmd *cobra.Command, app *appContext) (string, error) {
	store := destinations.NewStore(app.cfg.DestinationsFile)
	dirs, err := store.List()
	if err != nil {
		return "", err
	}
	if len(dirs) == 0 {
		return "", fmt.Errorf("no saved destinations, add one with \"snapraw destinations add\" or pass --dest")
	}
	if len(dirs) == 1 {
		return dirs[0], nil
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return "", fmt.Errorf("multiple saved destinations, pass --dest")
	}

	out := cmd.OutOrStdout()
	for i, d := range dirs {
		fmt.Fprintf(out, "  %d) %s\n", i+1, d)
	}
	fmt.Fprintf(out, "Destination [1-%d]: ", len(dirs))

	sc := bufio.NewScanner(cmd.InOrStdin())
	if !sc.Scan() {
		return "", fmt.Errorf("no destination chosen")
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil || n < 1 || n > len(dirs) {
		return "", fmt.Errorf("invalid choice %q", sc.Text())
	}
	return dirs[n-1], nil
}

func confirm(cmd *cobra.Command, prompt string) bool {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return false
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	sc := bufio.NewScanner(cmd.InOrStdin())
	if !sc.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(sc.Text()))
	return answer == "y" || answer == "yes"
}
