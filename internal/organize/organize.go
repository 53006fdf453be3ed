// Package organize groups photos by capture date and copies them into
// a date-based folder layout.
package organize

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/andybodemer/snapraw"
	"github.com/andybodemer/snapraw/internal/fileutil"
)

// ConflictPolicy controls what happens when a photo already exists at
// its destination.
type ConflictPolicy int

const (
	// ConflictSkip leaves the existing file in place.
	ConflictSkip ConflictPolicy = iota
	// ConflictOverwrite replaces the existing file.
	ConflictOverwrite
	// ConflictRename copies under a numbered name beside the existing file.
	ConflictRename
)

func (p ConflictPolicy) String() string {
	switch p {
	case ConflictSkip:
		return "skip"
	case ConflictOverwrite:
		return "overwrite"
	case ConflictRename:
		return "rename"
	}
	return "unknown"
}

// ParseConflictPolicy maps the user-facing policy names to a policy.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch strings.ToLower(s) {
	case "skip":
		return ConflictSkip, nil
	case "overwrite":
		return ConflictOverwrite, nil
	case "rename":
		return ConflictRename, nil
	}
	return 0, fmt.Errorf("organize: unknown conflict policy %q", s)
}

// Photo is a source file with its resolved capture date.
type Photo struct {
	Path string
	Size int64
	Date time.Time

	// FromMtime is set when the capture date came from the file's
	// modification time rather than its metadata.
	FromMtime bool
}

// Group holds the photos captured on a single day.
type Group struct {
	Date   time.Time
	Photos []Photo
}

// Options configures date resolution and copying.
type Options struct {
	// Decoder is passed through to the metadata decoder.
	Decoder snapraw.Options

	// MtimeFallback uses the file modification time when a photo
	// carries no usable capture timestamp.
	MtimeFallback bool

	// Policy decides how destination conflicts are handled.
	Policy ConflictPolicy

	// Progress, when set, draws a progress bar during Copy.
	Progress bool

	Logger *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// GroupByDate resolves a capture date for every path and buckets the
// photos by day, oldest group first.
func GroupByDate(paths []string, opts Options) ([]Group, error) {
	log := opts.logger()
	byDay := make(map[string][]Photo)

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		photo := Photo{Path: path, Size: info.Size()}
		date, err := snapraw.DecodeFileDate(path, opts.Decoder)
		switch {
		case err == nil:
			photo.Date = date
		case opts.MtimeFallback:
			log.Warn("no capture date in metadata, using mtime", "path", path, "err", err)
			photo.Date = info.ModTime()
			photo.FromMtime = true
		default:
			return nil, fmt.Errorf("organize: %s: %w", path, err)
		}

		day := photo.Date.Format("2006-01-02")
		byDay[day] = append(byDay[day], photo)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	groups := make([]Group, 0, len(days))
	for _, day := range days {
		date, _ := time.Parse("2006-01-02", day)
		photos := byDay[day]
		sort.Slice(photos, func(i, j int) bool { return photos[i].Path < photos[j].Path })
		groups = append(groups, Group{Date: date, Photos: photos})
	}
	return groups, nil
}

var shootNameJunk = regexp.MustCompile(`[^\p{L}\p{N} _-]+`)

// SanitizeShootName strips characters that are unsafe in folder names
// and collapses surrounding whitespace.
func SanitizeShootName(name string) string {
	name = shootNameJunk.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(name), " ")
}

// FolderFor returns the destination folder for a capture date:
// base/yyyy/yyyy-mm/yyyy-mm-dd, with the shoot name appended to the
// day folder when given.
func FolderFor(base string, date time.Time, shoot string) string {
	day := date.Format("2006-01-02")
	if shoot != "" {
		day += " " + shoot
	}
	return filepath.Join(base, date.Format("2006"), date.Format("2006-01"), day)
}

// CopyItem is a single planned source-to-destination copy.
type CopyItem struct {
	Photo Photo
	Dst   string

	// Conflict is set when Dst already existed at planning time.
	Conflict bool
}

// Plan lays out where every photo in groups will be copied under base.
type Plan struct {
	Items []CopyItem

	TotalPhotos int
	TotalSize   int64
	Conflicts   int
}

// BuildPlan computes the destination for every photo and records which
// destinations already exist.
func BuildPlan(groups []Group, base, shoot string) Plan {
	var plan Plan
	for _, g := range groups {
		folder := FolderFor(base, g.Date, shoot)
		for _, p := range g.Photos {
			item := CopyItem{
				Photo: p,
				Dst:   filepath.Join(folder, filepath.Base(p.Path)),
			}
			if _, err := os.Stat(item.Dst); err == nil {
				item.Conflict = true
				plan.Conflicts++
			}
			plan.Items = append(plan.Items, item)
			plan.TotalPhotos++
			plan.TotalSize += p.Size
		}
	}
	return plan
}

// CopyResult summarizes a Copy run.
type CopyResult struct {
	Copied  int
	Skipped int
}

// Copy executes the plan, verifying every copy and applying the
// conflict policy to destinations that already exist.
func Copy(plan Plan, opts Options) (CopyResult, error) {
	log := opts.logger()

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.DefaultBytes(plan.TotalSize, "copying")
	}

	var res CopyResult
	for _, item := range plan.Items {
		dst := item.Dst
		if item.Conflict {
			switch opts.Policy {
			case ConflictSkip:
				log.Info("skipping existing file", "dst", dst)
				res.Skipped++
				if bar != nil {
					bar.Add64(item.Photo.Size)
				}
				continue
			case ConflictRename:
				dst = fileutil.UniqueName(dst)
			case ConflictOverwrite:
				// CopyFileVerified replaces the destination.
			}
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return res, err
		}
		if err := fileutil.CopyFileVerified(item.Photo.Path, dst); err != nil {
			return res, fmt.Errorf("organize: copy %s: %w", item.Photo.Path, err)
		}
		res.Copied++
		if bar != nil {
			bar.Add64(item.Photo.Size)
		}
	}
	if bar != nil {
		bar.Finish()
	}
	return res, nil
}
