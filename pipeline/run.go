// Package pipeline glues the CLI to the library: it walks input sources,
// decodes documents, runs the postprocessing profile and writes results.
package pipeline

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"bbld/archive"
	"bbld/common"
	"bbld/postprocess"
	"bbld/state"
)

// Run implements the process subcommand: rendered bulletin HTML in, paste
// or send ready HTML out. Source may be a single file, a directory walked
// recursively, or a zip archive of exported documents.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("process")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	profile := selectProfile(cmd, env, log)
	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("profile", profile))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("unable to access source %s: %w", src, err)
	}

	switch {
	case fi.IsDir():
		return processDir(ctx, env, profile, src, dst, log)
	case strings.EqualFold(filepath.Ext(src), ".zip"):
		return processArchive(ctx, env, profile, src, dst, log)
	default:
		return processFile(env, profile, src, outputPath(env, profile, dst, filepath.Base(src)), log)
	}
}

// selectProfile takes the target profile from the command line, falling
// back to configuration for unknown or absent values.
func selectProfile(cmd *cli.Command, env *state.LocalEnv, log *zap.Logger) common.Profile {
	profile := env.Cfg.Bulletin.Postprocess.Profile
	if s := cmd.String("profile"); len(s) > 0 {
		p, err := common.ParseProfile(s)
		if err != nil {
			log.Warn("Unknown profile requested, using configuration", zap.String("profile", s), zap.Stringer("using", profile))
			return profile
		}
		profile = p
	}
	return profile
}

// newProcessor assembles a processor from configuration and wires per-pass
// snapshots into the debug report when one was requested.
func newProcessor(env *state.LocalEnv, profile common.Profile, name string) *postprocess.Processor {
	cfg := env.Cfg.Bulletin
	proc := postprocess.NewProcessor(profile, postprocess.Options{
		PrimaryColor:   cfg.Theme.Primary,
		OnPrimaryColor: cfg.Theme.OnPrimary,
		SidePadding:    cfg.Postprocess.SidePadding,
		ConvertAVIF:    cfg.Postprocess.ConvertAVIF,
		Minify:         cfg.Postprocess.Minify,
	}, env.Log)

	if env.Rpt != nil {
		proc.Observe = func(pass, doc string) {
			env.Rpt.StoreData(fmt.Sprintf("stages/%s/%s.html", name, pass), []byte(doc))
		}
	}
	return proc
}

func isHTMLName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return true
	}
	return false
}

func processDir(ctx context.Context, env *state.LocalEnv, profile common.Profile, src, dst string, log *zap.Logger) error {
	var files []string
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isHTMLName(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("unable to scan source directory %s: %w", src, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no documents found under %s", src)
	}
	// process in the order a human expects, "page2" before "page10"
	sort.Sort(natural.StringSlice(files))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(src, file)
		if err != nil {
			rel = filepath.Base(file)
		}
		out := outputPath(env, profile, dst, rel)
		if err := processFile(env, profile, file, out, log); err != nil {
			return err
		}
	}
	return nil
}

func processArchive(ctx context.Context, env *state.LocalEnv, profile common.Profile, src, dst string, log *zap.Logger) error {
	return archive.Walk(src, isHTMLName, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r, err := f.Open()
		if err != nil {
			return fmt.Errorf("unable to open %s in %s: %w", f.Name, arc, err)
		}
		defer r.Close()

		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("unable to read %s in %s: %w", f.Name, arc, err)
		}
		out := outputPath(env, profile, dst, filepath.FromSlash(f.Name))
		return processData(env, profile, f.Name, data, out, log)
	})
}

func processFile(env *state.LocalEnv, profile common.Profile, src, dst string, log *zap.Logger) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", src, err)
	}
	return processData(env, profile, src, data, dst, log)
}

func processData(env *state.LocalEnv, profile common.Profile, name string, data []byte, dst string, log *zap.Logger) error {
	env.Rpt.StoreData("input/"+filepath.Base(name), data)

	// renderer output is UTF-8 but documents from elsewhere may not be
	r, err := charset.NewReader(bytes.NewReader(data), "")
	if err != nil {
		return fmt.Errorf("unable to detect encoding of %s: %w", name, err)
	}
	doc, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("unable to decode %s: %w", name, err)
	}

	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	out := newProcessor(env, profile, base).Process(string(doc))

	if err := writeResult(env, dst, []byte(out)); err != nil {
		return err
	}
	log.Info("Document processed", zap.String("source", name), zap.String("destination", dst),
		zap.Int("in", len(data)), zap.Int("out", len(out)))
	return nil
}

// writeResult writes output refusing to silently clobber existing files.
func writeResult(env *state.LocalEnv, dst string, data []byte) error {
	if !env.Overwrite {
		if _, err := os.Stat(dst); err == nil {
			return fmt.Errorf("destination %s already exists (use --overwrite)", dst)
		}
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("unable to write %s: %w", dst, err)
	}
	return nil
}
