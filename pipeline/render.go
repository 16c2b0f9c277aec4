package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"bbld/config"
	"bbld/images"
	"bbld/render"
	"bbld/state"
)

// RunRender implements the render subcommand: a bulletin description (YAML)
// is expanded into HTML and, unless raw output was requested, pushed
// through the configured postprocessing profile.
func RunRender(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no bulletin description has been specified")
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

	env.Overwrite = cmd.Bool("overwrite")

	bulletin, err := loadBulletin(src, env)
	if err != nil {
		return err
	}
	if env.Cfg.Bulletin.Images.Optimize {
		optimizeSectionImages(bulletin, filepath.Dir(src), env, log)
	}

	doc, err := render.Render(bulletin)
	if err != nil {
		return fmt.Errorf("unable to render bulletin %s: %w", src, err)
	}
	env.Rpt.StoreData("render/"+filepath.Base(src)+".html", []byte(doc))

	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if cmd.Bool("raw") {
		out := filepath.Join(dst, config.CleanFileName(base)+".html")
		if err := writeResult(env, out, []byte(doc)); err != nil {
			return err
		}
		log.Info("Bulletin rendered", zap.String("source", src), zap.String("destination", out))
		return nil
	}

	profile := selectProfile(cmd, env, log)
	out := outputPath(env, profile, dst, filepath.Base(src))
	processed := newProcessor(env, profile, base).Process(doc)
	if err := writeResult(env, out, []byte(processed)); err != nil {
		return err
	}
	log.Info("Bulletin rendered", zap.String("source", src), zap.String("destination", out), zap.Stringer("profile", profile))
	return nil
}

// loadBulletin reads a bulletin description, filling title and theme gaps
// from configuration.
func loadBulletin(path string, env *state.LocalEnv) (*render.Bulletin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read bulletin description %s: %w", path, err)
	}
	env.Rpt.StoreData("input/"+filepath.Base(path), data)

	var b render.Bulletin
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("unable to parse bulletin description %s: %w", path, err)
	}
	if b.Title == "" {
		b.Title = env.Cfg.Bulletin.Title
	}
	if b.Primary == "" {
		b.Primary = env.Cfg.Bulletin.Theme.Primary
	}
	return &b, nil
}

// optimizeSectionImages re-encodes local section images in place. Remote
// images are handled by the URL rewriting pass instead.
func optimizeSectionImages(b *render.Bulletin, baseDir string, env *state.LocalEnv, log *zap.Logger) {
	cfg := env.Cfg.Bulletin.Images
	opts := images.Options{MaxWidth: cfg.MaxWidth, JPEGQuality: cfg.JPEGQuality, Resize: cfg.Resize}

	for i := range b.Sections {
		s := &b.Sections[i]
		if s.Type != render.SectionImage || s.ImageSrc == "" || strings.Contains(s.ImageSrc, "://") {
			continue
		}
		path := s.ImageSrc
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		out, err := images.Optimize(path, opts, env.Log)
		if err != nil {
			log.Warn("Unable to optimize section image - using as is", zap.String("image", path), zap.Error(err))
			continue
		}
		if out != path {
			log.Debug("Section image optimized", zap.String("image", path), zap.String("optimized", out))
			s.ImageSrc = out
		}
	}
}
