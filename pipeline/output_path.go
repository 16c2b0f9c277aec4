package pipeline

import (
	"path/filepath"
	"strings"

	"bbld/common"
	"bbld/config"
	"bbld/state"
)

// outputPath builds the destination file name for a processed document:
// cleaned base name tagged with the profile, under dst. Source directory
// structure is preserved unless NoDirs was requested.
func outputPath(env *state.LocalEnv, profile common.Profile, dst, rel string) string {
	dir := dst
	if !env.NoDirs {
		if sub := filepath.Dir(rel); sub != "." {
			dir = filepath.Join(dst, sub)
		}
	}
	base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	return filepath.Join(dir, config.CleanFileName(base)+"."+profile.String()+".html")
}
