package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/mouse-blink/gooze-repair/internal/adapter"
	"github.com/mouse-blink/gooze-repair/internal/model"
	"github.com/mouse-blink/gooze-repair/internal/oracle"
)

// resolveProblemFiles expands path (a single problem file, or a directory
// of them) into the sorted list of files to run, applying --exclude regex
// filters and --shard INDEX/TOTAL selection, mirroring the teacher's
// directory-scan-plus-shard shape (cmd/root.go's parseShardFlag,
// cmd/run.go's runExcludeFlags) generalized from Go source files to
// problem files.
func resolveProblemFiles(path string, excludes []string, shard string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cmd: stat %s: %w", path, err)
	}

	var files []string

	if !info.IsDir() {
		files = []string{path}
	} else {
		walkErr := filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fi.IsDir() {
				return nil
			}

			files = append(files, p)

			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("cmd: walk %s: %w", path, walkErr)
		}
	}

	filtered, err := excludeFiles(files, excludes)
	if err != nil {
		return nil, err
	}

	sort.Strings(filtered)

	shardIndex, totalShards := parseShardFlag(shard)

	return shardSlice(filtered, shardIndex, totalShards), nil
}

func excludeFiles(files, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return files, nil
	}

	compiled := make([]*regexp.Regexp, len(patterns))

	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("cmd: invalid --exclude pattern %q: %w", p, err)
		}

		compiled[i] = re
	}

	kept := make([]string, 0, len(files))

outer:
	for _, f := range files {
		for _, re := range compiled {
			if re.MatchString(f) {
				continue outer
			}
		}

		kept = append(kept, f)
	}

	return kept, nil
}

// parseShardFlag parses "INDEX/TOTAL"; an unparseable or out-of-range flag
// falls back to "no sharding," matching the teacher's parseShardFlag.
func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	if _, err := fmt.Sscanf(shard, "%d/%d", &index, &total); err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}

func shardSlice(files []string, index, total int) []string {
	if total <= 1 {
		return files
	}

	out := make([]string, 0, len(files)/total+1)

	for i, f := range files {
		if i%total == index {
			out = append(out, f)
		}
	}

	return out
}

// loadProblem reads and parses one problem file via the local problem
// loader.
func loadProblem(ctx context.Context, oc oracle.Oracle, cfg oracle.Config, path string) (model.Problem, error) {
	loader := adapter.NewLocalProblemLoader(adapter.NewLocalFSAdapter())
	return loader.Load(ctx, oc, cfg, path)
}

// problemName derives the report-file base name from a problem path,
// matching the teacher's "strip directory and extension" convention for
// naming per-target reports.
func problemName(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
