package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"unidiff/internal/util"
)

// DiscoverRepoRoot returns the top level of the work tree containing cwd.
func DiscoverRepoRoot(ctx context.Context, cwd string) (string, error) {
	out, err := util.Run(ctx, util.Cmd{Dir: cwd, Name: "git", Args: []string{"rev-parse", "--show-toplevel"}})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RepoPath returns path relative to the repository that contains it, in
// slash form, as git prints it after the a/ and b/ prefixes.
func RepoPath(ctx context.Context, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	root, err := DiscoverRepoRoot(ctx, filepath.Dir(abs))
	if err != nil {
		return "", err
	}
	// rev-parse resolves symlinks; do the same on our side before comparing.
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside repository %s", path, root)
	}
	return filepath.ToSlash(rel), nil
}
