package git

import (
	"context"

	"unidiff/internal/util"
)

// ApplyCheck asks git whether patch applies cleanly to the files under dir
// without touching them. dir does not need to be a repository.
func ApplyCheck(ctx context.Context, dir, patch string) (string, error) {
	return util.Run(ctx, util.Cmd{
		Dir:   dir,
		Stdin: patch,
		Name:  "git",
		Args:  []string{"apply", "--check", "-v", "--unsafe-paths", "-"},
	})
}
