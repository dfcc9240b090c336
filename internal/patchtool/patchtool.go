// Package patchtool checks generated diffs against the real patch and
// git apply programs.
package patchtool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"unidiff/internal/git"
	"unidiff/internal/unified"
	"unidiff/internal/util"
)

var (
	// ErrNotInstalled reports that neither patch nor git is on PATH.
	ErrNotInstalled = errors.New("patch tool not installed")
	// ErrMismatch reports that applying the diff did not reproduce the
	// target text.
	ErrMismatch = errors.New("patched file does not match target")
)

// targetName is the file the diff is applied to inside the scratch
// directory.
const targetName = "target"

// Apply runs patch -u --posix against target inside dir, feeding it patch
// on stdin. The file names in the patch header are ignored.
func Apply(ctx context.Context, dir, target, patch string) error {
	if !util.Available("patch") {
		return fmt.Errorf("patch: %w", ErrNotInstalled)
	}
	_, err := util.Run(ctx, util.Cmd{
		Dir:   dir,
		Stdin: patch,
		Name:  "patch",
		Args:  []string{"-u", "--posix", "--batch", "--quiet", target},
	})
	return err
}

// Verify writes from to a scratch file and checks that doc turns it into to.
// git apply --check and patch both run when installed; the names of the
// tools that ran are returned.
func Verify(ctx context.Context, from, to string, doc unified.Document) ([]string, error) {
	if doc.Empty() {
		if from != to {
			return nil, fmt.Errorf("empty diff for different inputs: %w", ErrMismatch)
		}
		return nil, nil
	}

	dir, err := os.MkdirTemp("", "unidiff-verify-")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	doc.Header = []string{"--- a/" + targetName, "+++ b/" + targetName}
	patch := doc.String()
	path := filepath.Join(dir, targetName)

	var ran []string
	if util.Available("git") {
		if err := os.WriteFile(path, []byte(from), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		if _, err := git.ApplyCheck(ctx, dir, patch); err != nil {
			return ran, fmt.Errorf("git apply rejected diff: %w", err)
		}
		ran = append(ran, "git apply")
	}

	if util.Available("patch") {
		if err := os.WriteFile(path, []byte(from), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		if err := Apply(ctx, dir, targetName, patch); err != nil {
			return ran, fmt.Errorf("patch rejected diff: %w", err)
		}
		got, err := readPatched(path)
		if err != nil {
			return ran, err
		}
		if got != to {
			return ran, fmt.Errorf("patch produced %d bytes, want %d: %w", len(got), len(to), ErrMismatch)
		}
		ran = append(ran, "patch")
	}

	if len(ran) == 0 {
		return nil, ErrNotInstalled
	}
	return ran, nil
}

// readPatched returns the content of path; patch may remove a file it
// emptied.
func readPatched(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
