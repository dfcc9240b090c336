package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"unidiff/internal/git"
	"unidiff/internal/unified"
)

// timestampLayout matches the modification times GNU diff prints.
const timestampLayout = "2006-01-02 15:04:05.000000000 -0700"

type input struct {
	path    string
	data    []byte
	modTime time.Time
}

func (in input) stdin() bool {
	return in.path == "-"
}

func readInputs(stdin io.Reader, fromPath, toPath string) (input, input, error) {
	if fromPath == "-" && toPath == "-" {
		return input{}, input{}, errors.New("only one input may be read from standard input")
	}
	from, err := readInput(stdin, fromPath)
	if err != nil {
		return input{}, input{}, err
	}
	to, err := readInput(stdin, toPath)
	if err != nil {
		return input{}, input{}, err
	}
	return from, to, nil
}

func readInput(stdin io.Reader, path string) (input, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return input{}, fmt.Errorf("read standard input: %w", err)
		}
		return input{path: path, data: data}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return input{}, err
	}
	if info.IsDir() {
		return input{}, fmt.Errorf("%s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return input{}, err
	}
	return input{path: path, data: data, modTime: info.ModTime()}, nil
}

// headerOptions picks the header labels: --label values verbatim, else
// repository paths with --git, else the file names with their modification
// times.
func headerOptions(ctx context.Context, o *options, from, to input) ([]unified.Option, error) {
	switch {
	case len(o.labels) > 2:
		return nil, fmt.Errorf("--label given %d times, at most 2 allowed", len(o.labels))
	case len(o.labels) == 2:
		return []unified.Option{unified.WithFiles(o.labels[0], o.labels[1])}, nil
	case len(o.labels) == 1:
		return []unified.Option{unified.WithFiles(o.labels[0], to.path), unified.WithDates("", stamp(to))}, nil
	}

	if o.gitPaths {
		fromName, err := repoLabel(ctx, from)
		if err != nil {
			return nil, err
		}
		toName, err := repoLabel(ctx, to)
		if err != nil {
			return nil, err
		}
		return []unified.Option{unified.WithFiles("a/"+fromName, "b/"+toName)}, nil
	}

	return []unified.Option{
		unified.WithFiles(from.path, to.path),
		unified.WithDates(stamp(from), stamp(to)),
	}, nil
}

func repoLabel(ctx context.Context, in input) (string, error) {
	if in.stdin() {
		return "-", nil
	}
	return git.RepoPath(ctx, in.path)
}

func stamp(in input) string {
	if in.modTime.IsZero() {
		return ""
	}
	return in.modTime.Format(timestampLayout)
}
