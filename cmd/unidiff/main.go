package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"unidiff/internal/clipboard"
	"unidiff/internal/config"
	"unidiff/internal/diff"
	"unidiff/internal/log"
	"unidiff/internal/patchtool"
	"unidiff/internal/unified"
)

// errDifferent signals exit status 1: the inputs differ.
var errDifferent = errors.New("inputs differ")

type options struct {
	context         int
	labels          []string
	memoryLimit     int64
	noNewlineMarker bool
	color           string
	split           bool
	width           int
	view            bool
	copy            bool
	verify          bool
	gitPaths        bool
	configPath      string
	verbose         bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and maps the outcome onto diff(1) exit
// codes: 0 identical, 1 different, 2 trouble.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdin)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errDifferent):
		return 1
	default:
		fmt.Fprintf(stderr, "unidiff: %v\n", err)
		return 2
	}
}

func newRootCmd(stdin io.Reader) *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "unidiff [flags] FROM TO",
		Short: "Compare two files line by line and print a unified diff",
		Long: `unidiff compares two text files and prints their differences as a unified
diff that patch -u and git apply accept. Either file may be - for standard input.

Exit status is 0 when the inputs are identical, 1 when they differ and 2 on trouble.`,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, stdin, o, args[0], args[1])
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&o.context, "unified", "U", unified.DefaultContext, "lines of context around each change")
	flags.StringArrayVar(&o.labels, "label", nil, "use LABEL instead of the file name in the header (repeat for TO)")
	flags.Int64Var(&o.memoryLimit, "memory-limit", 0, "bytes the LCS table may use before switching to the linear-space algorithm")
	flags.BoolVar(&o.noNewlineMarker, "no-newline-marker", true, `print "\ No newline at end of file" after unterminated lines`)
	flags.StringVar(&o.color, "color", "", "colorize output: auto, always or never")
	flags.BoolVar(&o.split, "split", false, "print a side-by-side view instead of the patch")
	flags.IntVar(&o.width, "width", 160, "total width of the side-by-side view")
	flags.BoolVar(&o.view, "view", false, "browse the diff in an interactive pager")
	flags.BoolVar(&o.copy, "copy", false, "copy the patch to the clipboard")
	flags.BoolVar(&o.verify, "verify", false, "check the patch with git apply and patch before printing it")
	flags.BoolVar(&o.gitPaths, "git", false, "label files a/PATH and b/PATH relative to their repository")
	flags.StringVar(&o.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/unidiff/config.json)")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "log debug details to stderr")
	return cmd
}

func runDiff(cmd *cobra.Command, stdin io.Reader, o *options, fromPath, toPath string) error {
	logger, err := log.New(o.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(cmd, o)
	if err != nil {
		return err
	}
	logger.Debug("configuration", zap.Any("config", cfg))

	from, to, err := readInputs(stdin, fromPath, toPath)
	if err != nil {
		return err
	}

	builderOpts, err := headerOptions(cmd.Context(), o, from, to)
	if err != nil {
		return err
	}
	builderOpts = append(builderOpts, unified.WithContext(cfg.ContextLines))
	if !cfg.NoNewlineMarker {
		builderOpts = append(builderOpts, unified.WithoutNoNewlineMarker())
	}
	builder, err := unified.NewBuilder(builderOpts...)
	if err != nil {
		return err
	}

	differ := diff.New(diff.WithMemoryLimit(cfg.MemoryLimitBytes), diff.WithLogger(logger))
	script := differ.Diff(diff.SplitBytes(from.data), diff.SplitBytes(to.data))
	doc := builder.Build(script)
	added, removed := script.Stats()
	logger.Debug("diff computed",
		zap.Int("hunks", len(doc.Hunks)),
		zap.Int("added", added),
		zap.Int("removed", removed))

	if o.verify {
		ran, err := patchtool.Verify(cmd.Context(), string(from.data), string(to.data), doc)
		if err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		logger.Info("patch verified", zap.Strings("tools", ran))
	}

	if o.copy && !doc.Empty() {
		if err := clipboard.CopyText(doc.String()); err != nil {
			return err
		}
	}

	if err := writeOutput(cmd.OutOrStdout(), o, cfg, doc, to.path); err != nil {
		return err
	}
	if doc.Empty() {
		return nil
	}
	return errDifferent
}

// loadConfig reads the config file and lets explicitly set flags win.
func loadConfig(cmd *cobra.Command, o *options) (config.AppConfig, error) {
	var (
		cfg config.AppConfig
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFromPath(o.configPath)
	} else {
		cfg, _, err = config.Load()
	}
	if err != nil {
		return config.AppConfig{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("unified") {
		cfg.ContextLines = o.context
	}
	if flags.Changed("memory-limit") {
		cfg.MemoryLimitBytes = o.memoryLimit
	}
	if flags.Changed("no-newline-marker") {
		cfg.NoNewlineMarker = o.noNewlineMarker
	}
	if flags.Changed("color") {
		cfg.Color = o.color
	}
	if err := cfg.Validate(); err != nil {
		return config.AppConfig{}, err
	}
	return cfg, nil
}
