package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"
	"github.com/utz82/tipack/internal/config"
	"github.com/utz82/tipack/pkg/logging"
	"github.com/utz82/tipack/pkg/pack"
	"github.com/utz82/tipack/pkg/utils/permissions"
)

const version = "0.2.0"

type cliOptions struct {
	pack.Options
	logLevel    string
	configPath  string
	fileMode    string
	versionFlag bool
}

func getBuildTimestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "tipack %s\n", version)
	fmt.Fprintf(w, "Built: %s\n", getBuildTimestamp())
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts cliOptions

	cmd := &cobra.Command{
		Use:   "tipack [flags] [FILE | -]",
		Short: "Pack data into a TI calculator variable file",
		Long: `Pack raw data into a single-variable file for TI graphing calculators.

The variable type is given as a file extension such as 8xp (TI-83+ program),
86s (TI-86 string) or 89t (TI-89 text). When -t is omitted it is taken from
the output file name. Data is read from FILE, or from standard input when
FILE is "-" or missing.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.versionFlag {
				printVersion(stdout)
				return nil
			}
			if len(args) == 1 {
				opts.Input = args[0]
			}
			return run(cmd, &opts, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return pack.UsageError("arguments", err)
	})

	f := cmd.Flags()
	f.StringVarP(&opts.Output, "output", "o", "", "Output file name")
	f.StringVarP(&opts.Name, "name", "n", "", "On-calculator variable name")
	f.StringVarP(&opts.Type, "type", "t", "", "Variable type as a file extension (e.g. 8xp)")
	f.StringVarP(&opts.Comment, "comment", "c", "", "File comment (strftime format string)")
	f.BoolVarP(&opts.Protect, "protect", "p", false, "Create a protected program")
	f.BoolVarP(&opts.Complex, "complex", "C", false, "Create a complex number variable")
	f.BoolVarP(&opts.Archive, "archive", "a", false, "Store the variable in archive memory")
	f.BoolVarP(&opts.Raw, "raw", "r", false, "Do not insert a length prefix")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "Display the file after writing it")
	f.StringVarP(&opts.Model, "model", "m", "", "Calculator model, overriding the one implied by the type")
	f.StringVar(&opts.Folder, "folder", "", "Folder for TI-89/92/V200 variables")
	f.StringVar(&opts.InputOps, "input-ops", "", "Operations to undo on the input (gzip, bzip2, zstd, e.g. \"bzip2|gzip\")")
	f.StringVar(&opts.fileMode, "mode", "", "Permissions of the output file (octal, e.g. 0644)")
	f.StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	f.StringVar(&opts.configPath, "config", "", "Path to a config file")
	f.BoolVarP(&opts.versionFlag, "version", "V", false, "Show version information")

	return cmd
}

func run(cmd *cobra.Command, opts *cliOptions, stderr io.Writer) error {
	cfg, err := config.Load(opts.configPath, version)
	if err != nil {
		return pack.UsageError("config", err)
	}

	flags := cmd.Flags()
	if !flags.Changed("comment") {
		opts.Comment = cfg.Comment
	}
	if !flags.Changed("model") {
		opts.Model = cfg.Model
	}
	if !flags.Changed("folder") {
		opts.Folder = cfg.Folder
	}
	if !flags.Changed("input-ops") {
		opts.InputOps = cfg.InputOps
	}
	if !flags.Changed("mode") {
		opts.fileMode = cfg.FileMode
	}
	mode, err := permissions.ParseOctalString(opts.fileMode)
	if err != nil {
		return pack.UsageError("mode", err)
	}
	opts.FileMode = os.FileMode(mode)

	level := opts.logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	if opts.Verbose {
		level = logging.VerboseLevel(level)
	}

	logOut := stderr
	if cfg.LogPath != "" {
		logFile, err := os.OpenFile(cfg.LogPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return pack.UsageError("log-path", err)
		}
		defer logFile.Close()
		logOut = logFile
	}

	logger := logging.NewLogger("tipack", level, cfg.JSONLog, logOut)
	logger.Debug("🔧 Configuration loaded", "level", level, "model", opts.Model, "input_ops", opts.InputOps)

	res, err := pack.Run(cmd.Context(), opts.Options, logger)
	if err != nil {
		return err
	}
	logger.Debug("🏁 Done", "path", res.Path, "model", res.Family, "size", res.Size)
	return nil
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return pack.ExitOK
	}

	code := pack.ExitCode(err)
	op := pack.FailedOp(err)
	if op == "" {
		op = "arguments"
	}
	fmt.Fprintf(stderr, "error in %s:\n%s\n", op, err)
	if code == pack.ExitUsage && !errors.Is(err, context.Canceled) {
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return code
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
