package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"infogen/brief"
	"infogen/common"
	"infogen/config"
	"infogen/meter"
	"infogen/misc"
	"infogen/pipeline"
	"infogen/state"
	"infogen/store"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		// save complete processed configuration if external configuration was provided
		if len(configFile) > 0 {
			// we do not want any of your secrets!
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 && env.Log != nil {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging
	env.RestoreStdLog()

	// log is synced now and result can be used in report if necessary, errors
	// must be reported directly to stderr from now on
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	// reporting is closed now - remove empty panic file if any
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// Ignore urfave/cli default error handling - for me cli.Exit() looks
// non-transparent and unnesessary. I will return regular errors from
// subcommands.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {

	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func main() {

	// allow graceful shutdown on interrupt.
	// NOTE: a generation can hold model calls and renders in flight for a
	// while, interrupt cancels the request context and the pipeline winds
	// down through the usual failure path
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "generation engine turning text prompts into corporate infographics",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "generate",
				Usage:        "Generates infographic artifact(s) from a text prompt",
				OnUsageError: usageErrorHandler,
				Action:       pipeline.Run,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "to", DefaultText: common.OutputFormatSlide.String(),
						Usage: "output `FORMAT`, repeatable (supported formats: " + strings.Join(common.OutputFormatNames(), ", ") + ")"},
					&cli.StringFlag{Name: "plan", Value: meter.PlanFree.String(),
						Usage: "subscription `PLAN` to meter the request under (known plans: " + strings.Join(meter.PlanNames(), ", ") + ")"},
					&cli.StringFlag{Name: "caller", Value: "local", Usage: "caller `ID` rates, quotas and records are keyed on"},
					&cli.StringFlag{Name: "type", DefaultText: "",
						Usage: "diagram `TYPE` hint (known types: " + strings.Join(brief.DiagramTypeNames(), ", ") + ")"},
					&cli.IntFlag{Name: "entities", Usage: "expected entity `COUNT`, checked against plan limits before any model call"},
					&cli.StringFlag{Name: "lang", Usage: "BCP 47 `TAG` overriding prompt language detection"},
					&cli.StringSliceFlag{Name: "palette", Usage: "brand `COLOR` (hex), repeatable, order sets priority"},
					&cli.StringFlag{Name: "logo", Usage: "brand logo image `FILE`"},
					&cli.StringFlag{Name: "stylesheet", Usage: "brand stylesheet `FILE` to mine for colors and fonts"},
					&cli.StringFlag{Name: "template", Usage: "presentation template `FILE` to mine for colors and fonts"},
					&cli.StringSliceFlag{Name: "image", Usage: "reference image `FILE` for vision models, repeatable"},
					&cli.BoolFlag{Name: "no-cache", Usage: "bypass the response cache, force fresh model calls"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output `DIRECTORY` for generated artifacts"},
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exists, overwrite files"},
				},
				ArgsUsage: "PROMPT",
				CustomHelpTemplate: fmt.Sprintf(`%s
PROMPT:
    free text describing the infographic to generate, all arguments are joined
    into a single prompt so quoting is optional

    The request is classified, passed through the model gateway and laid out
    deterministically, then rendered to every requested format the plan
    allows. Artifact files are written to the output directory and their
    signed references are printed to STDOUT one per line.
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "records",
				Usage:        "Lists recent generation records (newest first)",
				OnUsageError: usageErrorHandler,
				Action:       listRecords,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "caller", Usage: "only show records for caller `ID`"},
					&cli.IntFlag{Name: "number", Aliases: []string{"n"}, Value: 25, Usage: "show at most `N` records"},
				},
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values wich is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()

	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))

	_, err = out.Write(data)
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}

func listRecords(ctx context.Context, cmd *cli.Command) (err error) {

	env := state.EnvFromContext(ctx)

	recs, err := store.OpenRecords(env.Cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("unable to open record database: %w", err)
	}
	defer func() {
		if er := recs.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close record database: %w", er))
		}
	}()

	rows, err := recs.Recent(ctx, cmd.String("caller"), int64(cmd.Int("number")))
	if err != nil {
		return fmt.Errorf("unable to read records: %w", err)
	}
	if len(rows) == 0 {
		env.Log.Info("No generation records found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tID\tCALLER\tTYPE\tTIER\tMODEL\tSTATUS\tCOST\tWALL\tFORMATS")
	for _, r := range rows {
		status := r.Status
		if len(r.FailKind) > 0 {
			status += " (" + r.FailKind + ")"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%.4f\t%s\t%s\n",
			r.CreatedAt.Local().Format(time.DateTime),
			r.ID, r.Caller, r.DiagramType, r.Tier, r.Model, status,
			r.CostUSD, time.Duration(r.WallMS)*time.Millisecond,
			strings.Join(r.Formats, ","))
	}
	return w.Flush()
}
