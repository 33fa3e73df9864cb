package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"slices"

	"github.com/Erumpet/focs/internal/config"
	"github.com/Erumpet/focs/internal/script"
	"github.com/Erumpet/focs/internal/utils"
	"github.com/rs/zerolog"
)

func runSubcommand(ctx context.Context, args []string, outW, errW io.Writer) (statusCode int) {
	flags := flag.NewFlagSet(RUN_SUBCMD, flag.ContinueOnError)
	flags.SetOutput(errW)

	var jsonOutput bool
	var verbose bool
	var width int

	flags.BoolVar(&jsonOutput, "json", false, "print the results as JSON")
	flags.BoolVar(&verbose, "v", false, "show debug logs")
	flags.IntVar(&width, "width", 0, "element width in bytes of scripts that do not specify one (1, 2, 4 or 8)")

	if showHelp(flags, args, outW) {
		return
	}

	if err := flags.Parse(args); err != nil {
		return ERROR_STATUS_CODE
	}

	fpath := flags.Arg(0)
	if fpath == "" {
		fmt.Fprintln(errW, "missing script path")
		return ERROR_STATUS_CODE
	}

	cfg, ok := loadConfig(width, errW)
	if !ok {
		return ERROR_STATUS_CODE
	}

	logger := newLogger(cfg, errW, verbose).With().Str("script", fpath).Logger()

	parsed, err := script.ParseFile(fpath, cfg.Width)
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	executor, err := script.NewExecutor(parsed, script.ExecutorConfig{Logger: &logger})
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	results, runErr := func() (results []script.StepResult, err error) {
		defer func() {
			if e := recover(); e != nil {
				err = fmt.Errorf("panic: %w", utils.ConvertPanicValueToError(e))
			}
		}()
		return executor.Run(ctx)
	}()

	if jsonOutput {
		if err := printJSONReport(outW, fpath, parsed.Width, results, runErr); err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
	} else {
		printResults(outW, cfg, results, runErr)
	}

	if runErr != nil {
		logger.Error().Err(runErr).Msg("script failed")
		return ERROR_STATUS_CODE
	}
	logger.Debug().Int("steps", len(results)).Msg("script succeeded")
	return
}

func checkSubcommand(args []string, outW, errW io.Writer) (statusCode int) {
	flags := flag.NewFlagSet(CHECK_SUBCMD, flag.ContinueOnError)
	flags.SetOutput(errW)

	var width int
	flags.IntVar(&width, "width", 0, "element width in bytes of scripts that do not specify one (1, 2, 4 or 8)")

	if showHelp(flags, args, outW) {
		return
	}

	if err := flags.Parse(args); err != nil {
		return ERROR_STATUS_CODE
	}

	if flags.NArg() == 0 {
		fmt.Fprintln(errW, "missing script path")
		return ERROR_STATUS_CODE
	}

	cfg, ok := loadConfig(width, errW)
	if !ok {
		return ERROR_STATUS_CODE
	}

	var errs []error

	for _, fpath := range flags.Args() {
		parsed, err := script.ParseFile(fpath, cfg.Width)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(outW, "%s: ok (%d steps, width %d)\n", fpath, len(parsed.Steps), parsed.Width)
	}

	if err := utils.CombineErrorsWithPrefixMessage("invalid scripts", errs...); err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}
	return
}

// loadConfig loads the configuration and applies the -width flag if it is set.
func loadConfig(width int, errW io.Writer) (config.Config, bool) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(errW, err)
		return config.Config{}, false
	}

	if width != 0 {
		if !slices.Contains(script.SUPPORTED_WIDTHS, width) {
			fmt.Fprintf(errW, "%s: %d\n", script.ErrInvalidWidth, width)
			return config.Config{}, false
		}
		cfg.Width = width
	}

	return cfg, true
}

func newLogger(cfg config.Config, errW io.Writer, verbose bool) zerolog.Logger {
	level := cfg.Level()
	if verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:          errW,
		NoColor:      !cfg.ShouldColorize,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}

	return zerolog.New(writer).Level(level)
}
