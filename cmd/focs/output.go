package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Erumpet/focs/internal/config"
	"github.com/Erumpet/focs/internal/script"
	"github.com/Erumpet/focs/internal/utils"
	"github.com/muesli/termenv"
)

type jsonReport struct {
	Script  string              `json:"script"`
	Width   int                 `json:"width"`
	Results []script.StepResult `json:"results"`
	Error   string              `json:"error,omitempty"`
}

func printJSONReport(w io.Writer, fpath string, width int, results []script.StepResult, runErr error) error {
	report := jsonReport{
		Script:  fpath,
		Width:   width,
		Results: utils.EmptySliceIfNil(results),
	}
	if runErr != nil {
		report.Error = runErr.Error()
	}

	serialized, err := utils.MarshalIndentJsonNoHTMLEspace(report, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n", serialized)
	return err
}

// printResults prints a line per executed step, for example:
//
//	2 pop_head    ok 1   [2 3]
func printResults(w io.Writer, cfg config.Config, results []script.StepResult, runErr error) {
	output := termenv.NewOutput(w, termenv.WithProfile(cfg.ColorProfile))

	for _, result := range results {
		line := strings.Builder{}
		line.WriteString(fmt.Sprintf("%3d ", result.Step))
		line.WriteString(output.String(fmt.Sprintf("%-11s", result.Op)).Bold().String())

		if result.Ok != nil {
			if *result.Ok {
				line.WriteString(output.String(" ok  ").Foreground(termenv.ANSIGreen).String())
			} else {
				line.WriteString(output.String(" none").Foreground(termenv.ANSIRed).String())
			}
		} else {
			line.WriteString("     ")
		}

		value := ""
		if result.Value != nil {
			value = strconv.FormatInt(*result.Value, 10)
		}
		line.WriteString(output.String(fmt.Sprintf(" %-6s", value)).Foreground(termenv.ANSICyan).String())

		list := utils.MapSlice(result.List, func(v int64) string {
			return strconv.FormatInt(v, 10)
		})
		line.WriteString(output.String(" [" + strings.Join(list, " ") + "]").Faint().String())

		fmt.Fprintln(output, line.String())
	}

	utils.PrintSmallLineSeparator(output)

	if runErr != nil {
		fmt.Fprintln(output, output.String("failed: "+runErr.Error()).Foreground(termenv.ANSIRed))
	} else {
		fmt.Fprintln(output, output.String(fmt.Sprintf("%d steps executed", len(results))).Foreground(termenv.ANSIGreen))
	}
}
