package main

import (
	"flag"
	"fmt"
	"io"
	"slices"
)

const (
	RUN_SUBCMD                   = "run"
	CHECK_SUBCMD                 = "check"
	HELP_SUBCMD                  = "help"
	INSTALL_COMPLETIONS_SUBCMD   = "install-completions"
	UNINSTALL_COMPLETIONS_SUBCMD = "uninstall-completions"
)

var (
	SUBCOMMANDS = []string{
		RUN_SUBCMD, CHECK_SUBCMD, HELP_SUBCMD, "--help", "-h",
		INSTALL_COMPLETIONS_SUBCMD, UNINSTALL_COMPLETIONS_SUBCMD,
	}

	CLI_SUBCOMMAND_DESCRIPTIONS = [][2]string{
		{RUN_SUBCMD, "run a list script and print the result of each step"},
		{CHECK_SUBCMD, "check list scripts without running them"},
		{HELP_SUBCMD, "show help"},
		{INSTALL_COMPLETIONS_SUBCMD, "install shell completions for " + COMMAND_NAME},
		{UNINSTALL_COMPLETIONS_SUBCMD, "uninstall shell completions"},
	}

	CLI_SUBCOMMAND_DESCRIPTION_MAP = map[string]string{}

	FOCS_CMD_HELP = "commands:\n"
)

func init() {
	for _, entry := range CLI_SUBCOMMAND_DESCRIPTIONS {
		cmd, desc := entry[0], entry[1]
		CLI_SUBCOMMAND_DESCRIPTION_MAP[cmd] = desc
		FOCS_CMD_HELP += "\t" + cmd + " - " + desc + "\n"
	}
	FOCS_CMD_HELP += "\nType `" + COMMAND_NAME + " help <command>` to get command-specific help.\n"
}

func showHelp(flags *flag.FlagSet, args []string, out io.Writer) bool {
	//only show help
	if slices.Contains(args, "-h") || slices.Contains(args, "--help") {

		cmd := flags.Name()
		if desc, ok := CLI_SUBCOMMAND_DESCRIPTION_MAP[cmd]; ok {
			fmt.Fprintln(out, desc)
		}

		flags.SetOutput(out)
		fmt.Fprint(out, "\noptions:\n")
		flags.PrintDefaults()

		return true
	}

	return false
}
