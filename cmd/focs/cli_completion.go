package main

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var (
	scriptFiles = predict.Files("*.yaml")

	completer = &complete.Command{
		Sub: map[string]*complete.Command{
			RUN_SUBCMD: {
				Flags: map[string]complete.Predictor{
					"json":  predict.Nothing,
					"v":     predict.Nothing,
					"width": predict.Set{"1", "2", "4", "8"},
				},
				Args: scriptFiles,
			},
			CHECK_SUBCMD: {
				Flags: map[string]complete.Predictor{
					"width": predict.Set{"1", "2", "4", "8"},
				},
				Args: scriptFiles,
			},
			HELP_SUBCMD: {
				Args: predict.Set{RUN_SUBCMD, CHECK_SUBCMD},
			},
			INSTALL_COMPLETIONS_SUBCMD:   {},
			UNINSTALL_COMPLETIONS_SUBCMD: {},
		},
	}
)
