package config

import (
	"strings"

	"github.com/muesli/termenv"
)

type colorEnv struct {
	forceColor         bool
	noColor            bool
	truecolorColorterm bool
	term256Color       bool
}

func readColorEnv(lookupEnv func(string) (string, bool)) (env colorEnv) {
	// FORCE COLOR

	if s, ok := lookupEnv("FORCE_COLOR"); ok {
		env.forceColor = isTruthy(s)
	}

	//NO_COLOR

	if s, ok := lookupEnv("NO_COLOR"); ok {
		env.noColor = isTruthy(s)
	}

	//COLORTERM

	if s, ok := lookupEnv("COLORTERM"); ok {
		env.truecolorColorterm = s == "truecolor" || s == "24bit"
	}

	//TERM

	if term, ok := lookupEnv("TERM"); ok && strings.Contains(term, "256color") {
		env.term256Color = true
	}

	return
}

func (env colorEnv) shouldColorize() bool {
	return !env.noColor && (env.forceColor || env.truecolorColorterm || env.term256Color)
}

func (env colorEnv) profile() termenv.Profile {
	switch {
	case env.noColor:
		return termenv.Ascii
	case env.truecolorColorterm:
		return termenv.TrueColor
	case env.term256Color:
		return termenv.ANSI256
	case env.forceColor:
		return termenv.ANSI
	default:
		return termenv.Ascii
	}
}

func isTruthy(s string) bool {
	return len(s) != 0 && s != "false" && s != "0"
}
