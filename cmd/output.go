package cmd

import (
	"strings"

	"github.com/fatih/color"
)

var (
	heading = color.New(color.Bold, color.FgHiYellow)
	good    = color.New(color.FgGreen)
	bad     = color.New(color.FgRed)
	dim     = color.New(color.FgHiBlack)
	gold    = color.New(color.FgYellow)
)

// stars renders a 1-5 rating; nil renders as dashes.
func stars(rating *int) string {
	if rating == nil {
		return dim.Sprint("-----")
	}
	n := *rating
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return gold.Sprint(strings.Repeat("★", n)) + dim.Sprint(strings.Repeat("☆", 5-n))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
