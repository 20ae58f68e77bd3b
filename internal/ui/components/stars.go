package components

import (
	"strings"

	"github.com/abhisek/aperture/internal/ui/theme"
)

// MaxStars is the top of the rating scale.
const MaxStars = 5

// Stars renders a 1-5 rating as filled and empty stars. Out-of-range
// ratings are clamped.
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > MaxStars {
		rating = MaxStars
	}
	return theme.StarOn.Render(strings.Repeat("★", rating)) +
		theme.StarOff.Render(strings.Repeat("☆", MaxStars-rating))
}

// PlainStars renders a rating without styling, for logs and plain output.
func PlainStars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > MaxStars {
		rating = MaxStars
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", MaxStars-rating)
}
