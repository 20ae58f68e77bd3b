package evaluation

import (
	"fmt"
	"strings"

	"github.com/abhisek/aperture/internal/catalog"
)

// LessonContext is the lesson data sent alongside a photo.
type LessonContext struct {
	Title      string
	Category   string
	Assignment string
	Criteria   []string
}

// ContextFor builds the evaluation context for a catalog lesson.
func ContextFor(l catalog.Lesson) LessonContext {
	criteria := make([]string, len(l.Criteria))
	copy(criteria, l.Criteria)
	return LessonContext{
		Title:      l.Title,
		Category:   string(l.Category),
		Assignment: l.Assignment,
		Criteria:   criteria,
	}
}

const systemPrompt = `You are an expert photography instructor reviewing a student's photo submission. Evaluate the photo against the lesson context and the specific grading criteria provided.

Always respond by calling the "evaluate_photo" tool with your structured evaluation. Be encouraging but honest. Give constructive, specific feedback that refers to what you actually see in the image.

Rating guide:
- 5 stars: Exceptional execution of the concept
- 4 stars: Strong understanding with minor areas for improvement
- 3 stars: Meets the basic requirements (passing grade)
- 2 stars: Shows some understanding but needs significant improvement
- 1 star: Does not demonstrate the concept

Set "pass" to true when the rating is 3 or higher. List 2 to 3 strengths and 2 to 3 improvements, and finish with an encouraging 2 to 3 sentence summary.`

// buildUserPrompt renders the lesson context. Criteria appear verbatim and
// in order, numbered from 1.
func buildUserPrompt(lc LessonContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Lesson: \"%s\" (%s)\n", lc.Title, lc.Category)
	fmt.Fprintf(&b, "Assignment: %s\n\n", lc.Assignment)
	b.WriteString("Grading criteria:\n")
	for i, c := range lc.Criteria {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c)
	}
	b.WriteString("\nPlease evaluate this student's photo submission against these criteria.")
	return b.String()
}
