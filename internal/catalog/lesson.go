package catalog

// Category groups lessons by the photographic discipline they teach.
type Category string

const (
	CategoryComposition  Category = "Composition"
	CategoryLighting     Category = "Lighting"
	CategoryVisualDesign Category = "Visual Design"
	CategoryStorytelling Category = "Storytelling"
)

// Lesson is a fixed unit of instructional content with a photo assignment
// and the criteria the submitted photo is graded against.
type Lesson struct {
	ID       string
	Title    string
	Category Category

	// Theory is the lesson body, one entry per paragraph.
	Theory []string

	// Tips are short practical hints shown alongside the theory.
	Tips []string

	// Assignment is the single instruction the learner must photograph.
	Assignment string

	// Criteria are sent verbatim to the evaluator, in order.
	Criteria []string
}
