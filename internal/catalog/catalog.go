package catalog

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// ErrEmptyCatalog is returned when a catalog is built without lessons.
var ErrEmptyCatalog = errors.New("catalog has no lessons")

// Catalog is an ordered, immutable list of lessons indexed by id.
// Catalog order defines the lesson sequence.
type Catalog struct {
	lessons []Lesson
	index   map[string]int
}

// New builds a catalog from lessons in the given order. Lesson ids must be
// unique and non-empty.
func New(lessons ...Lesson) (*Catalog, error) {
	if len(lessons) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		lessons: make([]Lesson, len(lessons)),
		index:   make(map[string]int, len(lessons)),
	}
	for i, l := range lessons {
		if l.ID == "" {
			return nil, fmt.Errorf("lesson %d has an empty id", i)
		}
		if _, dup := c.index[l.ID]; dup {
			return nil, fmt.Errorf("duplicate lesson id %q", l.ID)
		}
		c.lessons[i] = l
		c.index[l.ID] = i
	}
	return c, nil
}

// Default returns the built-in photography course.
func Default() *Catalog {
	c, err := New(seedLessons()...)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid seed data: %v", err))
	}
	return c
}

// Len returns the number of lessons.
func (c *Catalog) Len() int {
	return len(c.lessons)
}

// All returns a copy of the lessons in catalog order.
func (c *Catalog) All() []Lesson {
	out := make([]Lesson, len(c.lessons))
	copy(out, c.lessons)
	return out
}

// IDs returns lesson ids in catalog order.
func (c *Catalog) IDs() []string {
	return lo.Map(c.lessons, func(l Lesson, _ int) string { return l.ID })
}

// First returns the first lesson of the course.
func (c *Catalog) First() Lesson {
	return c.lessons[0]
}

// Get returns the lesson with the given id.
func (c *Catalog) Get(id string) (Lesson, bool) {
	i, ok := c.index[id]
	if !ok {
		return Lesson{}, false
	}
	return c.lessons[i], true
}

// Contains reports whether id names a lesson in the catalog.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// IndexOf returns the zero-based position of id, or -1.
func (c *Catalog) IndexOf(id string) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

// Next returns the lesson following id. It returns false for the last
// lesson and for unknown ids.
func (c *Catalog) Next(id string) (Lesson, bool) {
	i, ok := c.index[id]
	if !ok || i+1 >= len(c.lessons) {
		return Lesson{}, false
	}
	return c.lessons[i+1], true
}

// IsLast reports whether id is the final lesson of the course.
func (c *Catalog) IsLast(id string) bool {
	return c.IndexOf(id) == len(c.lessons)-1
}
