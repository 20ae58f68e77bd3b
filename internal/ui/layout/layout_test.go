package layout

import (
	"strings"
	"testing"
)

func TestRenderCourseProgressLabel(t *testing.T) {
	tests := []struct {
		completed, total int
		want             string
	}{
		{0, 6, "0/6 Lessons"},
		{3, 6, "3/6 Lessons"},
		{9, 6, "6/6 Lessons"},
		{-1, 6, "0/6 Lessons"},
	}
	for _, tt := range tests {
		got := RenderCourseProgress(tt.completed, tt.total)
		if !strings.Contains(got, tt.want) {
			t.Errorf("RenderCourseProgress(%d, %d) = %q, want it to contain %q", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestRenderCourseProgressEmptyWithoutCourse(t *testing.T) {
	if got := RenderCourseProgress(0, 0); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestHeaderCarriesBrandAndTitle(t *testing.T) {
	h := RenderHeader("Leading Lines", 1, 6, 100)
	for _, want := range []string{"Aperture", "Leading Lines", "1/6 Lessons"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("expected narrow terminal to be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("expected minimum size to fit")
	}
}
