package domain

import (
	"context"
	"strconv"
)

// Lesson atomic content unit, may carry text, video or slides
type Lesson struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Order       *float64 `json:"order,omitempty"`
	Content     Text     `json:"content,omitempty"`
	VideoURL    Text     `json:"videoUrl,omitempty"`
	Slides      Slides   `json:"slides"`
}

// SortKey display order, a missing order sorts as 0
func (l Lesson) SortKey() float64 {
	if l.Order == nil {
		return 0
	}
	return *l.Order
}

// OrderLabel order as shown next to the title, empty when missing
func (l Lesson) OrderLabel() string {
	if l.Order == nil {
		return ""
	}
	return strconv.FormatFloat(*l.Order, 'f', -1, 64)
}

// Module a grouping of lessons within a course
type Module struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Lessons     []Lesson `json:"lessons"`
}

// Course top-level content unit
type Course struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Modules     []Module `json:"modules"`
}

// FindModule looks a module up by identifier, nil when absent
func (c *Course) FindModule(id ID) *Module {
	if c == nil {
		return nil
	}
	for i := range c.Modules {
		if c.Modules[i].ID == id {
			return &c.Modules[i]
		}
	}
	return nil
}

// LessonCount number of lessons across all modules
func (c *Course) LessonCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, m := range c.Modules {
		n += len(m.Lessons)
	}
	return n
}

// Viewer whoever is looking at a page. The zero value is anonymous.
type Viewer struct {
	Token string
}

// Anonymous reports whether the viewer presented no credential
func (v Viewer) Anonymous() bool {
	return v.Token == ""
}

// CourseDirectory source of course records
type CourseDirectory interface {
	GetCourse(ctx context.Context, id ID) (*Course, error)
	ListCourses(ctx context.Context) ([]*Course, error)
}

// ProgressService source of per-viewer progress records
type ProgressService interface {
	GetCourseProgress(ctx context.Context, courseID ID, viewer Viewer) (*ProgressRecord, error)
}

// CourseUseCase fetch and derive the data behind the course pages
type CourseUseCase interface {
	ListCourses(ctx context.Context) ([]*Course, error)
	LoadCourse(ctx context.Context, courseID ID, viewer Viewer) (*CourseView, error)
	LoadModule(ctx context.Context, courseID, moduleID ID, viewer Viewer) (*ModuleView, error)
}
