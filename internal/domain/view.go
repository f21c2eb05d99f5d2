package domain

// CourseSummary course fields shown in page headers
type CourseSummary struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ModuleSummary module fields shown in listings
type ModuleSummary struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// LessonView a lesson row on the module page
type LessonView struct {
	Lesson     Lesson `json:"lesson"`
	HasContent bool   `json:"has_content"`
	Completed  bool   `json:"completed"`
}

// ModuleView everything the module page renders
type ModuleView struct {
	Course   CourseSummary  `json:"course"`
	Module   ModuleSummary  `json:"module"`
	Lessons  []LessonView   `json:"lessons"`
	Progress ModuleProgress `json:"progress"`
}

// ModuleEntry a module row on the course page
type ModuleEntry struct {
	Module   ModuleSummary  `json:"module"`
	Progress ModuleProgress `json:"progress"`
}

// CourseView everything the course page renders
type CourseView struct {
	Course   CourseSummary  `json:"course"`
	Modules  []ModuleEntry  `json:"modules"`
	Progress ModuleProgress `json:"progress"`
}

// Summary header fields of the course, zero for a nil course
func (c *Course) Summary() CourseSummary {
	if c == nil {
		return CourseSummary{}
	}
	return CourseSummary{ID: c.ID, Title: c.Title, Description: c.Description}
}

// Summary listing fields of the module
func (m *Module) Summary() ModuleSummary {
	return ModuleSummary{ID: m.ID, Title: m.Title, Description: m.Description}
}
