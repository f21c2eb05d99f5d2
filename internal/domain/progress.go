package domain

import "encoding/json"

// StatusCompleted the only lesson status the site acts on
const StatusCompleted = "completed"

// LessonProgress one lesson's status for the viewer
type LessonProgress struct {
	LessonID ID     `json:"lessonId"`
	Status   string `json:"status"`
}

// ProgressRecord per viewer, per course progress
type ProgressRecord struct {
	CourseID       ID               `json:"courseId,omitempty"`
	LessonProgress []LessonProgress `json:"lessonProgress"`
}

// EmptyProgress record used whenever progress can't be fetched
func EmptyProgress() *ProgressRecord {
	return &ProgressRecord{LessonProgress: []LessonProgress{}}
}

// ModuleProgress completion counts of a group of lessons
type ModuleProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Percent completed share in [0, 100], 0 for an empty group
func (p ModuleProgress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total) * 100
}

// Add sums two counts
func (p ModuleProgress) Add(o ModuleProgress) ModuleProgress {
	return ModuleProgress{Completed: p.Completed + o.Completed, Total: p.Total + o.Total}
}

// MarshalJSON includes the derived percentage
func (p ModuleProgress) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Completed int     `json:"completed"`
		Total     int     `json:"total"`
		Percent   float64 `json:"percent"`
	}{p.Completed, p.Total, p.Percent()})
}
