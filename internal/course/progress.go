package course

import (
	"sort"

	"github.com/ericzhangohoh/caplet/internal/domain"
)

// IsLessonComplete a lesson counts as completed only when it has content and
// some progress entry for it says "completed". Lessons whose content was
// removed never count, whatever stale progress says.
func IsLessonComplete(lesson *domain.Lesson, progress *domain.ProgressRecord) bool {
	if !HasContent(lesson) || progress == nil {
		return false
	}
	for _, p := range progress.LessonProgress {
		if p.LessonID == lesson.ID && p.Status == domain.StatusCompleted {
			return true
		}
	}
	return false
}

// AggregateModule counts completed lessons, each lesson at most once
func AggregateModule(lessons []domain.Lesson, progress *domain.ProgressRecord) domain.ModuleProgress {
	result := domain.ModuleProgress{Total: len(lessons)}
	for i := range lessons {
		if IsLessonComplete(&lessons[i], progress) {
			result.Completed++
		}
	}
	return result
}

// SortLessons returns the lessons in display order. Lessons without an order
// sort as 0 and ties keep their fetch order.
func SortLessons(lessons []domain.Lesson) []domain.Lesson {
	sorted := make([]domain.Lesson, len(lessons))
	copy(sorted, lessons)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortKey() < sorted[j].SortKey()
	})
	return sorted
}
