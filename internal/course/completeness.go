package course

import (
	"encoding/json"
	"strings"

	"github.com/ericzhangohoh/caplet/internal/domain"
)

// HasContent reports whether a lesson has anything to render. Slides are
// checked first, then text content, then the video link.
func HasContent(lesson *domain.Lesson) bool {
	if lesson == nil {
		return false
	}
	switch slides := lesson.Slides; slides.Kind {
	case domain.SlidesRaw:
		if len(slides.Items) > 0 {
			return true
		}
	case domain.SlidesEncoded:
		if strings.TrimSpace(slides.Encoded) != "" && len(slidesOrEmpty(slides.Encoded)) > 0 {
			return true
		}
	}
	if lesson.Content.Trimmed() != "" {
		return true
	}
	return lesson.VideoURL.Trimmed() != ""
}

// slidesOrEmpty decode failures mean no slides
func slidesOrEmpty(encoded string) []json.RawMessage {
	items, err := domain.DecodeSlides(encoded)
	if err != nil {
		return nil
	}
	return items
}
