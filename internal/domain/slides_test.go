package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLesson(t *testing.T, raw string) Lesson {
	t.Helper()
	var l Lesson
	require.NoError(t, json.Unmarshal([]byte(raw), &l))
	return l
}

func TestSlidesKinds(t *testing.T) {
	l := decodeLesson(t, `{"id": 1, "slides": [{"title": "a"}, {"title": "b"}]}`)
	assert.Equal(t, SlidesRaw, l.Slides.Kind)
	assert.Len(t, l.Slides.Items, 2)

	l = decodeLesson(t, `{"id": 1, "slides": "[{\"title\": \"a\"}]"}`)
	assert.Equal(t, SlidesEncoded, l.Slides.Kind)

	l = decodeLesson(t, `{"id": 1, "slides": null}`)
	assert.Equal(t, SlidesAbsent, l.Slides.Kind)

	l = decodeLesson(t, `{"id": 1}`)
	assert.Equal(t, SlidesAbsent, l.Slides.Kind)

	l = decodeLesson(t, `{"id": 1, "slides": {"title": "a"}}`)
	assert.Equal(t, SlidesAbsent, l.Slides.Kind)

	l = decodeLesson(t, `{"id": 1, "slides": 12}`)
	assert.Equal(t, SlidesAbsent, l.Slides.Kind)
}

func TestSlidesNormalize(t *testing.T) {
	s := EncodedSlides(`[{"title": "a"}]`).Normalize()
	assert.Equal(t, SlidesRaw, s.Kind)
	assert.Len(t, s.Items, 1)

	s = EncodedSlides(`[]`).Normalize()
	assert.Equal(t, SlidesRaw, s.Kind)
	assert.Empty(t, s.Items)

	assert.Equal(t, SlidesAbsent, EncodedSlides("not json").Normalize().Kind)
	assert.Equal(t, SlidesAbsent, EncodedSlides("   ").Normalize().Kind)
	assert.Equal(t, SlidesAbsent, EncodedSlides(`{"title": "a"}`).Normalize().Kind)

	raw := RawSlides(json.RawMessage(`{}`))
	assert.Equal(t, raw, raw.Normalize())
}

func TestSlidesMarshal(t *testing.T) {
	raw, err := json.Marshal(RawSlides(json.RawMessage(`{"title":"a"}`)))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title":"a"}]`, string(raw))

	raw, err = json.Marshal(Slides{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))

	raw, err = json.Marshal(EncodedSlides("[]"))
	require.NoError(t, err)
	assert.Equal(t, `"[]"`, string(raw))
}
