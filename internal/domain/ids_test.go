package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDAcceptsNumbersAndStrings(t *testing.T) {
	var payload struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
		D ID `json:"d"`
	}
	err := json.Unmarshal([]byte(`{"a": 3, "b": "3", "c": 3.0, "d": null}`), &payload)
	require.NoError(t, err)

	assert.Equal(t, ID("3"), payload.A)
	assert.Equal(t, ID("3"), payload.B)
	assert.Equal(t, ID("3"), payload.C)
	assert.Equal(t, ID(""), payload.D)
}

func TestTextCoercion(t *testing.T) {
	cases := map[string]Text{
		`"hello"`:        "hello",
		`"   "`:          "   ",
		`42`:             "42",
		`0`:              "",
		`true`:           "true",
		`false`:          "",
		`null`:           "",
		`{"a":1}`:        `{"a":1}`,
		`[]`:             "",
		`[" "]`:          " ",
		`[1, "a", null]`: "1,a,",
		`[[1, 2], [3]]`:  "1,2,3",
	}
	for input, want := range cases {
		input, want := input, want
		t.Run(input, func(t *testing.T) {
			var got Text
			require.NoError(t, json.Unmarshal([]byte(input), &got))
			assert.Equal(t, want, got)
		})
	}
}

func TestLessonOrder(t *testing.T) {
	var lesson Lesson
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "title": "Budgets"}`), &lesson))
	assert.Nil(t, lesson.Order)
	assert.Equal(t, float64(0), lesson.SortKey())
	assert.Equal(t, "", lesson.OrderLabel())

	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "order": 2}`), &lesson))
	assert.Equal(t, float64(2), lesson.SortKey())
	assert.Equal(t, "2", lesson.OrderLabel())
}

func TestFindModuleComparesText(t *testing.T) {
	var course Course
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "c1",
		"modules": [{"id": 7, "lessons": [{"id": 1}, {"id": 2}]}, {"id": "intro", "lessons": []}]
	}`), &course))

	m := course.FindModule("7")
	require.NotNil(t, m)
	assert.Len(t, m.Lessons, 2)
	assert.NotNil(t, course.FindModule("intro"))
	assert.Nil(t, course.FindModule("missing"))
	assert.Equal(t, 2, course.LessonCount())

	var nilCourse *Course
	assert.Nil(t, nilCourse.FindModule("7"))
}

func TestModuleProgressPercent(t *testing.T) {
	assert.Equal(t, float64(50), ModuleProgress{Completed: 2, Total: 4}.Percent())
	assert.Equal(t, float64(0), ModuleProgress{}.Percent())

	raw, err := json.Marshal(ModuleProgress{Completed: 1, Total: 4})
	require.NoError(t, err)
	assert.JSONEq(t, `{"completed": 1, "total": 4, "percent": 25}`, string(raw))
}
