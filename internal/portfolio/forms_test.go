package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/portfolio-cards/gradecard/internal/grades"
)

func TestSelectionOptions(t *testing.T) {
	set := sampleSet()

	sel := Selection{}
	assert.Nil(t, sel.SubjectOptions(&set))

	sel = sel.WithCategory(grades.Challenge)
	assert.Equal(t, []string{"Front-End"}, sel.SubjectOptions(&set))
	assert.Nil(t, sel.ChoiceOptions(&set))

	sel = sel.WithSubject("Front-End")
	assert.Equal(t, []string{"8", "9"}, sel.ChoiceOptions(&set))

	assert.Nil(t, sel.SubjectOptions(nil), "nothing loaded yet")
}

func TestSelectionCategoryChangeResets(t *testing.T) {
	sel := Selection{Category: grades.Challenge, Subject: "Front-End", Choice: "8"}

	assert.Equal(t, sel, sel.WithCategory(grades.Challenge), "same category keeps picks")
	assert.Equal(t, Selection{Category: grades.Global}, sel.WithCategory(grades.Global))
	assert.Equal(t, Selection{Category: grades.Challenge, Subject: "Back-End"}, sel.WithSubject("Back-End"))
}

func TestSelectionNormalize(t *testing.T) {
	set := sampleSet()

	tests := []struct {
		name string
		in   Selection
		want Selection
	}{
		{"valid picks survive", Selection{grades.Challenge, "Front-End", "9"}, Selection{grades.Challenge, "Front-End", "9"}},
		{"unknown category", Selection{"Sprint", "Front-End", "9"}, Selection{}},
		{"subject from another category", Selection{grades.Global, "Front-End", "9"}, Selection{Category: grades.Global}},
		{"deleted score", Selection{grades.Challenge, "Front-End", "10"}, Selection{grades.Challenge, "Front-End", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize(&set))
		})
	}
}

func TestFormKinds(t *testing.T) {
	for _, k := range FormKinds() {
		got, ok := ParseFormKind(string(k))
		assert.True(t, ok)
		assert.Equal(t, k, got)
		assert.NotEmpty(t, k.Text().Title)
	}
	_, ok := ParseFormKind("apagar")
	assert.False(t, ok)

	assert.True(t, FormAdd.HasInput())
	assert.False(t, FormAdd.HasChoice())
	assert.True(t, FormDelete.HasChoice())
	assert.False(t, FormDelete.HasInput())
}
