package portfolio

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/portfolio-cards/gradecard/internal/grades"
)

func loadedView() *View {
	v := &View{}
	v.ReplaceGrades(grades.NewSet().
		With(grades.Challenge, "Front-End", 8, 9, 8).
		With(grades.Global, "Python", 7, 6.5).
		With(grades.Checkpoint, "Java"))
	return v
}

func TestOpenDetail(t *testing.T) {
	tests := []struct {
		name     string
		category grades.Category
		subject  string
		want     []string
	}{
		{"challenge uses sprints", grades.Challenge, "Front-End", []string{"1ª sprint: 8", "2ª sprint: 9", "3ª sprint: 8"}},
		{"global uses semesters", grades.Global, "Python", []string{"1º semestre: 7", "2º semestre: 6.5"}},
		{"no scores", grades.Checkpoint, "Java", []string{}},
		{"unknown subject", grades.Checkpoint, "Go", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := loadedView()
			if !v.OpenDetail(tt.category, tt.subject) {
				t.Fatal("OpenDetail returned false on a loaded view")
			}
			if diff := cmp.Diff(tt.want, v.Detail.Lines); diff != "" {
				t.Errorf("detail lines mismatch (-want +got):\n%s", diff)
			}
			if v.Detail.Empty() != (len(tt.want) == 0) {
				t.Errorf("Empty() = %v", v.Detail.Empty())
			}

			v.CloseDetail()
			if v.Detail != nil {
				t.Error("expected detail to be cleared")
			}
		})
	}
}

func TestOpenDetailNotLoaded(t *testing.T) {
	v := &View{}
	if v.OpenDetail(grades.Challenge, "Front-End") {
		t.Error("expected OpenDetail to refuse before load")
	}
	if v.Detail != nil {
		t.Error("expected no detail")
	}
}

func TestRemoveScoreFiltersOnlyTarget(t *testing.T) {
	v := loadedView()
	v.RemoveScore(grades.Challenge, "Front-End", 8)

	want := grades.NewSet().
		With(grades.Challenge, "Front-End", 9).
		With(grades.Global, "Python", 7, 6.5).
		With(grades.Checkpoint, "Java")
	if diff := cmp.Diff(want, *v.Grades); diff != "" {
		t.Errorf("grades mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveScoreNotLoaded(t *testing.T) {
	v := &View{}
	v.RemoveScore(grades.Challenge, "Front-End", 8)
	if v.Loaded() {
		t.Error("RemoveScore must not create a grade set")
	}
}

func TestFlashExpiry(t *testing.T) {
	v := &View{}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	seq := v.SetFlash(MsgAdded, now, 3*time.Second)
	if got := v.Flash(now.Add(time.Second)); got != MsgAdded {
		t.Errorf("Flash() = %q, want %q", got, MsgAdded)
	}
	if got := v.Flash(now.Add(3 * time.Second)); got != "" {
		t.Errorf("Flash() after delay = %q, want empty", got)
	}

	v.ClearFlash(seq)
	if got := v.Flash(now); got != "" {
		t.Errorf("Flash() after clear = %q, want empty", got)
	}
}

func TestStaleFlashTimerKeepsNewerMessage(t *testing.T) {
	v := &View{}
	now := time.Now()

	first := v.SetFlash(MsgAdded, now, 3*time.Second)
	v.SetFlash(MsgEdited, now.Add(time.Second), 3*time.Second)

	v.ClearFlash(first)
	if got := v.Flash(now.Add(2 * time.Second)); got != MsgEdited {
		t.Errorf("Flash() = %q, want %q", got, MsgEdited)
	}
}

func TestAlert(t *testing.T) {
	v := &View{}
	v.ShowAlert(MsgDeleteFailed, true)
	if v.Alert == nil || !v.Alert.Failed || v.Alert.Text != MsgDeleteFailed {
		t.Fatalf("unexpected alert: %+v", v.Alert)
	}
	v.DismissAlert()
	if v.Alert != nil {
		t.Error("expected alert to be dismissed")
	}
}
