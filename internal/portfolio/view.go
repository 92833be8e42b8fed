package portfolio

import (
	"time"

	"github.com/portfolio-cards/gradecard/internal/grades"
)

// User-facing messages
const (
	MsgAdded        = "Nota adicionada com sucesso!"
	MsgEdited       = "Nota alterada com sucesso!"
	MsgDeleted      = "A nota foi excluída com sucesso!"
	MsgDeleteFailed = "Houve um erro ao tentar excluir a nota. Tente novamente."
	MsgNoScores     = "Sem notas cadastradas."
)

// Detail is the content of the score detail modal
type Detail struct {
	Category grades.Category
	Subject  string
	Lines    []string
}

// Empty reports whether the subject has no scores
func (d Detail) Empty() bool {
	return len(d.Lines) == 0
}

// BuildDetail projects the scores of (c, subject) into display lines
func BuildDetail(set grades.Set, c grades.Category, subject string) Detail {
	scores, _ := set.Scores(c, subject)
	return Detail{
		Category: c,
		Subject:  subject,
		Lines:    grades.DetailLines(c, scores),
	}
}

// Alert is a blocking acknowledgement. It stays until dismissed.
type Alert struct {
	Text   string
	Failed bool
}

// View is the card state shared by every front end. A nil Grades means the
// initial load has not succeeded.
type View struct {
	Grades *grades.Set
	Detail *Detail
	Alert  *Alert

	flash      string
	flashSeq   uint64
	flashUntil time.Time
}

// Loaded reports whether a grade set is available
func (v *View) Loaded() bool {
	return v.Grades != nil
}

// ReplaceGrades swaps the whole local grade set for set
func (v *View) ReplaceGrades(set grades.Set) {
	v.Grades = &set
}

// RemoveScore drops every score equal to value from (c, subject) in the local
// copy. No-op while nothing is loaded.
func (v *View) RemoveScore(c grades.Category, subject string, value float64) {
	if v.Grades == nil {
		return
	}
	next := v.Grades.WithoutScore(c, subject, value)
	v.Grades = &next
}

// OpenDetail shows the modal for (c, subject). Returns false when grades are
// not loaded.
func (v *View) OpenDetail(c grades.Category, subject string) bool {
	if v.Grades == nil {
		return false
	}
	d := BuildDetail(*v.Grades, c, subject)
	v.Detail = &d
	return true
}

// CloseDetail hides the modal and drops its data
func (v *View) CloseDetail() {
	v.Detail = nil
}

// SetFlash shows a transient message until now+delay and returns its
// sequence number. Pass the number to ClearFlash when the timer fires.
func (v *View) SetFlash(text string, now time.Time, delay time.Duration) uint64 {
	v.flashSeq++
	v.flash = text
	v.flashUntil = now.Add(delay)
	return v.flashSeq
}

// ClearFlash clears the transient message only if seq is still the current one
func (v *View) ClearFlash(seq uint64) {
	if seq != v.flashSeq {
		return
	}
	v.flash = ""
	v.flashUntil = time.Time{}
}

// Flash returns the transient message visible at now, if any
func (v *View) Flash(now time.Time) string {
	if v.flash == "" || !now.Before(v.flashUntil) {
		return ""
	}
	return v.flash
}

// ShowAlert raises a blocking acknowledgement
func (v *View) ShowAlert(text string, failed bool) {
	v.Alert = &Alert{Text: text, Failed: failed}
}

// DismissAlert clears the blocking acknowledgement
func (v *View) DismissAlert() {
	v.Alert = nil
}
