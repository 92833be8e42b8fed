package web

import (
	"net/url"

	"github.com/portfolio-cards/gradecard/internal/grades"
	"github.com/portfolio-cards/gradecard/internal/portfolio"
)

type pageData struct {
	Profile  portfolio.Profile
	Flash    string
	Alert    *portfolio.Alert
	Loaded   bool
	Columns  []column
	Detail   *portfolio.Detail
	NoScores string
	Forms    []formData
}

type column struct {
	Category grades.Category
	Subjects []string
}

type option struct {
	Value    string
	Selected bool
}

type formData struct {
	Kind       portfolio.FormKind
	Text       portfolio.FormText
	Categories []option
	Subjects   []option
	Choices    []option
	HasChoice  bool
	HasInput   bool
}

// buildPage assembles the template data. Callers hold s.mu.
//
// Query parameters: tipo and disciplina open the detail modal; with form set
// they instead carry that form's picks.
func (s *Server) buildPage(q url.Values) pageData {
	data := pageData{
		Profile:  s.profile,
		Flash:    s.card.Flash(s.now()),
		Alert:    s.card.Alert,
		Loaded:   s.card.Loaded(),
		NoScores: portfolio.MsgNoScores,
	}

	set := s.card.Grades
	if set != nil {
		for _, c := range grades.Categories() {
			data.Columns = append(data.Columns, column{Category: c, Subjects: set.Subjects(c)})
		}
	}

	active, hasForm := portfolio.ParseFormKind(q.Get("form"))
	if !hasForm && set != nil && q.Get("tipo") != "" && q.Get("disciplina") != "" {
		if c, err := grades.ParseCategory(q.Get("tipo")); err == nil {
			d := portfolio.BuildDetail(*set, c, q.Get("disciplina"))
			data.Detail = &d
		}
	}

	for _, kind := range portfolio.FormKinds() {
		var sel portfolio.Selection
		if hasForm && kind == active {
			sel = portfolio.Selection{
				Category: grades.Category(q.Get("tipo")),
				Subject:  q.Get("disciplina"),
			}.Normalize(set)
		}
		data.Forms = append(data.Forms, buildForm(kind, sel, set))
	}

	return data
}

func buildForm(kind portfolio.FormKind, sel portfolio.Selection, set *grades.Set) formData {
	f := formData{
		Kind:      kind,
		Text:      kind.Text(),
		HasChoice: kind.HasChoice(),
		HasInput:  kind.HasInput(),
	}

	for _, c := range grades.Categories() {
		f.Categories = append(f.Categories, option{Value: string(c), Selected: c == sel.Category})
	}
	for _, subject := range sel.SubjectOptions(set) {
		f.Subjects = append(f.Subjects, option{Value: subject, Selected: subject == sel.Subject})
	}
	for _, v := range sel.ChoiceOptions(set) {
		f.Choices = append(f.Choices, option{Value: v})
	}
	return f
}
