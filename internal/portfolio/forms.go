package portfolio

import (
	"github.com/portfolio-cards/gradecard/internal/grades"
)

// FormKind identifies one of the three grade forms
type FormKind string

const (
	FormAdd    FormKind = "adicionar"
	FormEdit   FormKind = "editar"
	FormDelete FormKind = "excluir"
)

// FormKinds returns the forms in display order
func FormKinds() []FormKind {
	return []FormKind{FormAdd, FormEdit, FormDelete}
}

// FormText holds the labels and placeholders of a form
type FormText struct {
	Title       string
	Category    string
	Subject     string
	Choice      string // score picker, edit and delete only
	Input       string // free-text score, add and edit only
	SubmitLabel string
}

// Text returns the labels shown for kind
func (k FormKind) Text() FormText {
	switch k {
	case FormEdit:
		return FormText{
			Title:       "Editar Nota",
			Category:    "Escolha o Tipo",
			Subject:     "Escolha a Disciplina",
			Choice:      "Escolha a Nota para Editar",
			Input:       "Novo valor da nota",
			SubmitLabel: "Editar Nota",
		}
	case FormDelete:
		return FormText{
			Title:       "Deletar Nota",
			Category:    "Escolha a Avaliação",
			Subject:     "Escolha a Matéria",
			Choice:      "Escolha a Nota para Deletar",
			SubmitLabel: "Deletar",
		}
	default:
		return FormText{
			Title:       "Adicionar Nota",
			Category:    "Escolha o Tipo",
			Subject:     "Escolha a Disciplina",
			Input:       "Digite a nota",
			SubmitLabel: "Adicionar Nota",
		}
	}
}

// HasChoice reports whether the form picks an existing score
func (k FormKind) HasChoice() bool {
	return k == FormEdit || k == FormDelete
}

// HasInput reports whether the form takes a typed score
func (k FormKind) HasInput() bool {
	return k == FormAdd || k == FormEdit
}

// ParseFormKind resolves a form by name
func ParseFormKind(name string) (FormKind, bool) {
	for _, k := range FormKinds() {
		if string(k) == name {
			return k, true
		}
	}
	return "", false
}

// Selection is the category, subject and score picked in a form. Empty
// fields are unselected.
type Selection struct {
	Category grades.Category
	Subject  string
	Choice   string
}

// SubjectOptions lists the subjects available for the selected category
func (s Selection) SubjectOptions(set *grades.Set) []string {
	if set == nil || s.Category == "" {
		return nil
	}
	return set.Subjects(s.Category)
}

// ChoiceOptions lists the current scores of the selected subject
func (s Selection) ChoiceOptions(set *grades.Set) []string {
	if set == nil || s.Category == "" || s.Subject == "" {
		return nil
	}
	scores, _ := set.Scores(s.Category, s.Subject)
	out := make([]string, 0, len(scores))
	for _, v := range scores {
		out = append(out, grades.FormatScore(v))
	}
	return out
}

// WithCategory selects c and clears everything that depended on the old category
func (s Selection) WithCategory(c grades.Category) Selection {
	if c == s.Category {
		return s
	}
	return Selection{Category: c}
}

// WithSubject selects subject and clears the score choice
func (s Selection) WithSubject(subject string) Selection {
	if subject == s.Subject {
		return s
	}
	return Selection{Category: s.Category, Subject: subject}
}

// Normalize drops picks that no longer exist in set
func (s Selection) Normalize(set *grades.Set) Selection {
	if !s.Category.Valid() {
		return Selection{}
	}
	if s.Subject != "" && !contains(s.SubjectOptions(set), s.Subject) {
		return Selection{Category: s.Category}
	}
	if s.Choice != "" && !contains(s.ChoiceOptions(set), s.Choice) {
		s.Choice = ""
	}
	return s
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
