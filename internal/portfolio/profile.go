package portfolio

// Link is a social profile link shown on the card
type Link struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

// Profile is the identity shown at the top of the card
type Profile struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Photo       string `yaml:"photo" json:"photo"`
	Links       []Link `yaml:"links" json:"links"`
}

// DefaultProfile returns the card's built-in profile
func DefaultProfile() Profile {
	return Profile{
		Name:        "Guilherme Romanholi Santos",
		Description: "Estudante da faculdade FIAP, cursando Análise e Desenvolvimento de Sistemas, turma 1TDSPM.",
		Photo:       "/img/guilherme2.jpeg",
		Links: []Link{
			{Label: "LinkedIn", URL: "https://www.linkedin.com/in/guilherme-romanholi-6b71782b7/"},
			{Label: "GitHub", URL: "https://github.com/GuiRomanholi"},
			{Label: "Instagram", URL: "https://www.instagram.com/gui_r0ma/"},
		},
	}
}
