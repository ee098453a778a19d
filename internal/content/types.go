package content

// Difficulty is the coarse difficulty label attached to a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty labels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Question is a single multiple-choice problem from the bank.
// Text, Options and Solution may embed $...$ and $$...$$ math spans.
type Question struct {
	ID           string     `json:"id"`
	Topic        string     `json:"topic"`
	Difficulty   Difficulty `json:"difficulty"`
	Text         string     `json:"text"`
	Options      []string   `json:"options"`
	CorrectIndex int        `json:"correct"`
	Solution     string     `json:"solution"`
}

// IsCorrect reports whether optionIndex is the correct option.
func (q Question) IsCorrect(optionIndex int) bool {
	return optionIndex == q.CorrectIndex
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// Topic is a study topic. Slug names the topic's note file.
type Topic struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Formula is a formulary entry. Equation is LaTeX without delimiters.
type Formula struct {
	Name        string `json:"name"`
	Equation    string `json:"equation"`
	Description string `json:"description"`
}

// Resource is an external study link.
type Resource struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// On-disk document shapes.

type questionsDoc struct {
	Questions []Question `json:"questions"`
}

type topicsDoc struct {
	Topics []Topic `json:"topics"`
}

type formularyDoc struct {
	Formulary []struct {
		Topic    string    `json:"topic"`
		Formulas []Formula `json:"formulas"`
	} `json:"formulary"`
}

type resourcesDoc struct {
	Resources []Resource `json:"resources"`
}
