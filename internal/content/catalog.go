package content

import (
	"slices"
	"strings"
)

// Catalog is the read-only study content: topics, questions, formulas,
// notes and resources. All accessors return copies.
type Catalog struct {
	topics       []Topic
	topicIndex   map[string]int
	questions    []Question
	byID         map[string]int
	formulas     map[string][]Formula
	formulaOrder []string
	notes        map[string]string
	resources    []Resource
}

func newCatalog(topics []Topic, questions []Question, formulas map[string][]Formula, formulaOrder []string, notes map[string]string, resources []Resource) *Catalog {
	c := &Catalog{
		topics:       topics,
		topicIndex:   make(map[string]int, len(topics)),
		questions:    questions,
		byID:         make(map[string]int, len(questions)),
		formulas:     formulas,
		formulaOrder: formulaOrder,
		notes:        notes,
		resources:    resources,
	}
	for i, t := range topics {
		c.topicIndex[t.Name] = i
	}
	for i, q := range questions {
		c.byID[q.ID] = i
	}
	return c
}

// Topics returns all topics in display order.
func (c *Catalog) Topics() []Topic {
	return slices.Clone(c.topics)
}

// TopicNames returns the topic names in display order.
func (c *Catalog) TopicNames() []string {
	names := make([]string, len(c.topics))
	for i, t := range c.topics {
		names[i] = t.Name
	}
	return names
}

// HasTopic reports whether name is a known topic.
func (c *Catalog) HasTopic(name string) bool {
	_, ok := c.topicIndex[name]
	return ok
}

// FindTopic resolves a topic by exact name, slug, or case-insensitive name.
func (c *Catalog) FindTopic(query string) (Topic, bool) {
	if i, ok := c.topicIndex[query]; ok {
		return c.topics[i], true
	}
	for _, t := range c.topics {
		if t.Slug == query || strings.EqualFold(t.Name, query) {
			return t, true
		}
	}
	return Topic{}, false
}

// Questions returns every question in catalog order.
func (c *Catalog) Questions() []Question {
	out := make([]Question, len(c.questions))
	for i, q := range c.questions {
		out[i] = cloneQuestion(q)
	}
	return out
}

// Question looks up a question by ID.
func (c *Catalog) Question(id string) (Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	return cloneQuestion(c.questions[i]), true
}

// QuestionsFor returns the questions whose topic is in topics, in catalog
// order.
func (c *Catalog) QuestionsFor(topics []string) []Question {
	var out []Question
	for _, q := range c.questions {
		if slices.Contains(topics, q.Topic) {
			out = append(out, cloneQuestion(q))
		}
	}
	return out
}

// CountFor returns the number of questions whose topic is in topics.
func (c *Catalog) CountFor(topics []string) int {
	n := 0
	for _, q := range c.questions {
		if slices.Contains(topics, q.Topic) {
			n++
		}
	}
	return n
}

// Formulas returns the formulary entries for topic.
func (c *Catalog) Formulas(topic string) []Formula {
	return slices.Clone(c.formulas[topic])
}

// FormulaTopics returns the topics that have formulary entries, in the
// order they appear in the formulary.
func (c *Catalog) FormulaTopics() []string {
	return slices.Clone(c.formulaOrder)
}

// Note returns the HTML note for topic.
func (c *Catalog) Note(topic string) (string, bool) {
	n, ok := c.notes[topic]
	return n, ok
}

// Resources returns the external study links.
func (c *Catalog) Resources() []Resource {
	return slices.Clone(c.resources)
}

func cloneQuestion(q Question) Question {
	q.Options = slices.Clone(q.Options)
	return q
}
