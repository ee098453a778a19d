package content

import (
	"fmt"
	"strings"
)

// validateCatalog performs the cross-document checks that a JSON schema
// cannot express. Returns a combined error describing all problems found.
func validateCatalog(c *Catalog) error {
	var errs []string

	slugs := make(map[string]bool, len(c.topics))
	if len(c.topicIndex) != len(c.topics) {
		errs = append(errs, "duplicate topic names")
	}
	for _, t := range c.topics {
		if slugs[t.Slug] {
			errs = append(errs, fmt.Sprintf("duplicate topic slug: %q", t.Slug))
		}
		slugs[t.Slug] = true
	}

	seen := make(map[string]bool, len(c.questions))
	for _, q := range c.questions {
		if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		seen[q.ID] = true

		if !c.HasTopic(q.Topic) {
			errs = append(errs, fmt.Sprintf("question %q references unknown topic %q", q.ID, q.Topic))
		}
		if !q.Difficulty.Valid() {
			errs = append(errs, fmt.Sprintf("question %q has unknown difficulty %q", q.ID, q.Difficulty))
		}
		if len(q.Options) < 2 {
			errs = append(errs, fmt.Sprintf("question %q has %d options, need at least 2", q.ID, len(q.Options)))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			errs = append(errs, fmt.Sprintf("question %q correct index %d out of range [0,%d)", q.ID, q.CorrectIndex, len(q.Options)))
		}
	}

	for topic := range c.formulas {
		if !c.HasTopic(topic) {
			errs = append(errs, fmt.Sprintf("formulary references unknown topic %q", topic))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
