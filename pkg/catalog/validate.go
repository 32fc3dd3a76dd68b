package catalog

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-ideaform/pkg/model"
)

// Validate checks that every model vocabulary value has exactly one entry,
// that the three steps are described and that every field is labelled. All
// problems are reported together.
func (c *Catalog) Validate() error {
	if c == nil {
		return errors.New("catalog: nil catalog")
	}
	var errs []error

	errs = append(errs, checkVocabulary("categories", c.Categories, stringsOf(model.Categories()))...)
	errs = append(errs, checkVocabulary("problems", c.Problems, stringsOf(model.Tags()))...)
	errs = append(errs, checkVocabulary("urgency", c.Urgency, stringsOf(model.Urgencies()))...)
	errs = append(errs, checkVocabulary("betaTesting", c.BetaTesting, stringsOf(model.BetaTestingOptions()))...)

	for step := 1; step <= 3; step++ {
		if s, ok := c.Step(step); !ok || s.Title == "" {
			errs = append(errs, fmt.Errorf("catalog: step %d has no title", step))
		}
	}
	for _, field := range model.Fields() {
		if fc, ok := c.Fields[field]; !ok || fc.Label == "" {
			errs = append(errs, fmt.Errorf("catalog: field %q has no label", field))
		}
	}
	if c.Privacy.Notice == "" {
		errs = append(errs, errors.New("catalog: privacy notice is empty"))
	}
	if c.Success.Title == "" {
		errs = append(errs, errors.New("catalog: success title is empty"))
	}

	if len(errs) == 0 {
		return nil
	}
	if c.Source != "" {
		return fmt.Errorf("catalog %s: %w", c.Source, errors.Join(errs...))
	}
	return errors.Join(errs...)
}

func checkVocabulary(group string, options []Option, vocabulary []string) []error {
	var errs []error
	counts := make(map[string]int, len(options))
	for _, opt := range options {
		counts[opt.Value]++
	}
	known := make(map[string]struct{}, len(vocabulary))
	for _, value := range vocabulary {
		known[value] = struct{}{}
		switch counts[value] {
		case 0:
			errs = append(errs, fmt.Errorf("catalog: %s is missing %q", group, value))
		case 1:
		default:
			errs = append(errs, fmt.Errorf("catalog: %s lists %q %d times", group, value, counts[value]))
		}
	}
	for _, opt := range options {
		if _, ok := known[opt.Value]; !ok {
			errs = append(errs, fmt.Errorf("catalog: %s lists unknown value %q", group, opt.Value))
		}
	}
	return errs
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
