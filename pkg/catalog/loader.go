package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-ideaform/pkg/model"
)

type documentFile struct {
	Form        FormCopy             `json:"form" yaml:"form"`
	Steps       []StepCopy           `json:"steps" yaml:"steps"`
	Fields      map[string]FieldCopy `json:"fields" yaml:"fields"`
	Categories  []Option             `json:"categories" yaml:"categories"`
	Problems    []Option             `json:"problems" yaml:"problems"`
	Urgency     []Option             `json:"urgency" yaml:"urgency"`
	BetaTesting []Option             `json:"betaTesting" yaml:"betaTesting"`
	Privacy     PrivacyCopy          `json:"privacy" yaml:"privacy"`
	Success     SuccessCopy          `json:"success" yaml:"success"`
	Buttons     Buttons              `json:"buttons" yaml:"buttons"`
}

// Load reads and normalises the catalog stored at path inside fsys.
func Load(fsys fs.FS, path string) (*Catalog, error) {
	if fsys == nil {
		return nil, errors.New("catalog: nil filesystem")
	}
	if !isCatalogFile(path) {
		return nil, fmt.Errorf("catalog: %s is not a JSON or YAML file", path)
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a JSON or YAML catalog. source is only used in errors.
func Parse(data []byte, source string) (*Catalog, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}
	return normaliseDocument(doc, source)
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("catalog: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("catalog: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return doc, nil
}

func normaliseDocument(doc documentFile, source string) (*Catalog, error) {
	cat := &Catalog{
		Source: source,
		Form: FormCopy{
			Title:     strings.TrimSpace(doc.Form.Title),
			Intro:     strings.TrimSpace(doc.Form.Intro),
			StepLabel: strings.TrimSpace(doc.Form.StepLabel),
		},
		Fields:  make(map[model.Field]FieldCopy, len(doc.Fields)),
		Privacy: PrivacyCopy{Notice: sanitizeRichText(doc.Privacy.Notice)},
		Success: SuccessCopy{
			Title: strings.TrimSpace(doc.Success.Title),
			Body:  sanitizeRichText(doc.Success.Body),
		},
		Buttons: doc.Buttons,
	}

	for _, step := range doc.Steps {
		step.Title = strings.TrimSpace(step.Title)
		step.Description = strings.TrimSpace(step.Description)
		cat.Steps = append(cat.Steps, step)
	}

	for key, cfg := range doc.Fields {
		field, ok := model.ParseField(strings.TrimSpace(key))
		if !ok {
			return nil, fmt.Errorf("catalog: file %s labels unknown field %q", source, key)
		}
		cfg.Label = strings.TrimSpace(cfg.Label)
		cfg.Placeholder = strings.TrimSpace(cfg.Placeholder)
		cfg.Help = strings.TrimSpace(cfg.Help)
		cat.Fields[field] = cfg
	}

	for _, item := range doc.Success.NextSteps {
		if cleaned := sanitizeRichText(item); cleaned != "" {
			cat.Success.NextSteps = append(cat.Success.NextSteps, cleaned)
		}
	}

	var err error
	if cat.Categories, err = normaliseOptions(doc.Categories, "categories", source); err != nil {
		return nil, err
	}
	if cat.Problems, err = normaliseOptions(doc.Problems, "problems", source); err != nil {
		return nil, err
	}
	if cat.Urgency, err = normaliseOptions(doc.Urgency, "urgency", source); err != nil {
		return nil, err
	}
	if cat.BetaTesting, err = normaliseOptions(doc.BetaTesting, "betaTesting", source); err != nil {
		return nil, err
	}
	return cat, nil
}

func normaliseOptions(raw []Option, group, source string) ([]Option, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]Option, 0, len(raw))
	for idx, opt := range raw {
		opt.Value = strings.TrimSpace(opt.Value)
		opt.Label = strings.TrimSpace(opt.Label)
		opt.Description = strings.TrimSpace(opt.Description)
		if opt.Value == "" {
			return nil, fmt.Errorf("catalog: file %s %s entry %d has an empty value", source, group, idx)
		}
		if opt.Label == "" {
			opt.Label = opt.Value
		}
		out = append(out, opt)
	}
	return out, nil
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
