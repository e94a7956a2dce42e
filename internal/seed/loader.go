package seed

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/showcase/internal/domain"
)

var templateVar = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Loader handles loading and parsing of seed and persona YAML files
type Loader struct {
	filePath string
}

// NewLoader creates a new loader for filePath
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// LoadRecords reads the file as a records seed and maps it to domain records.
func (l *Loader) LoadRecords() ([]domain.Record, error) {
	var file RecordsFile
	if err := l.decode(&file); err != nil {
		return nil, err
	}
	return MapRecords(file)
}

// LoadPersona reads the file as a persona override.
// Empty sections fall back to the defaults.
func (l *Loader) LoadPersona() (domain.Persona, error) {
	var file PersonaFile
	if err := l.decode(&file); err != nil {
		return domain.Persona{}, err
	}

	persona := DefaultPersona()
	if file.Profile.Name != "" {
		persona.Profile = file.Profile
	}
	if len(file.Skills) > 0 {
		persona.Skills = file.Skills
	}
	if len(file.Experiences) > 0 {
		persona.Experiences = file.Experiences
	}
	return persona, nil
}

func (l *Loader) decode(out any) error {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	data = expandTemplateVariables(data)

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse seed yaml: %w", err)
	}
	return nil
}

// expandTemplateVariables replaces {{VAR}} with the value of the environment
// variable VAR (empty when unset).
// Example: thumbnail: {{CDN}}/a.png -> thumbnail: https://cdn.example/a.png
func expandTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAllFunc(data, func(m []byte) []byte {
		name := strings.TrimSpace(string(templateVar.FindSubmatch(m)[1]))
		return []byte(os.Getenv(name))
	})
}

// MapRecords converts a parsed seed file into domain records, preserving order.
func MapRecords(file RecordsFile) ([]domain.Record, error) {
	records := make([]domain.Record, 0, len(file.Records))
	seen := make(map[string]bool, len(file.Records))

	for i, props := range file.Records {
		category, err := domain.ParseCategory(props.Category)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, props.ID, err)
		}

		r := domain.Record{
			ID:             props.ID,
			Title:          props.Title,
			Thumbnail:      props.Thumbnail,
			Duration:       props.Duration,
			ViewCount:      props.Views,
			PublishedLabel: props.UploadDate,
			Category:       category,
			Tags:           nonNil(props.Tags),
			Skills:         nonNil(props.Skills),
			Description:    props.Description,
		}
		if props.AIDescription != nil {
			r.AIDescription = domain.Some(*props.AIDescription)
		}
		if props.VideoURL != nil {
			r.VideoURL = domain.Some(*props.VideoURL)
		}

		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, props.ID, err)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("record %d: %w: duplicate id %q", i, domain.ErrValidation, r.ID)
		}
		seen[r.ID] = true

		records = append(records, r)
	}

	return records, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
