package seed

import "github.com/MrSnakeDoc/showcase/internal/domain"

// RecordsFile represents the top-level structure of a seed file.
//
//	records:
//	  - id: subtitle-studio
//	    title: Subtitle Studio
//	    category: Web Apps
//	    tags: [React 19, TypeScript]
type RecordsFile struct {
	Records []RecordProps `yaml:"records"`
}

// RecordProps contains the record properties as written in YAML
type RecordProps struct {
	ID            string   `yaml:"id"`
	Title         string   `yaml:"title"`
	Thumbnail     string   `yaml:"thumbnail,omitempty"`
	Duration      string   `yaml:"duration,omitempty"`
	Views         string   `yaml:"views,omitempty"`
	UploadDate    string   `yaml:"uploadDate,omitempty"`
	Category      string   `yaml:"category"`
	Tags          []string `yaml:"tags,omitempty"`
	Skills        []string `yaml:"skills,omitempty"`
	Description   string   `yaml:"description,omitempty"`
	AIDescription *string  `yaml:"aiDescription,omitempty"`
	VideoURL      *string  `yaml:"videoUrl,omitempty"`
}

// PersonaFile represents a profile override file.
type PersonaFile struct {
	Profile     domain.Profile      `yaml:"profile"`
	Skills      []string            `yaml:"skills"`
	Experiences []domain.Experience `yaml:"experiences"`
}
