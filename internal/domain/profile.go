package domain

// Profile describes the person the showcase belongs to.
type Profile struct {
	Name        string `json:"name" yaml:"name"`
	Role        string `json:"role" yaml:"role"`
	Email       string `json:"email" yaml:"email"`
	Location    string `json:"location" yaml:"location"`
	Avatar      string `json:"avatar" yaml:"avatar"`
	Banner      string `json:"banner" yaml:"banner"`
	Subscribers string `json:"subscribers" yaml:"subscribers"`
	Videos      string `json:"videos" yaml:"videos"`
	Bio         string `json:"bio" yaml:"bio"`
}

// Experience is one entry of the work history.
type Experience struct {
	ID           string   `json:"id" yaml:"id"`
	Role         string   `json:"role" yaml:"role"`
	Organization string   `json:"company" yaml:"company"`
	Period       string   `json:"period" yaml:"period"`
	Location     string   `json:"location" yaml:"location"`
	Highlights   []string `json:"description" yaml:"description"`
}

// Persona bundles everything the assistant knows about the owner.
type Persona struct {
	Profile     Profile
	Skills      []string
	Experiences []Experience
}
