// Package seed holds the default showcase data and loads optional YAML overrides.
package seed

import (
	"time"

	"github.com/MrSnakeDoc/showcase/internal/domain"
)

// DefaultProfile returns the built-in profile.
func DefaultProfile() domain.Profile {
	return domain.Profile{
		Name:        "Sagar Parmar",
		Role:        "YouTube Content Producer | Motion Graphics Artist",
		Email:       "parmarsagarsagar@gmail.com",
		Location:    "Rajkot, Gujarat",
		Avatar:      "https://picsum.photos/id/64/200/200",
		Banner:      "https://picsum.photos/id/180/1200/300",
		Subscribers: "100K+",
		Videos:      "80+",
		Bio:         "Multi-skilled content creator with 8+ years in YouTube production, motion graphics, and AI-powered workflows. Proven track record growing channels from 5K to 100K+. Expert in blending creative motion design with technical AI proficiency.",
	}
}

// DefaultSkills returns the built-in top skills, in display order.
func DefaultSkills() []string {
	return []string{
		"Adobe After Effects", "Premiere Pro", "Figma", "React", "TypeScript",
		"Gemini API", "Midjourney", "ElevenLabs", "Stable Diffusion", "YouTube Analytics",
	}
}

// DefaultExperiences returns the built-in work history, newest first.
func DefaultExperiences() []domain.Experience {
	return []domain.Experience{
		{
			ID:           "1",
			Role:         "Visual Designer",
			Organization: "Lighthouse Media Communications",
			Period:       "Feb 2025 – Present",
			Location:     "Rajkot, India",
			Highlights: []string{
				"Produce 3-5 motion graphics reels weekly for multiple brands.",
				"Design 10+ unique Instagram carousels per client monthly.",
				"Translate complex client briefs into compelling visual narratives.",
			},
		},
		{
			ID:           "2",
			Role:         "YouTube Content Producer",
			Organization: "Karuna Foundation Trust",
			Period:       "Jul 2023 – Feb 2025",
			Location:     "Rajkot, India",
			Highlights: []string{
				"Scaled YouTube channel from 5K to 100K+ subscribers in 24 months.",
				"Created 2 viral videos generating 2-3M combined views.",
				"Deployed professional virtual studio setup for live streaming.",
			},
		},
		{
			ID:           "3",
			Role:         "Graphic & UI/UX Designer",
			Organization: "WeyBee Solutions Pvt Ltd",
			Period:       "Dec 2020 – Jul 2023",
			Location:     "Remote",
			Highlights: []string{
				"Led motion graphics and UI design projects for healthcare clients.",
				"Produced engaging visual effects for advertisements.",
			},
		},
	}
}

// DefaultPersona bundles the built-in profile, skills and experience.
func DefaultPersona() domain.Persona {
	return domain.Persona{
		Profile:     DefaultProfile(),
		Skills:      DefaultSkills(),
		Experiences: DefaultExperiences(),
	}
}

// DefaultRecords returns the built-in catalog seed in its fixed order.
// A fresh slice is returned on every call.
func DefaultRecords() []domain.Record {
	return []domain.Record{
		{
			ID:             "subtitle-studio",
			Title:          "Subtitle Studio – AI-Powered Transcription Web App",
			Thumbnail:      "https://picsum.photos/id/1/1280/720",
			Duration:       "Demo",
			ViewCount:      "1.2K",
			PublishedLabel: "2 days ago",
			Category:       domain.CategoryWebApps,
			Tags:           []string{"React 19", "Google Gemini API", "TypeScript", "Tailwind"},
			Skills:         []string{"Full Stack Development", "UI/UX Design", "AI Integration"},
			Description:    "Conceptualized, designed, and deployed a full-featured web application for AI-powered subtitle generation with word-level timestamps. Solved personal production pain points by creating an accessible tool for content creators requiring accurate transcription in 15+ languages.",
		},
		{
			ID:             "viral-animal-welfare",
			Title:          "Viral Animal Welfare Campaign (2M+ Views)",
			Thumbnail:      "https://picsum.photos/id/237/1280/720",
			Duration:       "12:45",
			ViewCount:      "2.1M",
			PublishedLabel: "1 year ago",
			Category:       domain.CategoryDocumentary,
			Tags:           []string{"Documentary", "Social Cause", "Viral"},
			Skills:         []string{"Scripting (Claude)", "Voiceover (ElevenLabs)", "Editing"},
			Description:    "Scripted, edited, and produced high-impact videos on controversial animal welfare topics. Utilized AI workflow: Claude for scriptwriting, ElevenLabs for voiceover, Runway ML for B-roll enhancement. Achieved organic viral reach through strategic thumbnail design.",
		},
		{
			ID:             "motion-graphics-yas",
			Title:          "High-End Motion Graphics Showcase",
			Thumbnail:      "https://picsum.photos/id/250/1280/720",
			Duration:       "01:30",
			ViewCount:      "5.4K",
			PublishedLabel: "3 months ago",
			Category:       domain.CategoryMotionGraphics,
			Tags:           []string{"After Effects", "Kinetic Typography", "Data Viz"},
			Skills:         []string{"Animation", "Visual Storytelling", "Adobe Creative Suite"},
			Description:    "Created high-production-value motion graphics demo showcasing infographic animation, kinetic typography, and data visualization skills. Delivered broadcast-quality output demonstrating technical proficiency.",
		},
		{
			ID:             "virtual-studio-setup",
			Title:          "Virtual Studio Setup & Live Stream Config",
			Thumbnail:      "https://picsum.photos/id/48/1280/720",
			Duration:       "15:00",
			ViewCount:      "8.9K",
			PublishedLabel: "8 months ago",
			Category:       domain.CategoryVideoProduction,
			Tags:           []string{"OBS Studio", "Live Streaming", "Virtual Sets"},
			Skills:         []string{"Technical Direction", "Hardware Setup", "Broadcast"},
			Description:    "Designed and deployed professional virtual studio setup for live news streaming across YouTube and Facebook, ensuring broadcast-quality output for Karuna Foundation Trust.",
		},
		{
			ID:             "healthcare-ui-ux",
			Title:          "Healthcare App UI/UX Design System",
			Thumbnail:      "https://picsum.photos/id/180/1280/720",
			Duration:       "03:45",
			ViewCount:      "3.2K",
			PublishedLabel: "2 years ago",
			Category:       domain.CategoryWebApps,
			Tags:           []string{"Figma", "Prototyping", "User Research"},
			Skills:         []string{"UI Design", "UX Research", "Mobile Design"},
			Description:    "Led motion graphics and UI design projects for healthcare industry clients, creating user-centric digital experiences across web and mobile platforms at WeyBee Solutions.",
		},
	}
}

// DefaultComments returns the comments every record thread starts with.
// Timestamps are relative to now.
func DefaultComments(now time.Time) []domain.Comment {
	return []domain.Comment{
		{
			ID:        "c1",
			Author:    "Recruiter Dave",
			Avatar:    "https://picsum.photos/id/65/50/50",
			Content:   "Impressive use of the Gemini API in the Subtitle Studio project. Are you open to freelance work?",
			LikeCount: 12,
			Timestamp: now.Add(-24 * time.Hour),
			Pinned:    true,
		},
		{
			ID:        "c2",
			Author:    "Creative Lead Sarah",
			Avatar:    "https://picsum.photos/id/66/50/50",
			Content:   "The motion graphics on the intro are silky smooth. Did you use expressions for the typography?",
			LikeCount: 5,
			Timestamp: now.Add(-4 * time.Hour),
		},
	}
}
