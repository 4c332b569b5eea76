// Package content holds the static copy of the landing page.
package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed landing.yaml
var landingYAML []byte

type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type Item struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Hero struct {
	Badge     string `yaml:"badge"`
	Title     string `yaml:"title"`
	Highlight string `yaml:"highlight"`
	Subtitle  string `yaml:"subtitle"`
	CTA       string `yaml:"cta"`
	Stats     []Stat `yaml:"stats"`
}

type Section struct {
	Badge     string `yaml:"badge"`
	Title     string `yaml:"title"`
	Highlight string `yaml:"highlight"`
	Subtitle  string `yaml:"subtitle"`
	Body      string `yaml:"body"`
	CTA       string `yaml:"cta"`
	Steps     []Item `yaml:"steps"`
	Features  []Item `yaml:"features"`
}

type Testimonial struct {
	Name    string `yaml:"name"`
	Role    string `yaml:"role"`
	Company string `yaml:"company"`
	Quote   string `yaml:"quote"`
	Outcome string `yaml:"outcome"`
}

type Testimonials struct {
	Title    string        `yaml:"title"`
	Subtitle string        `yaml:"subtitle"`
	Items    []Testimonial `yaml:"items"`
	Stats    []Stat        `yaml:"stats"`
}

type Footer struct {
	Tagline   string `yaml:"tagline"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone"`
	Address   string `yaml:"address"`
	Copyright string `yaml:"copyright"`
}

// Landing is everything the landing page renders.
type Landing struct {
	Hero         Hero         `yaml:"hero"`
	HowItWorks   Section      `yaml:"how_it_works"`
	AI           Section      `yaml:"ai"`
	Telegram     Section      `yaml:"telegram"`
	Testimonials Testimonials `yaml:"testimonials"`
	Footer       Footer       `yaml:"footer"`
}

// Default returns the built-in landing copy.
func Default() (Landing, error) {
	return Parse(landingYAML)
}

// Load reads landing copy from path, or the built-in copy when path is
// empty.
func Load(path string) (Landing, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Landing{}, fmt.Errorf("read landing content: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Landing, error) {
	var landing Landing
	if err := yaml.Unmarshal(data, &landing); err != nil {
		return Landing{}, fmt.Errorf("parse landing content: %w", err)
	}
	if landing.Hero.Title == "" {
		return Landing{}, fmt.Errorf("parse landing content: hero title missing")
	}
	return landing, nil
}
