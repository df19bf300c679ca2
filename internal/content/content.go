// Package content serves the static marketing copy of the funnel
// pages from an embedded YAML document, plus the rolling offer
// countdown.
package content

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var contentYAML []byte

// Hero is the landing page headline block.
type Hero struct {
	Badge       string `yaml:"badge" json:"badge"`
	Headline    string `yaml:"headline" json:"headline"`
	Subheadline string `yaml:"subheadline" json:"subheadline"`
	Tagline     string `yaml:"tagline" json:"tagline"`
}

// Bonus is one stacked bonus on the offer.
type Bonus struct {
	Title       string `yaml:"title" json:"title"`
	Value       string `yaml:"value" json:"value"`
	Description string `yaml:"description" json:"description"`
}

// Offer is the program pricing block. Prices are US cents.
type Offer struct {
	ListPriceCents int      `yaml:"list_price_cents" json:"list_price_cents"`
	PriceCents     int      `yaml:"price_cents" json:"price_cents"`
	Features       []string `yaml:"features" json:"features"`
	Bonuses        []Bonus  `yaml:"bonuses" json:"bonuses"`
}

// Testimonial is one before/after story.
type Testimonial struct {
	Name      string `yaml:"name" json:"name"`
	Age       int    `yaml:"age" json:"age"`
	Location  string `yaml:"location" json:"location"`
	Result    string `yaml:"result" json:"result"`
	Quote     string `yaml:"quote" json:"quote"`
	Rating    int    `yaml:"rating" json:"rating"`
	Timeframe string `yaml:"timeframe" json:"timeframe"`
}

// ProgramModule is one phase of the coaching program presentation.
type ProgramModule struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Features    []string `yaml:"features" json:"features"`
}

// FAQ is one question/answer pair.
type FAQ struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// Catalog is the complete marketing copy document.
type Catalog struct {
	Hero         Hero            `yaml:"hero" json:"hero"`
	Offer        Offer           `yaml:"offer" json:"offer"`
	Program      []ProgramModule `yaml:"program" json:"program"`
	Testimonials []Testimonial   `yaml:"testimonials" json:"testimonials"`
	FAQs         []FAQ           `yaml:"faqs" json:"faqs"`
}

// Load parses the embedded copy document.
func Load() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(contentYAML, &c); err != nil {
		return nil, fmt.Errorf("content: parse embedded copy: %w", err)
	}
	return &c, nil
}

// Section returns a named block of the catalog, or false for unknown
// names.
func (c *Catalog) Section(name string) (any, bool) {
	switch name {
	case "hero":
		return c.Hero, true
	case "offer":
		return c.Offer, true
	case "program":
		return c.Program, true
	case "testimonials":
		return c.Testimonials, true
	case "faqs":
		return c.FAQs, true
	case "all":
		return c, true
	default:
		return nil, false
	}
}
