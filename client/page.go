package client

import (
	"context"

	"github.com/rpupo63/portfolio-site-backend/models"
	"golang.org/x/sync/errgroup"
)

// Fallback copy shown when a section has not been stored.
var defaultSectionText = map[string]string{
	"hero_tagline": "I build systems that remove friction.",
	"about":        "I am a builder focused on automation and digital infrastructure. I don't just write code; I design systems that solve real problems. My approach is practical, grounded, and long-term.",
	"work":         "Building things that matter.",
}

// DefaultSectionText returns the fallback copy for section, or "" when the
// section has none.
func DefaultSectionText(section string) string {
	return defaultSectionText[section]
}

// Page is everything the home page renders.
type Page struct {
	Content []models.Content
	Skills  []models.Skill
}

// LoadPage fetches content and skills concurrently.
func (c *Client) LoadPage(ctx context.Context) (*Page, error) {
	var page Page

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		content, err := c.Content(gctx)
		page.Content = content
		return err
	})
	g.Go(func() error {
		skills, err := c.Skills(gctx)
		page.Skills = skills
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &page, nil
}

// Section returns the stored section, or nil when absent.
func (p *Page) Section(name string) *models.Content {
	return findSection(p.Content, name)
}

// SectionText returns the stored text for name, falling back to the default
// copy when the section is absent or empty.
func (p *Page) SectionText(name string) string {
	if section := p.Section(name); section != nil && section.Text != "" {
		return section.Text
	}
	return DefaultSectionText(name)
}
