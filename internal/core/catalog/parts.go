package catalog

import "github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

// PartTemplateCatalog is a read-only lookup over the static part template
// table. Unknown ids return nil rather than an error; callers decide
// whether a missing template is skippable.
type PartTemplateCatalog struct {
	templates  []domain.PartTemplate
	byID       map[string]*domain.PartTemplate
	categories []domain.PartCategory
}

func NewPartTemplateCatalog(templates []domain.PartTemplate, categories []domain.PartCategory) *PartTemplateCatalog {
	c := &PartTemplateCatalog{
		templates:  templates,
		byID:       make(map[string]*domain.PartTemplate, len(templates)),
		categories: categories,
	}
	for i := range c.templates {
		c.byID[c.templates[i].ID] = &c.templates[i]
	}
	return c
}

func (c *PartTemplateCatalog) Get(id string) *domain.PartTemplate {
	return c.byID[id]
}

func (c *PartTemplateCatalog) All() []domain.PartTemplate {
	return c.templates
}

func (c *PartTemplateCatalog) ByCategory(categoryID string) []domain.PartTemplate {
	var out []domain.PartTemplate
	for _, t := range c.templates {
		if t.Category == categoryID {
			out = append(out, t)
		}
	}
	return out
}

func (c *PartTemplateCatalog) AllCategories() []domain.PartCategory {
	return c.categories
}
