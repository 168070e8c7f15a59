package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hintermeier-t/projet-11-amelioration/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// CatalogFixture is the YAML document accepted by the catalog import.
//
//	products:
//	  - name: Nutella
//	    brand: Ferrero
//	    code: "3017620422003"
//	    nutriscore: e
//	    categories: [Pâtes à tartiner]
type CatalogFixture struct {
	Products []ImportProduct `yaml:"products"`
}

type ImportProduct struct {
	Name        string   `yaml:"name"`
	Brand       string   `yaml:"brand"`
	Code        string   `yaml:"code"`
	Nutriscore  string   `yaml:"nutriscore"`
	Description string   `yaml:"description"`
	Picture     string   `yaml:"picture"`
	URL         string   `yaml:"url"`
	Categories  []string `yaml:"categories"`
}

type ImportResult struct {
	Created int
	Updated int
}

func ParseCatalogFixture(r io.Reader) (*CatalogFixture, error) {
	var fixture CatalogFixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fixture); err != nil {
		return nil, fmt.Errorf("failed to parse catalog fixture: %w", err)
	}
	for i, p := range fixture.Products {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
	}
	return &fixture, nil
}

func (p ImportProduct) validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return errors.New("name is required")
	case p.Code == "":
		return errors.New("code is required")
	case len(p.Code) > 13:
		return fmt.Errorf("code %q longer than 13 characters", p.Code)
	case len([]rune(p.Nutriscore)) > 1:
		return fmt.Errorf("nutriscore %q must be a single letter", p.Nutriscore)
	}
	for _, c := range p.Categories {
		name := strings.TrimSpace(c)
		if name == "" {
			return errors.New("category name is blank")
		}
		if len([]rune(name)) > 75 {
			return fmt.Errorf("category %q longer than 75 characters", name)
		}
	}
	return nil
}

// Import upserts products by barcode in a single transaction. Categories
// are created on first use and a product's categories are replaced by the
// fixture's list.
func (s *CatalogService) Import(ctx context.Context, fixture *CatalogFixture) (ImportResult, error) {
	var res ImportResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := map[string]models.Category{}

		for i, in := range fixture.Products {
			if err := in.validate(); err != nil {
				return fmt.Errorf("product %d: %w", i, err)
			}
			cats := make([]models.Category, 0, len(in.Categories))
			for _, name := range in.Categories {
				name = strings.TrimSpace(name)
				cat, ok := categories[name]
				if !ok {
					err := tx.Where("name = ?", name).
						Attrs(models.Category{Name: name}).
						FirstOrCreate(&cat).Error
					if err != nil {
						return fmt.Errorf("category %q: %w", name, err)
					}
					categories[name] = cat
				}
				cats = append(cats, cat)
			}

			var product models.Product
			err := tx.Where("code = ?", in.Code).First(&product).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				res.Created++
			case err != nil:
				return err
			default:
				res.Updated++
			}

			product.Name = in.Name
			product.Brand = in.Brand
			product.Code = in.Code
			product.Nutriscore = strings.ToLower(in.Nutriscore)
			product.Picture = in.Picture
			product.URL = in.URL
			product.Description = nil
			if in.Description != "" {
				desc := in.Description
				product.Description = &desc
			}
			if err := tx.Omit("Categories").Save(&product).Error; err != nil {
				return fmt.Errorf("product %q: %w", in.Code, err)
			}
			if err := tx.Model(&product).Association("Categories").Replace(cats); err != nil {
				return fmt.Errorf("categories of %q: %w", in.Code, err)
			}
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return res, nil
}
