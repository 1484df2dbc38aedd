// Package seed reads menu fixtures for provisioning a canteen.
package seed

import (
	"io"
	"os"
	"strings"

	"canteen/internal/domain/entity"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// MenuFile is the YAML layout of a menu fixture.
type MenuFile struct {
	Categories []MenuCategory `yaml:"categories"`
}

// MenuCategory lists the items of one category.
type MenuCategory struct {
	Name  string     `yaml:"name"`
	Items []MenuItem `yaml:"items"`
}

// MenuItem is one dish. Available defaults to true.
type MenuItem struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	ImageURL    string  `yaml:"image_url"`
	Available   *bool   `yaml:"available"`
}

// LoadMenuFile reads a menu fixture from disk.
func LoadMenuFile(path string) ([]*entity.FoodItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open menu file %s", path)
	}
	defer f.Close()

	return ParseMenu(f)
}

// ParseMenu decodes a menu fixture into food items, in file order.
func ParseMenu(r io.Reader) ([]*entity.FoodItem, error) {
	var file MenuFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, errors.Wrap(err, "failed to decode menu")
	}

	var items []*entity.FoodItem
	seen := make(map[string]bool)
	for _, category := range file.Categories {
		categoryName := strings.TrimSpace(category.Name)
		if categoryName == "" {
			return nil, errors.New("menu category without a name")
		}

		for _, item := range category.Items {
			name := strings.TrimSpace(item.Name)
			if name == "" {
				return nil, errors.Errorf("item without a name in category %q", categoryName)
			}
			if seen[name] {
				return nil, errors.Errorf("duplicate menu item %q", name)
			}
			seen[name] = true

			available := item.Available == nil || *item.Available
			items = append(items, &entity.FoodItem{
				Name:        name,
				Description: item.Description,
				Price:       item.Price,
				ImageURL:    item.ImageURL,
				IsAvailable: available,
				Category:    categoryName,
			})
		}
	}

	return items, nil
}
