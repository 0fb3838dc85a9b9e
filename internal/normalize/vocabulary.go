package normalize

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vocabulary holds the canonical unit synonym table and the category
// keyword table. Both are shared configuration with the CSV importer and
// can be overridden from a YAML file without code changes.
type Vocabulary struct {
	// Units maps free-text unit spellings onto canonical tokens.
	Units map[string]string `yaml:"units"`
	// Categories maps a category name onto the keywords that imply it.
	Categories map[string][]string `yaml:"categories"`
}

// DefaultUnit is assigned when no unit token maps.
const DefaultUnit = "item"

// DefaultCategory is assigned when no keyword matches.
const DefaultCategory = "Other"

// DefaultVocabulary returns the compiled-in tables.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Units: map[string]string{
			"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
			"oz": "oz", "ounce": "oz", "ounces": "oz", "fl oz": "oz",
			"gal": "gal", "gallon": "gal", "gallons": "gal",
			"ct": "count", "cnt": "count", "count": "count",
			"ea": "each", "each": "each",
			"pk": "pack", "pkg": "pack", "pack": "pack",
			"item": "item",
		},
		Categories: map[string][]string{
			"Produce": {
				"banana", "apple", "avocado", "lettuce", "spinach", "kale",
				"tomato", "onion", "potato", "carrot", "pepper", "cucumber",
				"broccoli", "berries", "strawberr", "blueberr", "grape",
				"orange", "lemon", "lime", "celery", "garlic", "mushroom",
			},
			"Dairy": {
				"milk", "cheese", "yogurt", "butter", "cream", "egg",
				"half and half", "cottage", "mozzarella", "cheddar",
			},
			"Meat": {
				"chicken", "beef", "pork", "turkey", "salmon", "tuna",
				"fish", "shrimp", "bacon", "sausage", "ham", "steak",
				"ground", "ribs",
			},
			"Pantry": {
				"pasta", "penne", "rice", "bread", "cereal", "flour",
				"sugar", "beans", "sauce", "oil", "soup", "crackers",
				"peanut butter", "jelly", "salt", "spice", "tortilla",
				"oats", "granola", "coffee", "tea", "snack",
			},
			"Frozen": {
				"frozen", "ice cream", "pizza", "waffles", "popsicle",
			},
		},
	}
}

// LoadVocabulary reads a YAML vocabulary file and merges it over the
// defaults: file entries win, defaults fill the gaps.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	var loaded Vocabulary
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file %s: %w", path, err)
	}

	vocab := DefaultVocabulary()
	for k, v := range loaded.Units {
		vocab.Units[strings.ToLower(k)] = v
	}
	for category, keywords := range loaded.Categories {
		vocab.Categories[category] = keywords
	}
	return vocab, nil
}

// CanonicalUnit maps a free-text unit token to the canonical vocabulary.
func (v *Vocabulary) CanonicalUnit(token string) (string, bool) {
	unit, ok := v.Units[strings.ToLower(strings.TrimSpace(token))]
	return unit, ok
}

// CategoryFor infers a category from a normalized item name. Categories
// are checked in sorted name order so inference is deterministic when
// keywords from several categories appear in one name.
func (v *Vocabulary) CategoryFor(name string) (string, bool) {
	lower := strings.ToLower(name)

	names := make([]string, 0, len(v.Categories))
	for category := range v.Categories {
		names = append(names, category)
	}
	sort.Strings(names)

	for _, category := range names {
		for _, keyword := range v.Categories[category] {
			if strings.Contains(lower, keyword) {
				return category, true
			}
		}
	}
	return DefaultCategory, false
}
