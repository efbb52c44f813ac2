// Package models provides the data structures shared by the analytics core.
package models

import "strings"

// Category represents a spending category
type Category struct {
	Name        string
	Description string
}

// CategoryConfig represents a keyword group in the categories YAML file.
// Groups are matched in file order.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig represents the structure of the categories YAML file
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// BuiltinCategories lists the fixed vocabulary in classification priority order,
// followed by the fallback.
var BuiltinCategories = []string{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryBills,
	CategoryEntertainment,
	CategoryOther,
}

// DefaultKeywordGroups returns the built-in keyword table. The order is the
// classification priority: a text matching several groups resolves to the first.
func DefaultKeywordGroups() []CategoryConfig {
	return []CategoryConfig{
		{Name: CategoryFood, Keywords: []string{"food", "lunch", "coffee", "restaurant", "grocer", "meal", "swiggy", "zomato"}},
		{Name: CategoryTransport, Keywords: []string{"bus", "taxi", "uber", "transport", "metro", "train", "ola"}},
		{Name: CategoryShopping, Keywords: []string{"shopping", "clothes", "mall", "store", "amazon", "flipkart", "myntra"}},
		{Name: CategoryBills, Keywords: []string{"bill", "electricity", "water", "internet", "rent", "phone"}},
		{Name: CategoryEntertainment, Keywords: []string{"movie", "cinema", "game", "entertainment", "netflix"}},
	}
}

// NormalizeCategory trims a category name and maps an empty name to CategoryOther.
func NormalizeCategory(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return CategoryOther
	}
	return name
}

// CategoryNames returns the vocabulary covered by groups, in order, always
// ending with CategoryOther.
func CategoryNames(groups []CategoryConfig) []string {
	seen := make(map[string]bool, len(groups)+1)
	names := make([]string, 0, len(groups)+1)
	for _, g := range groups {
		name := NormalizeCategory(g.Name)
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	if !seen[CategoryOther] {
		names = append(names, CategoryOther)
	}
	return names
}
