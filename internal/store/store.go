// Package store loads the category vocabulary: the YAML keyword table and the
// optional CSV training samples for the category model.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/spendlens/internal/common"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"

	"gopkg.in/yaml.v3"
)

// CategoryStore manages loading and saving of category data
type CategoryStore struct {
	CategoriesFile string
	TrainingFile   string
	logger         logging.Logger
}

// NewCategoryStore creates a new store for category-related data
func NewCategoryStore(categoriesFile, trainingFile string, logger logging.Logger) *CategoryStore {
	return &CategoryStore{
		CategoriesFile: categoriesFile,
		TrainingFile:   trainingFile,
		logger:         logging.OrDefault(logger),
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join(".spendlens", filename),
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "spendlens", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadCategories loads the user-defined keyword groups from the YAML file.
// A missing file yields no groups.
func (s *CategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	if s.CategoriesFile == "" {
		return []models.CategoryConfig{}, nil
	}

	filePath, err := s.FindConfigFile(s.CategoriesFile)
	if err != nil {
		s.logger.Warn("Categories file not found",
			logging.Field{Key: logging.FieldInputFile, Value: s.CategoriesFile})
		return []models.CategoryConfig{}, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	// "categories: [...]"
	var categoriesConfig models.CategoriesConfig
	if err := yaml.Unmarshal(data, &categoriesConfig); err == nil && len(categoriesConfig.Categories) > 0 {
		return s.loaded(filePath, categoriesConfig.Categories), nil
	}

	// bare list
	var categories []models.CategoryConfig
	if err := yaml.Unmarshal(data, &categories); err == nil && len(categories) > 0 {
		return s.loaded(filePath, categories), nil
	}

	return s.parseCategoryMap(filePath, data)
}

func (s *CategoryStore) loaded(filePath string, categories []models.CategoryConfig) []models.CategoryConfig {
	s.logger.Debug("Loaded categories",
		logging.Field{Key: logging.FieldInputFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(categories)})
	return categories
}

// parseCategoryMap accepts the "Name: {keywords: [...]}" form. Map keys carry no
// order, so groups are returned sorted by name.
func (s *CategoryStore) parseCategoryMap(filePath string, data []byte) ([]models.CategoryConfig, error) {
	var categoriesMap map[string]interface{}
	if err := yaml.Unmarshal(data, &categoriesMap); err != nil {
		return nil, fmt.Errorf("error parsing categories file: %w", err)
	}

	names := make([]string, 0, len(categoriesMap))
	for name := range categoriesMap {
		names = append(names, name)
	}
	sort.Strings(names)

	categories := make([]models.CategoryConfig, 0, len(names))
	for _, name := range names {
		category := models.CategoryConfig{Name: name}
		if v, ok := categoriesMap[name].(map[string]interface{}); ok {
			if keywordsList, ok := v["keywords"].([]interface{}); ok {
				for _, k := range keywordsList {
					if keyword, ok := k.(string); ok {
						category.Keywords = append(category.Keywords, keyword)
					}
				}
			}
		}
		categories = append(categories, category)
	}

	return s.loaded(filePath, categories), nil
}

// KeywordGroups returns the built-in keyword table followed by the user groups.
func (s *CategoryStore) KeywordGroups() ([]models.CategoryConfig, error) {
	user, err := s.LoadCategories()
	if err != nil {
		return nil, err
	}
	return MergeKeywordGroups(models.DefaultKeywordGroups(), user), nil
}

// MergeKeywordGroups appends user groups to base. A user group whose name matches
// an existing group (case-insensitively) extends that group's keywords instead of
// adding a new one. Keywords are lower-cased and blanks dropped.
func MergeKeywordGroups(base, user []models.CategoryConfig) []models.CategoryConfig {
	merged := make([]models.CategoryConfig, 0, len(base)+len(user))
	index := make(map[string]int, len(base)+len(user))

	add := func(group models.CategoryConfig) {
		name := strings.TrimSpace(group.Name)
		if name == "" {
			return
		}
		key := strings.ToLower(name)
		i, ok := index[key]
		if !ok {
			merged = append(merged, models.CategoryConfig{Name: name})
			i = len(merged) - 1
			index[key] = i
		}
		for _, kw := range group.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				merged[i].Keywords = append(merged[i].Keywords, kw)
			}
		}
	}

	for _, g := range base {
		add(g)
	}
	for _, g := range user {
		add(g)
	}
	return merged
}

// SaveCategories writes groups to the categories file in the "categories:" form.
func (s *CategoryStore) SaveCategories(categories []models.CategoryConfig) error {
	if s.CategoriesFile == "" {
		return fmt.Errorf("no categories file configured")
	}

	data, err := yaml.Marshal(models.CategoriesConfig{Categories: categories})
	if err != nil {
		return fmt.Errorf("error marshaling categories: %w", err)
	}

	if dir := filepath.Dir(s.CategoriesFile); dir != "." {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("error creating categories directory: %w", err)
		}
	}

	if err := os.WriteFile(s.CategoriesFile, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing categories file: %w", err)
	}
	return nil
}

// AddKeyword adds keyword to the user group name, creating the group if needed,
// and saves the file.
func (s *CategoryStore) AddKeyword(name, keyword string) error {
	name = strings.TrimSpace(name)
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if name == "" || keyword == "" {
		return fmt.Errorf("category name and keyword are required")
	}

	categories, err := s.LoadCategories()
	if err != nil {
		return err
	}

	found := false
	for i := range categories {
		if strings.EqualFold(categories[i].Name, name) {
			for _, kw := range categories[i].Keywords {
				if strings.EqualFold(kw, keyword) {
					return nil
				}
			}
			categories[i].Keywords = append(categories[i].Keywords, keyword)
			found = true
			break
		}
	}
	if !found {
		categories = append(categories, models.CategoryConfig{Name: name, Keywords: []string{keyword}})
	}

	return s.SaveCategories(categories)
}

// LoadTrainingSamples reads labelled samples from the training CSV
// (header "text,category"). No configured file yields no samples.
func (s *CategoryStore) LoadTrainingSamples() ([]models.TrainingSample, error) {
	if s.TrainingFile == "" {
		return []models.TrainingSample{}, nil
	}

	filePath, err := s.FindConfigFile(s.TrainingFile)
	if err != nil {
		return nil, fmt.Errorf("training file not found: %s", s.TrainingFile)
	}

	samples, err := common.ReadCSVFile[models.TrainingSample](filePath, s.logger)
	if err != nil {
		return nil, err
	}

	valid := samples[:0]
	for _, sample := range samples {
		sample.Text = strings.TrimSpace(sample.Text)
		sample.Category = strings.TrimSpace(sample.Category)
		if sample.Text == "" || sample.Category == "" {
			continue
		}
		valid = append(valid, sample)
	}
	return valid, nil
}
