// Package container provides dependency injection for spendlens.
// It loads the optional models once and wires every analytic component, so
// commands receive fully built, read-only dependencies.
package container

import (
	"context"
	"fmt"

	"fjacquet/spendlens/internal/aiclient"
	"fjacquet/spendlens/internal/anomaly"
	"fjacquet/spendlens/internal/budget"
	"fjacquet/spendlens/internal/categorizer"
	"fjacquet/spendlens/internal/chat"
	"fjacquet/spendlens/internal/config"
	"fjacquet/spendlens/internal/entities"
	"fjacquet/spendlens/internal/extraction"
	"fjacquet/spendlens/internal/forecast"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"
	"fjacquet/spendlens/internal/store"

	"github.com/shopspring/decimal"
)

// Container holds all application dependencies. It is immutable after
// creation; fields are reached through getters.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      *store.CategoryStore
	classifier *categorizer.Classifier
	extractor  *entities.Extractor
	pipeline   *extraction.Pipeline
	detector   *anomaly.Detector
	engine     *forecast.Engine
	optimizer  *budget.Optimizer
	router     *chat.Router

	categoryModel categorizer.CategoryModel
	entityModel   entities.EntityModel
	closeAI       func() error
}

// Option overrides a dependency, mainly for tests.
type Option func(*options)

type options struct {
	logger    logging.Logger
	generator aiclient.Generator
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithGenerator uses generator instead of connecting to Gemini when AI is enabled.
func WithGenerator(generator aiclient.Generator) Option {
	return func(o *options) { o.generator = generator }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = config.ConfigureLoggingFromConfig(cfg)
	}

	categoryStore := store.NewCategoryStore(cfg.Categories.File, cfg.Categories.TrainingFile, logger)
	keywords := categorizer.NewKeywordStrategy(categoryStore, logger)

	c := &Container{
		logger:        logger,
		config:        cfg,
		store:         categoryStore,
		categoryModel: categorizer.UnavailableModel{},
		entityModel:   entities.UnavailableModel{},
	}

	generator, err := c.generator(ctx, o.generator)
	if err != nil {
		return nil, err
	}
	categories := models.CategoryNames(keywords.Groups())

	switch {
	case generator != nil:
		c.categoryModel = categorizer.NewGeminiModel(generator, categories)
		if cfg.AI.EntitiesEnabled {
			c.entityModel = entities.NewGeminiModel(generator)
		}
	default:
		c.categoryModel = c.trainedModel(categoryStore)
	}

	c.classifier = categorizer.NewClassifier(keywords, c.categoryModel, logger)
	c.extractor = entities.NewExtractor(c.entityModel, nil, logger)
	c.pipeline = extraction.NewPipeline(c.classifier, c.extractor, logger,
		extraction.WithMaxAmount(cfg.MaxAmount()),
		extraction.WithConcurrency(cfg.Extraction.Concurrency))
	c.detector = anomaly.NewDetector(
		anomaly.WithMinHistory(cfg.Anomaly.MinHistory),
		anomaly.WithZThreshold(cfg.Anomaly.ZThreshold),
		anomaly.WithIQRMultiplier(cfg.Anomaly.IQRMultiplier),
		anomaly.WithCurrencySymbol(cfg.Display.CurrencySymbol))
	c.engine = forecast.NewEngine(logger,
		forecast.WithARIMAMinPoints(cfg.Forecast.ARIMAMinPoints),
		forecast.WithFitTimeout(cfg.FitTimeout()))
	c.optimizer = budget.NewOptimizer(logger,
		budget.WithCurrencySymbol(cfg.Display.CurrencySymbol),
		budget.WithWarningPercent(decimal.NewFromFloat(cfg.Budget.WarningPercent)))
	c.router = chat.NewRouter(c.pipeline, cfg.Display.CurrencySymbol, logger)

	logger.Info("Container initialized successfully",
		logging.Field{Key: "category_model", Value: c.categoryModel.Name()},
		logging.Field{Key: "entity_model", Value: c.entityModel.Name()},
		logging.Field{Key: "ai_enabled", Value: cfg.AI.Enabled})

	return c, nil
}

func (c *Container) generator(ctx context.Context, injected aiclient.Generator) (aiclient.Generator, error) {
	if !c.config.AI.Enabled {
		c.logger.Info("AI models disabled")
		return nil, nil
	}
	if injected != nil {
		return injected, nil
	}

	generator, closeFn, err := aiclient.NewGeminiGenerator(ctx, aiclient.Options{
		APIKey:            c.config.AI.APIKey,
		Model:             c.config.AI.Model,
		RequestsPerMinute: c.config.AI.RequestsPerMinute,
		Timeout:           c.config.AITimeout(),
	}, c.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	c.closeAI = closeFn
	return generator, nil
}

// trainedModel builds the Bayes model from the training file, or the
// unavailable model when there is nothing usable to train on.
func (c *Container) trainedModel(s *store.CategoryStore) categorizer.CategoryModel {
	samples, err := s.LoadTrainingSamples()
	if err != nil {
		c.logger.WithError(err).Warn("Failed to load training samples, keyword matching only")
		return categorizer.UnavailableModel{}
	}
	if len(samples) == 0 {
		return categorizer.UnavailableModel{}
	}

	model, err := categorizer.NewBayesModel(samples)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to train category model, keyword matching only")
		return categorizer.UnavailableModel{}
	}
	c.logger.Info("Category model trained",
		logging.Field{Key: logging.FieldCount, Value: len(samples)})
	return model
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the category store.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetClassifier returns the category classifier.
func (c *Container) GetClassifier() *categorizer.Classifier {
	return c.classifier
}

// GetExtractor returns the entity extractor.
func (c *Container) GetExtractor() *entities.Extractor {
	return c.extractor
}

// GetPipeline returns the expense extraction pipeline.
func (c *Container) GetPipeline() *extraction.Pipeline {
	return c.pipeline
}

// GetDetector returns the anomaly detector.
func (c *Container) GetDetector() *anomaly.Detector {
	return c.detector
}

// GetForecastEngine returns the forecast engine.
func (c *Container) GetForecastEngine() *forecast.Engine {
	return c.engine
}

// GetOptimizer returns the budget optimizer.
func (c *Container) GetOptimizer() *budget.Optimizer {
	return c.optimizer
}

// GetChatRouter returns the chat intent router.
func (c *Container) GetChatRouter() *chat.Router {
	return c.router
}

// CategoryModelName reports which category model was loaded.
func (c *Container) CategoryModelName() string {
	return c.categoryModel.Name()
}

// EntityModelName reports which entity model was loaded.
func (c *Container) EntityModelName() string {
	return c.entityModel.Name()
}

// Close releases the AI client, if one was created.
func (c *Container) Close() error {
	if c.closeAI != nil {
		if err := c.closeAI(); err != nil {
			return fmt.Errorf("failed to close AI client: %w", err)
		}
	}
	c.logger.Debug("Container closed")
	return nil
}
