// Package llm provides the text-generation client used to draft documents.
package llm

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// DefaultModel is the Gemini model documents are drafted with.
const DefaultModel = "gemini-2.0-flash"

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Model    string
	// Temperature is passed to the model when set; nil keeps the provider default.
	Temperature *float32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Model:    DefaultModel,
	}
}

// GetModel returns the configured model, falling back to DefaultModel.
func (c *Config) GetModel() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModel
}

// WithModel returns a copy of the Config using model.
func (c *Config) WithModel(model string) *Config {
	newConfig := *c
	newConfig.Model = model
	return &newConfig
}

// WithTemperature returns a copy of the Config using temperature t.
func (c *Config) WithTemperature(t float32) *Config {
	newConfig := *c
	newConfig.Temperature = &t
	return &newConfig
}
