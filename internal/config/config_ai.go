package config

// applyOperationDefaults applies global defaults to use-case-specific
// configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxAttempts == nil {
		opCfg.MaxAttempts = &c.AI.MaxAttempts
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
}

// operationConfigs maps use-case names to their raw configuration sections.
func (c *Config) operationConfigs() map[string]OperationAIConfig {
	return map[string]OperationAIConfig{
		"roadmap":     c.AI.Roadmap,
		"quiz":        c.AI.Quiz,
		"remediation": c.AI.Remediation,
		"risk":        c.AI.Risk,
		"fit":         c.AI.Fit,
		"freetext":    c.AI.FreeText,
	}
}

// GetOperationConfig returns the generation configuration for a use case
// with fallback to the global AI config. Unknown use cases get the global
// values alone.
func (c *Config) GetOperationConfig(useCase string) OperationAIConfig {
	cfg := c.operationConfigs()[useCase]
	c.applyOperationDefaults(&cfg)
	return cfg
}
