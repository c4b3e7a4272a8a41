package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Catalog.StaleAfterDays <= 0 {
		cfg.Catalog.StaleAfterDays = 180
	}
	if cfg.Search.MaxResults <= 0 {
		cfg.Search.MaxResults = 8
	}
	if cfg.Search.NationalRegions == nil {
		cfg.Search.NationalRegions = []string{"nationellt", "national"}
	}
	if cfg.MCP.Name == "" {
		cfg.MCP.Name = "Stödlotsen"
	}
	if cfg.MCP.Version == "" {
		cfg.MCP.Version = "1.0.0"
	}
}
