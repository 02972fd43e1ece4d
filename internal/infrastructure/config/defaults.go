package config

// SetDefaults fills in default values for any unset fields
func SetDefaults(cfg *Config) {
	if cfg.Audit.Type == "" {
		cfg.Audit.Type = "sqlite"
	}
	if cfg.Audit.Type == "sqlite" && cfg.Audit.Path == "" {
		cfg.Audit.Path = "mediator-audit.db"
	}

	if cfg.Dispatch.RateLimit == 0 {
		cfg.Dispatch.RateLimit = 100 // dispatches per second
	}
	if cfg.Dispatch.RateBurst == 0 {
		cfg.Dispatch.RateBurst = 10
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
