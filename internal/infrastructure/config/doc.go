// Package config handles loading and validating docsubset settings.
//
// This package manages:
//   - Default values for every setting (the tool runs with no settings file)
//   - Loading overrides from an optional YAML settings file
//   - Overriding with environment variables (DOCSUBSET_*)
//   - Validation of ports, paths and required fields
//   - The alias map from short section names to canonical nav labels
//
// Performance Characteristics:
//   - Configuration is loaded once at startup
//   - No runtime overhead after initial load
//
// Usage:
//
//	cfg, err := config.Load("") // defaults only
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Docs.Config)
package config
