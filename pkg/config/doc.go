// Package config describes the settings consumed by the mbuzz tracking
// components and loads them from the process environment.
//
// Values are read with `github.com/caarlos0/env/v11`. A `.env` file in the
// working directory is applied once per process through
// `github.com/joho/godotenv` before parsing, so local development does not
// need exported variables.
//
// A Config is a plain value. It is built once, validated, and then passed to
// every component at construction time; nothing in this module keeps a
// process-wide configuration singleton.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err) // missing API key is fatal at setup
//	}
//
// # Environment
//
//	MBUZZ_API_KEY          credential sent as a bearer token (required)
//	MBUZZ_API_URL          base endpoint, default https://mbuzz.co/api/v1
//	MBUZZ_ENABLED          global switch, default true
//	MBUZZ_DEBUG            request/response debug logging, default false
//	MBUZZ_TIMEOUT          outbound request timeout, default 5s
//	MBUZZ_SKIP_PATHS       extra comma-separated path prefixes to ignore
//	MBUZZ_SKIP_EXTENSIONS  extra comma-separated file extensions to ignore
package config
