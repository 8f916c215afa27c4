// Package config loads runtime configuration for the campus events client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml/.yml are YAML, others JSON.
//  3. Environment variables CAMPUS_API_URL, CAMPUS_STORAGE_PATH,
//     CAMPUS_LANGUAGE, CAMPUS_LOG_LEVEL, CAMPUS_LOG_BACKEND, CAMPUS_TIMEOUT.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string     API base URL
//	-s string     path of the local storage file
//	-l string     UI language
//	-t duration   HTTP timeout
//
// # File schema
//
//	{
//	  "api_url": "https://campus.example.edu/api",
//	  "storage_path": "/home/me/.campus.db",
//	  "language": "ru",
//	  "log_level": "debug",
//	  "log_backend": "zap",
//	  "timeout": "30s"
//	}
package config
