// Package config loads the feeder daemon configuration.
//
// Values are resolved in three layers: built-in defaults, an optional YAML
// file, then KIBBLE_* environment variables (optionally read from a .env
// file first). The result is validated before use.
//
// Example file:
//
//	interval_minutes: 5
//	clock_poll: 100ms
//	profile:
//	  max_position: 45
//	  step_delay: 100ms
//	whitelist:
//	  tags: ["AA:BB:CC:DD"]
//	journal:
//	  path: /var/lib/kibble/feeder.klog
//	log_level: info
package config
