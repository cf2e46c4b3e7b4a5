// Package config loads runtime configuration for the abstract editor CLI.
//
// Sources, later ones win:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags.
//
// A YAML file looks like this; durations are Go duration strings or seconds:
//
//	server_url: https://abstracts.example.org
//	request_timeout: 15s
//	requests_per_second: 2
//	drafts_path: /home/ada/.gcaeditor/drafts.db
//	log_level: debug
//	conference_id: 2f1b6c3e-...
package config
