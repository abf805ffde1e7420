// Package config loads reconciler project configuration.
//
// The configuration lives in reconcile.yaml (or reconcile.json) at the
// project root. Every key can be overridden from the environment with the
// RECONCILE_ prefix, dots replaced by underscores.
//
// # Configuration File Structure
//
//	log:
//	  level: info        # debug, info, warn, error
//	  format: text       # text or json
//	metrics:
//	  enabled: true
//	  namespace: reconcile
//	tracing:
//	  enabled: false
//	  exporter: stdout   # stdout or none
//	  tracer: reconcile
//	preview:
//	  addr: localhost:7070
//	watch:
//	  debounce: 100ms
//	snapshot:
//	  dir: .snapshots    # used when bucket is empty
//	  bucket: ""
//	  prefix: ""
//	  region: ""
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger := cfg.Log.Logger(os.Stderr)
package config
