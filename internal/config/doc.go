// Package config provides configuration parsing for the vdiff tool.
//
// The configuration is stored in vdiff.yaml, found in the working
// directory or one of its parents. Every key is optional.
//
// # Configuration File Structure
//
//	diff:
//	  max_depth: 0        # 0 = unlimited
//	output:
//	  format: text        # text | json
//	  color: auto         # auto | always | never
//	  pretty: false
//	batch:
//	  concurrency: 4
//	metrics:
//	  namespace: vdiff
//	tracing:
//	  tracer_name: vdiff
//
// # Usage
//
//	cfg, err := config.Resolve("", ".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	patches := vdom.DiffWithOptions(prev, next, cfg.DiffOptions(nil))
package config
