// Package logger provides structured logging for rxfetch using zerolog.
//
// Logs go to stderr by default so that stdout stays free for pipeline
// output. Both JSON and console formats are supported, and component
// loggers carry a "component" field.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("executor")
//	log.Info("pipeline completed", logger.Fields("pipeline", "mergeMap"))
package logger
