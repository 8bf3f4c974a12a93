// Package telemetry configures structured logging for qeforge.
//
// Logging is built on zerolog. The CLI creates one Logger from a
// LoggingConfig, installs it as the global zerolog logger and stores it in the
// command context; packages that do I/O (the job loader and the watcher) pull
// it back out with FromContext and derive component loggers:
//
//	cfg := telemetry.DefaultConfig()
//	cfg.Logging.Level = "debug"
//
//	logger, err := telemetry.NewLogger(cfg.Logging)
//	if err != nil {
//	    return err
//	}
//	ctx = logger.WithContext(ctx)
//
//	telemetry.FromContext(ctx).NewComponentLogger("jobfile").
//	    WithJob("fe.yaml").
//	    Info("Job loaded")
//
// Log levels: trace, debug, info, warn, error, fatal. Formats: console
// (human-readable, default) and json.
//
// The rendering packages (namelist, pw, bands, pw2wannier90) are pure and do
// not log.
package telemetry
