// Package logging provides a minimal logging interface and adapters for tabmesh.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that the registry, router, child endpoint and watcher use for observability.
// This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter for hosts that already own a *slog.Logger
//   - TabLogger with tab/component scoping and protocol helpers
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewLogger(&logging.LoggerConfig{Level: logging.LogLevelInfo, Format: "json"})
//	parent := tabmesh.New(func(o *tabmesh.Options) { o.Logger = logger.WithComponent("parent") })
//
// A host with its own slog setup passes it through instead:
//
//	c := child.New(parent, func(o *child.Options) { o.Logger = logging.NewSlogAdapter(hostLogger) })
//
// The design intentionally keeps the interface minimal to avoid vendor lock-in
// while supporting structured logging where available.
package logging
