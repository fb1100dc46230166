// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("expansion started", slog.String("source", path))
//	logger.Error("write failed", slog.Any("error", err))
//
// # Levels
//
// Five levels are supported, ordered debug < verbose < info < warn < error.
// The verbose tier sits between debug and info and carries the per-term
// trace emitted while walking grammar expansions.
//
// # Build Log Tee
//
// [WithTee] mirrors every record to a secondary writer, which the CLI uses
// to accumulate a build log file alongside console output:
//
//	file, _ := os.Create("gram.log")
//	log.Config(log.WithTee(file))
//
// # Output Formats
//
// Two output formats are supported: [FormatText] (default) and [FormatJSON].
// When pretty printing is enabled (the default), both formats are colorized
// with ANSI escapes.
package log
