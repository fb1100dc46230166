// Package cli contains the command line interface for gram.
//
// # Usage
//
// The CLI provides four commands:
//
//	gram init                   # write a default settings file
//	gram check [sources...]     # validate grammar documents
//	gram browse <source>        # interactively browse expansion results
//	gram expand <source> [out]  # expand grammar documents (default command)
//
// The expand command is the default, so grammar documents can be expanded
// without naming it:
//
//	gram items.json items.out.json
//
// # Settings
//
// Flags may be set persistently through a settings.json file in the working
// directory, parsed with the relaxed codec (comments allowed). Command-line
// flags override settings file values. Use "gram init" to write a default
// settings file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (debug, verbose, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (Kitchen, RFC3339, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized pretty printing
//   - --log-file: Mirror log output to a file
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o gram .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
//
// # Examples
//
//	# Validate documents without writing output
//	gram check items.json weapons.json
//
//	# Expand with debug logging
//	gram --log-level=debug expand items.json items.out.json
//
//	# Batch-process the recipes of a source tree in place
//	gram expand --generate=recipes ./src ./dst
package cli
