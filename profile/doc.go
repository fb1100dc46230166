// Package profile provides optional runtime profiling for the gram
// application.
//
// Profiling integrates [github.com/pkg/profile] behind conditional
// compilation: it must be enabled at build time with the "pprof" build tag.
// When built without the tag (the default), all operations are no-ops with
// zero runtime overhead.
//
// Supported modes when built with the tag: allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread, trace. Use [Modes] to retrieve the
// list programmatically.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
