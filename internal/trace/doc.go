// Package trace records structured events about what the front end is
// doing: driver steps, passes, files, and at the finest level individual
// scope operations.
//
// Enable tracing from the CLI:
//
//	scopekit check --trace=debug --trace-output=- file.sk
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything, including scope open/close and placeholder
//     bookkeeping
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.LayerPass, "parse", 0)
//	defer span.End("")
package trace
