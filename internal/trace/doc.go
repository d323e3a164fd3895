// Package trace records where the compiler spends its time.
//
// Enable it from the command line:
//
//	cdlc build --trace=- --trace-level=component src/
//
// Spans nest driver → phase → component. A StreamTracer writes each event as it
// happens, either as text or as NDJSON; the Nop tracer costs nothing.
//
//	span := trace.Begin(tr, trace.ScopePhase, "parse", 0)
//	defer span.End("")
package trace
