// Package services implements the driving port interfaces.
// Services contain the core retrieval pipeline logic and orchestrate
// calls to driven ports (adapters).
//
// Services hold no mutable shared state: every instance is safe to
// invoke concurrently against the same underlying corpus. Construct
// them once at process startup and inject them into callers.
package services
