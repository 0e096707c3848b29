// Package monitor implements the sample, render, persist pipeline behind the
// taskmanager dashboard.
//
// # Architecture
//
// A Scheduler owns all cross-tick state and runs one tick per interval:
//
//  1. Collector reads the source and builds a Sample (rates from counter deltas)
//  2. History appends the sample to fixed-size ring buffers
//  3. Ranker turns the process table into the top-K ProcessInfo rows
//  4. Renderer.Draw produces a declarative Dashboard for the Display
//  5. PerfLogger receives the sample without blocking the tick
//
// The sleep between ticks is the interval minus the time the tick took, so
// the cadence does not drift. Cancellation is observed during the sleep.
//
// # Unavailable Values
//
// Every reading is a Metric carrying a validity flag. A read that fails or
// exceeds its timeout only marks its own fields unavailable; History stores
// NaN for those points so every series stays aligned by tick.
//
// # Key Components
//
//	Scheduler  - Lifecycle (idle, running, stopping, stopped) and tick loop
//	Collector  - Timed source reads and disk/network rate calculation
//	History    - Ring buffer storage for dashboard graphs
//	Ranker     - Delta-based per-process CPU ranking with pid+name identity
//	Renderer   - Pure Frame to Dashboard conversion
package monitor
