// Package perflog appends one record per tick to the performance log.
//
// Writes never block the caller: records are queued for a single writer
// goroutine, and a full queue drops the record and counts it. When the sink
// fails, one notice is emitted, logging is paused, and a write is retried
// every RetryEvery ticks until one succeeds.
//
// Sinks:
//
//	FileSink   - append-only text or JSON lines, flushed after every record
//	SQLiteSink - rows in a samples table (mattn/go-sqlite3, WAL journal)
//
// The text line format is fixed so downstream tools can parse it:
//
//	[2006-01-02 15:04:05] CPU: 12.5%, Memory: 3.20 GB/15.50 GB, Disk Read: 1.00 KB/s, Disk Write: 0.00 B/s, Network Sent: 512.00 B/s, Network Received: 2.00 KB/s
//
// Unavailable fields print N/A. ", Battery: 87.0%" is appended when a battery is present.
package perflog
