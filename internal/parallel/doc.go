// Package parallel runs per-row image work across a pool of goroutines.
//
// A [WorkerPool] owns one queue per worker; idle workers steal from the
// others. [Rows] splits an image height into bands and waits for all of
// them, so kernels stay deterministic regardless of worker count.
package parallel
