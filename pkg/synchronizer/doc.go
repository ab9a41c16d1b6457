// Package synchronizer materializes a target's generated content on disk.
//
// Synchronization runs in two steps. A planner compares the content map with
// what is already under the output root and produces a Plan: directories to
// create, files to create or update, files left alone because they are
// unchanged or must not be overwritten, and (for clean targets) stale files
// and directories to remove. An Executor then applies the plan.
//
// Two executors are provided:
//   - FSExecutor applies a plan through types.FS, writing files in parallel
//     and running the clean pass only after every write has finished.
//   - SynthfsExecutor applies a plan as synthfs pipelines rooted at the
//     output root.
//
// Unchanged files are never rewritten, so their modification time is kept.
// Verify reuses the planner to report drift without touching the disk.
package synchronizer
