// Package process runs the external documentation build/serve tool as a
// managed child process.
//
// The tool (mkdocs behind whatever launcher the repository uses) serves the
// generated subset configuration until the user interrupts it. The runner
// owns that lifecycle:
//
//   - Start the child in its own process group, stdio passed through
//   - Block until the child exits or the context is cancelled
//   - On cancellation, SIGTERM the whole group, then SIGKILL after a
//     graceful timeout
//   - Optionally restart a crashed child a bounded number of times
//
// Example usage:
//
//	runner := process.NewRunner(process.Config{
//	    Name:   "mkdocs",
//	    Binary: "uv",
//	    Args:   []string{"run", "mkdocs", "serve", "-f", out},
//	})
//
//	if err := runner.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package process
