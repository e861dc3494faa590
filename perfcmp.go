package main

import "perfcmp/cmd"

// Overview:
// - "run" executes a program once per test input and keeps each output as a log
// - "collect" files a run's logs under the original or optimized side of a directory
// - "analyse" pairs the logs, compares per-function timings and charts them
func main() {
	cmd.Execute()
}
