// Package executor spawns the external encoder binary with a synthesized
// argument vector, streams its combined output for diagnostics, and
// awaits termination, following the same exec.CommandContext plus
// bufio.Scanner line-streaming shape the reference daemon used to drive
// its external encoding client.
package executor
