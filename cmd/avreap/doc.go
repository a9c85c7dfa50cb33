// Command avreap is a read-only CLI for inspecting avreapd's job records and
// configuration. It never talks to the daemon process; it reads the
// job-state directory and configuration file directly.
package main
