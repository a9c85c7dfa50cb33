// Command avreapd is the avreap background daemon: it runs the startup
// preflight checklist, then the periodic scan-and-encode loop, until
// SIGINT or SIGTERM is received.
package main
