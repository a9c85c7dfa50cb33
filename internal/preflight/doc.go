// Package preflight provides the startup readiness checks avreapd runs
// before the scheduler admits any job: ffmpeg and ffprobe must be present
// and new enough, at least one AV1 encoder must be built in, and every
// library root plus the job-state and temp-output directories must exist
// and be readable/writable.
//
// RunAll is called once at daemon startup. Any failing Result is
// startup-fatal: the daemon logs which check failed and exits non-zero
// without starting the scheduler. The CLI's "avreap config check" command
// runs the same RunAll checklist. CheckDirectoryAccess and CheckSystemDeps
// are also exported individually.
package preflight
