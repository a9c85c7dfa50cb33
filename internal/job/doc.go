// Package job defines the job record and status enum shared by the
// jobstore, controller, scheduler, and CLI inspection surface.
package job
