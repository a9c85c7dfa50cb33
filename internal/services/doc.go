// Package services defines error and context conventions shared by every
// controller stage.
//
//   - Context helpers stamp job IDs, stage names, and scan-cycle correlation
//     identifiers for logging.
//   - Sentinel error markers plus Wrap translate stage failures into the
//     job statuses the controller persists.
package services
