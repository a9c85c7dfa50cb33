// Package testsupport collects small hand-rolled test fakes shared across
// package tests: a fixed/advanceable clock, a jobstore.Store opened in a
// temp directory, a fixture file writer, and a fake ffmpeg executor. The
// reference daemon takes the same approach in its own internal/testsupport
// rather than pulling in testify or a mocking framework.
package testsupport
