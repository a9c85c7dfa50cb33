// Package synth builds the ffmpeg argument vector for one job: the shared
// input/stream-selection/output tail plus an encoder-specific tail chosen
// by the job's target encoder (Input.Encoder).
package synth
