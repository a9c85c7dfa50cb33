// Package language provides ISO 639 code normalization used by the command
// synthesizer's Russian-audio/subtitle exclusion rule.
package language
