// Package sizegate compares encoded output size against the original and
// decides whether the economic gain justifies a replacement.
package sizegate
