// Package classifier scores a candidate as WebLike or DiscLike from its
// path tokens, container bitrate, and codec, the way internal/identification
// in the reference daemon scored disc titles from Unicode-folded path
// tokens — here the token vocabulary and scoring rule are the release-type
// heuristic instead of a disc-title lookup.
package classifier
