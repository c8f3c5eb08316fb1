// Package responder generates assistant replies to document questions.
package responder

import "context"

// Strategy produces a reply to a free-text question. The default
// implementation is the canned keyword matcher; a real inference backend can
// be substituted without touching call sites.
type Strategy interface {
	Respond(ctx context.Context, question string) (string, error)
}
