// Package gemini implements [askbot.Session] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK. Each session is a genai chat,
// which replays the curated history with every question. Streaming uses the
// SDK's iter.Seq2 iterator, wrapped into the pull-based [askbot.Stream]
// interface.
package gemini

import "errors"

// errNoCandidates is reported for chunks that carry no candidate.
var errNoCandidates = errors.New("gemini: response has no candidates")
