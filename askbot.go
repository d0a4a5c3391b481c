// Package askbot relays chat commands to a generative-language service and
// streams the answers back into the channel as a progressively edited
// message.
//
// The root package holds the domain types and the two pieces of logic that
// do not depend on any platform: the Coordinator, which turns one question
// into placeholder, edits and overflow messages, and the Router, which maps
// command words to per-tier session stores. Sub-packages adapt concrete
// dependencies: gemini for the remote service, discord for the chat
// platform, inmem for session storage and bubbletea for a local console.
package askbot

import "time"

const (
	// MaxMessageLength is the platform's single-message limit in characters.
	MaxMessageLength = 2000

	// ChunkLength is the size of overflow messages. It leaves headroom
	// below MaxMessageLength.
	ChunkLength = 1990

	// DefaultEditInterval is the minimum time between placeholder edits.
	DefaultEditInterval = 1500 * time.Millisecond

	// DefaultPrefix starts every command.
	DefaultPrefix = "!"
)

// User-visible texts.
const (
	placeholderFormat = "'%s'에 대해 생각 중입니다... 🤔"
	errorFormat       = "오류가 발생했습니다: %v"

	// NoAnswerMessage replaces a blank answer.
	NoAnswerMessage = "죄송합니다, 답변을 생성하지 못했습니다."
)

// Default tiers, matching the models the bot was first deployed with.
var (
	FastTier = Tier{
		Name:        "fast",
		Command:     "질문",
		Model:       "gemini-flash-latest",
		Description: "빠른 답변 (Flash 모델)을 요청합니다.",
	}
	DeepTier = Tier{
		Name:        "deep",
		Command:     "심층리서치",
		Model:       "gemini-2.5-pro",
		Description: "깊이 있는 답변 (Pro 모델)을 요청합니다.",
	}
)

// DefaultSystemInstruction is applied to every session of both tiers.
const DefaultSystemInstruction = "You are a world-class AI assistant specialized in all aspects of programming. " +
	"Your goal is to provide expert-level help to developers. You can write code, debug issues, " +
	"explain complex software engineering concepts, and provide guidance on best practices. " +
	"Please provide answers in Korean."
