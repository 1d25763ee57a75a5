package llm

import (
	"context"
	"encoding/json"
)

// Provider is the text-generation abstraction the rest of the app builds
// on. Callers describe a prompt in a Request and get back structured JSON.
type Provider interface {
	// Generate runs one prompt. When Request.Schema is set the provider
	// asks for structured output and validates what comes back, so the
	// returned Content is schema-conforming JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// SpeechProvider synthesizes spoken audio from text. Only providers with a
// native text-to-speech surface implement it (currently Gemini).
type SpeechProvider interface {
	// GenerateSpeech renders the request text as raw audio. The response
	// carries the provider's declared MIME type; callers must check it
	// against the sample format they expect before transcoding.
	GenerateSpeech(ctx context.Context, req SpeechRequest) (*SpeechResponse, error)

	// SpeechModelID returns the TTS model identifier.
	SpeechModelID() string
}

// Request is a single generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation so far. Note and quiz generation send
	// one user message; the chatbot sends the whole exchange.
	Messages []Message

	// Schema, when non-nil, makes the provider use its native structured
	// output mechanism and constrains Content to this shape. When nil the
	// response is free text wrapped as a JSON string.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature in [0, 1]; zero means deterministic.
	Temperature float64
}

// Message is one turn of a conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names and defines the JSON shape a generation must produce.
type Schema struct {
	// Name labels the schema on the wire (OpenAI requires one).
	// Kebab-case, e.g. "quiz-questions".
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema itself as a map.
	Definition map[string]any
}

// Response is what a Generate call produced.
type Response struct {
	// Content is the output: validated JSON when the request carried a
	// Schema, otherwise the raw text wrapped as a JSON string.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that actually served the call, which may differ
	// from the configured friendly name.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// SpeakerVoice binds a logical speaker label appearing in the script text
// (e.g. "Speaker1") to a provider voice name.
type SpeakerVoice struct {
	Speaker string
	Voice   string
}

// SpeechRequest describes a text-to-speech invocation.
type SpeechRequest struct {
	// Text is the content to speak. For multi-speaker synthesis it must be
	// a script whose lines are prefixed with the speaker labels configured
	// in Voices.
	Text string

	// Voices configures named voices per speaker. Empty means the
	// provider's default single voice.
	Voices []SpeakerVoice
}

// SpeechResponse holds raw synthesized audio.
type SpeechResponse struct {
	// Data is the raw audio payload as returned by the provider,
	// typically headerless PCM samples.
	Data []byte

	// MIMEType is the provider-declared format of Data,
	// e.g. "audio/L16;codec=pcm;rate=24000".
	MIMEType string

	// Model is the model that served the request.
	Model string
}

// Usage counts tokens for a single call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
