package audio

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/content"
	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/llm"
)

// Default voice assignments for the two dialogue roles and the single
// flashcard reader.
var (
	discussionVoices = []llm.SpeakerVoice{
		{Speaker: content.SpeakerOne, Voice: "Puck"},
		{Speaker: content.SpeakerTwo, Voice: "Kore"},
	}
	readerVoice = []llm.SpeakerVoice{
		{Speaker: "Reader", Voice: "Kore"},
	}
)

// Pipeline composes the script flow, speech synthesis, and WAV transcoding.
//
// Text comes first: once the script (or flashcard set) has been generated,
// a synthesis or transcode failure degrades the result to text-only with
// AudioDataURI empty, instead of failing the request.
type Pipeline struct {
	content *content.Service
	speech  llm.SpeechProvider
	logger  *zap.Logger
}

// NewPipeline creates an audio pipeline.
func NewPipeline(contentSvc *content.Service, speech llm.SpeechProvider, logger *zap.Logger) *Pipeline {
	return &Pipeline{content: contentSvc, speech: speech, logger: logger}
}

// DiscussionResult is a generated discussion with optional audio.
type DiscussionResult struct {
	Script *content.DialogueScript `json:"script"`

	// AudioDataURI is a data:audio/wav;base64 URI, or empty when audio
	// generation failed and the result degraded to text-only.
	AudioDataURI string `json:"audioDataUri,omitempty"`
}

// FlashcardAudioResult is a generated flashcard set with optional audio.
type FlashcardAudioResult struct {
	Cards        []content.Flashcard `json:"cards"`
	AudioDataURI string              `json:"audioDataUri,omitempty"`
}

// Discussion turns arbitrary study content into a spoken two-voice
// discussion. Script generation failure is fatal; synthesis failure is not.
func (p *Pipeline) Discussion(ctx context.Context, req content.ScriptRequest) (*DiscussionResult, error) {
	script, err := p.content.GenerateScript(ctx, req)
	if err != nil {
		// No audio without a script.
		return nil, err
	}

	uri, err := p.synthesize(ctx, script.Render(), discussionVoices)
	if err != nil {
		p.logger.Warn("discussion audio degraded to text-only", zap.Error(err))
		return &DiscussionResult{Script: script}, nil
	}

	return &DiscussionResult{Script: script, AudioDataURI: uri}, nil
}

// FlashcardAudio generates flashcards for a topic and reads them aloud.
// Flashcard generation failure is fatal; synthesis failure degrades to the
// cards alone.
func (p *Pipeline) FlashcardAudio(ctx context.Context, req content.FlashcardRequest) (*FlashcardAudioResult, error) {
	set, err := p.content.GenerateFlashcards(ctx, req)
	if err != nil {
		return nil, err
	}

	uri, err := p.synthesize(ctx, renderCards(set.Cards), readerVoice)
	if err != nil {
		p.logger.Warn("flashcard audio degraded to text-only",
			zap.String("topic", req.Topic),
			zap.Error(err),
		)
		return &FlashcardAudioResult{Cards: set.Cards}, nil
	}

	return &FlashcardAudioResult{Cards: set.Cards, AudioDataURI: uri}, nil
}

// synthesize runs the speech and transcode steps: TTS call, PCM format
// check, WAV wrap, data URI encode.
func (p *Pipeline) synthesize(ctx context.Context, text string, voices []llm.SpeakerVoice) (string, error) {
	if p.speech == nil {
		return "", fmt.Errorf("no speech provider configured")
	}
	resp, err := p.speech.GenerateSpeech(ctx, llm.SpeechRequest{Text: text, Voices: voices})
	if err != nil {
		return "", fmt.Errorf("speech synthesis: %w", err)
	}

	if err := checkPCMFormat(resp.MIMEType); err != nil {
		return "", err
	}

	wav := EncodeWAV(resp.Data, NumChannels, SampleRate, BitsPerSample)
	return "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(wav), nil
}

// checkPCMFormat verifies the synthesizer's declared format matches the
// fixed 16-bit mono 24kHz PCM contract. A different profile means the
// model substituted a format we would transcode incorrectly.
func checkPCMFormat(mimeType string) error {
	lower := strings.ToLower(mimeType)
	if !strings.Contains(lower, "l16") && !strings.Contains(lower, "pcm") {
		return fmt.Errorf("unexpected audio format %q: want raw 16-bit PCM", mimeType)
	}
	if strings.Contains(lower, "rate=") && !strings.Contains(lower, "rate=24000") {
		return fmt.Errorf("unexpected sample rate in %q: want 24000", mimeType)
	}
	return nil
}

// renderCards formats a flashcard set as spoken text.
func renderCards(cards []content.Flashcard) string {
	var b strings.Builder
	for _, c := range cards {
		fmt.Fprintf(&b, "%s. %s\n", c.Term, c.Definition)
	}
	return b.String()
}
