package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.0-flash",
	"gemini-pro":   "gemini-2.0-pro",
}

// geminiSpeechModels maps friendly names to Gemini TTS model IDs.
var geminiSpeechModels = map[string]string{
	"gemini-tts": "gemini-2.5-flash-preview-tts",
}

// GeminiProvider implements Provider and SpeechProvider using the Google
// Gemini SDK.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	speechModel string
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client:      client,
		model:       resolveModel(cfg.Model, geminiModels),
		speechModel: resolveModel(cfg.SpeechModel, geminiSpeechModels),
	}, nil
}

func (p *GeminiProvider) ModelID() string       { return p.model }
func (p *GeminiProvider) SpeechModelID() string { return p.speechModel }

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = toGenaiSchema(req.Schema.Definition)
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, geminiContents(req.Messages), config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	content := json.RawMessage(result.Text())
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}

	stop := "end"
	if len(result.Candidates) > 0 && result.Candidates[0].FinishReason == "MAX_TOKENS" {
		stop = "max_tokens"
	}
	resp := &Response{
		Content:    content,
		Model:      p.model,
		StopReason: stop,
	}
	if u := result.UsageMetadata; u != nil {
		resp.Usage = Usage{
			InputTokens:  int(u.PromptTokenCount),
			OutputTokens: int(u.CandidatesTokenCount),
			TotalTokens:  int(u.TotalTokenCount),
		}
	}
	return resp, nil
}

// GenerateSpeech synthesizes the request text as raw audio using the TTS
// model. Gemini returns headerless PCM (16-bit mono 24kHz) as inline data;
// the declared MIME type is passed through for the caller to check.
func (p *GeminiProvider) GenerateSpeech(ctx context.Context, req SpeechRequest) (*SpeechResponse, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
	}
	if len(req.Voices) > 0 {
		config.SpeechConfig = speechConfig(req.Voices)
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: req.Text}},
	}}

	result, err := p.client.Models.GenerateContent(ctx, p.speechModel, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	blob := firstInlineData(result)
	if blob == nil || len(blob.Data) == 0 {
		return nil, &ErrInvalidResponse{
			Err: fmt.Errorf("no audio data in Gemini TTS response"),
		}
	}

	return &SpeechResponse{
		Data:     blob.Data,
		MIMEType: blob.MIMEType,
		Model:    p.speechModel,
	}, nil
}

func speechConfig(voices []SpeakerVoice) *genai.SpeechConfig {
	configs := make([]*genai.SpeakerVoiceConfig, len(voices))
	for i, v := range voices {
		configs[i] = &genai.SpeakerVoiceConfig{
			Speaker: v.Speaker,
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: v.Voice},
			},
		}
	}
	return &genai.SpeechConfig{
		MultiSpeakerVoiceConfig: &genai.MultiSpeakerVoiceConfig{
			SpeakerVoiceConfigs: configs,
		},
	}
}

func geminiContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, len(msgs))
	for i, m := range msgs {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		out[i] = &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		}
	}
	return out
}

var genaiTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

// toGenaiSchema converts a JSON Schema definition map into the SDK's
// schema type. Only the subset of keywords the generators emit is mapped.
func toGenaiSchema(def map[string]any) *genai.Schema {
	schema := &genai.Schema{}

	if t, ok := def["type"].(string); ok {
		if mapped, ok := genaiTypes[t]; ok {
			schema.Type = mapped
		} else {
			schema.Type = genai.TypeString
		}
	}
	if desc, ok := def["description"].(string); ok {
		schema.Description = desc
	}
	if props, ok := def["properties"].(map[string]any); ok {
		schema.Properties = make(map[string]*genai.Schema, len(props))
		for name, v := range props {
			if sub, ok := v.(map[string]any); ok {
				schema.Properties[name] = toGenaiSchema(sub)
			}
		}
	}
	for _, r := range stringSlice(def["required"]) {
		schema.Required = append(schema.Required, r)
	}
	for _, e := range stringSlice(def["enum"]) {
		schema.Enum = append(schema.Enum, e)
	}
	if items, ok := def["items"].(map[string]any); ok {
		schema.Items = toGenaiSchema(items)
	}

	return schema
}

// stringSlice extracts the string members of a decoded JSON array.
func stringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// firstInlineData returns the first inline-data part of the response.
func firstInlineData(result *genai.GenerateContentResponse) *genai.Blob {
	for _, cand := range result.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil {
				return part.InlineData
			}
		}
	}
	return nil
}

func mapGeminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return statusToError(apiErr.Code, err)
	}
	return statusToError(0, err)
}
