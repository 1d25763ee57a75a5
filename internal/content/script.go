package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/llm"
)

// SpeakerOne and SpeakerTwo are the fixed labels for dialogue scripts.
// The speech layer binds each label to a named voice.
const (
	SpeakerOne = "Speaker1"
	SpeakerTwo = "Speaker2"
)

// ScriptLine is one line of a two-speaker dialogue.
type ScriptLine struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// DialogueScript is a generated two-speaker discussion of some content.
// Lines strictly alternate between SpeakerOne and SpeakerTwo.
type DialogueScript struct {
	Lines []ScriptLine `json:"lines"`
}

// Render formats the script in the "Speaker: text" form the speech
// synthesizer expects.
func (d *DialogueScript) Render() string {
	var b strings.Builder
	for _, l := range d.Lines {
		fmt.Fprintf(&b, "%s: %s\n", l.Speaker, l.Text)
	}
	return b.String()
}

// ScriptRequest asks for a dialogue script covering the given content.
type ScriptRequest struct {
	Content string `json:"content" validate:"required,min=3"`
}

// ScriptSchema defines the JSON schema for dialogue script responses.
var ScriptSchema = &llm.Schema{
	Name:        "dialogue-script",
	Description: "A two-speaker discussion script about study content",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"lines": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"speaker": map[string]any{
							"type":        "string",
							"enum":        []any{SpeakerOne, SpeakerTwo},
							"description": "Which speaker says this line. Lines must alternate.",
						},
						"text": map[string]any{
							"type":        "string",
							"description": "What the speaker says, in natural conversational prose",
						},
					},
					"required":             []any{"speaker", "text"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"lines"},
		"additionalProperties": false,
	},
}

const scriptSystemPrompt = `You are a scriptwriter for a two-host educational podcast.

Rules:
- Turn the given content into a lively discussion between Speaker1 and
  Speaker2.
- Speaker1 is the curious host asking questions; Speaker2 is the expert
  explaining.
- Lines must strictly alternate: Speaker1, Speaker2, Speaker1, ...
- Keep each line to one to three sentences of natural spoken language.
- Cover the key points of the content; do not invent facts beyond it.
- 6 to 14 lines total.`

// GenerateScript produces a dialogue script for the audio pipeline.
// Consecutive lines by the same speaker are merged so the result always
// alternates; an empty script is a generation failure.
func (s *Service) GenerateScript(ctx context.Context, req ScriptRequest) (*DialogueScript, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	user := "Content to discuss:\n" + req.Content

	var script DialogueScript
	err := s.invoke(ctx, "script", scriptSystemPrompt, user, ScriptSchema, &script)
	if err != nil {
		return nil, err
	}

	script.Lines = mergeConsecutiveSpeakers(script.Lines)
	if len(script.Lines) == 0 {
		return nil, &GenerationError{
			Capability: "script",
			Err:        fmt.Errorf("model returned an empty script"),
		}
	}

	return &script, nil
}

// mergeConsecutiveSpeakers folds adjacent lines by the same speaker into
// one, dropping empty lines, so the output strictly alternates.
func mergeConsecutiveSpeakers(lines []ScriptLine) []ScriptLine {
	var out []ScriptLine
	for _, l := range lines {
		if strings.TrimSpace(l.Text) == "" {
			continue
		}
		if len(out) > 0 && out[len(out)-1].Speaker == l.Speaker {
			out[len(out)-1].Text += " " + l.Text
			continue
		}
		out = append(out, l)
	}
	return out
}
