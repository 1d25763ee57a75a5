package content

import "github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/llm"

// NotesSchema defines the JSON schema for study-notes responses.
var NotesSchema = &llm.Schema{
	Name:        "study-notes",
	Description: "Comprehensive study notes on a topic, in Markdown",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"markdown": map[string]any{
				"type":        "string",
				"description": "The full study notes as Markdown: headings, bullet lists, bold key terms, and a closing summary section.",
			},
		},
		"required":             []any{"markdown"},
		"additionalProperties": false,
	},
}

// QuizSchema defines the JSON schema for quiz generation responses.
var QuizSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A set of quiz questions for a study topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text shown to the learner",
						},
						"type": map[string]any{
							"type":        "string",
							"enum":        []any{"multiple-choice", "short-answer"},
							"description": "How the learner answers: pick an option or type a short free-text answer",
						},
						"options": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "2 to 4 answer options for multiple-choice. Empty array for short-answer.",
						},
						"correctAnswer": map[string]any{
							"type":        "string",
							"description": "The correct answer. For multiple-choice it must be the exact text of one option.",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "A brief explanation of why the answer is correct",
						},
					},
					"required":             []any{"question", "type", "options", "correctAnswer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// FlashcardSchema defines the JSON schema for flashcard responses.
var FlashcardSchema = &llm.Schema{
	Name:        "flashcards",
	Description: "A set of term/definition flashcards for a study topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"term": map[string]any{
							"type":        "string",
							"description": "The front of the card: a key term or concept",
						},
						"definition": map[string]any{
							"type":        "string",
							"description": "The back of the card: a concise definition",
						},
					},
					"required":             []any{"term", "definition"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"cards"},
		"additionalProperties": false,
	},
}

// ChatSchema defines the JSON schema for chatbot responses.
var ChatSchema = &llm.Schema{
	Name:        "chat-reply",
	Description: "A single chatbot reply in character",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"response": map[string]any{
				"type":        "string",
				"description": "The reply text, in the persona's voice",
			},
		},
		"required":             []any{"response"},
		"additionalProperties": false,
	},
}
