package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockSpeechResponse is a canned response for the MockSpeechProvider.
type MockSpeechResponse struct {
	Data     []byte
	MIMEType string
	Err      error
}

// MockSpeechProvider is a deterministic SpeechProvider for testing.
// With no canned responses it returns a short silent PCM clip, so the
// audio pipeline can run end to end by default.
type MockSpeechProvider struct {
	mu        sync.Mutex
	responses []MockSpeechResponse
	Calls     []SpeechRequest
}

// NewMockSpeechProvider creates a MockSpeechProvider with the given canned
// responses.
func NewMockSpeechProvider(responses ...MockSpeechResponse) *MockSpeechProvider {
	return &MockSpeechProvider{responses: responses}
}

// GenerateSpeech returns the next canned response, or silent PCM when the
// queue is empty.
func (m *MockSpeechProvider) GenerateSpeech(_ context.Context, req SpeechRequest) (*SpeechResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return &SpeechResponse{
			Data:     make([]byte, 4800), // 100ms of 16-bit mono 24kHz silence
			MIMEType: "audio/L16;codec=pcm;rate=24000",
			Model:    "mock-tts",
		}, nil
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &SpeechResponse{
		Data:     resp.Data,
		MIMEType: resp.MIMEType,
		Model:    "mock-tts",
	}, nil
}

// SpeechModelID returns "mock-tts".
func (m *MockSpeechProvider) SpeechModelID() string {
	return "mock-tts"
}
