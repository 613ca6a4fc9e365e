package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// FakeOpenAI is an httptest server speaking the chat completions and images
// APIs. Replies are canned per endpoint and calls are counted.
type FakeOpenAI struct {
	*httptest.Server

	mu          sync.Mutex
	chatStatus  int
	chatBody    string
	imageStatus int
	imageBody   string

	ChatCalls  atomic.Int32
	ImageCalls atomic.Int32
}

// NewFakeOpenAI starts a fake provider that is closed when the test ends
func NewFakeOpenAI(t *testing.T) *FakeOpenAI {
	t.Helper()
	f := &FakeOpenAI{chatStatus: http.StatusOK, imageStatus: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		f.ChatCalls.Add(1)
		f.mu.Lock()
		status, body := f.chatStatus, f.chatBody
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	})
	mux.HandleFunc("/v1/images/generations", func(w http.ResponseWriter, r *http.Request) {
		f.ImageCalls.Add(1)
		f.mu.Lock()
		status, body := f.imageStatus, f.imageBody
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

// BaseURL is the value for OPENAI_API_URL
func (f *FakeOpenAI) BaseURL() string {
	return f.URL + "/v1"
}

// ReplyChat makes the chat endpoint answer with content as the first choice
func (f *FakeOpenAI) ReplyChat(content string) {
	encoded, _ := json.Marshal(content)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatStatus = http.StatusOK
	f.chatBody = fmt.Sprintf(`{"id":"chatcmpl-test","model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":%s},"finish_reason":"stop"}]}`, encoded)
}

// FailChat makes the chat endpoint answer with a provider error
func (f *FakeOpenAI) FailChat(status int, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatStatus = status
	f.chatBody = errorBody(message)
}

// ReplyImage makes the images endpoint return url
func (f *FakeOpenAI) ReplyImage(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imageStatus = http.StatusOK
	f.imageBody = fmt.Sprintf(`{"created":1700000000,"data":[{"url":%q}]}`, url)
}

// FailImage makes the images endpoint answer with a provider error
func (f *FakeOpenAI) FailImage(status int, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imageStatus = status
	f.imageBody = errorBody(message)
}

func errorBody(message string) string {
	encoded, _ := json.Marshal(message)
	return fmt.Sprintf(`{"error":{"message":%s,"type":"invalid_request_error"}}`, encoded)
}

// RecipeJSON builds a structured recipe reply with the given title and
// image placeholder.
func RecipeJSON(title, imageURL string) string {
	data, _ := json.Marshal(map[string]any{
		"response": map[string]any{
			"title":       title,
			"description": "Ein saftiger Kuchen mit Zimt",
			"difficulty":  "Mittel",
			"prepTime":    "75 Minuten",
			"servings":    "12 Stücke",
			"category":    "Kuchen",
			"imageUrl":    imageURL,
			"author":      "KI-Konditor",
			"ingredients": []string{"500 g Äpfel", "250 g Mehl", "150 g Butter"},
			"steps":       []string{"Teig kneten", "Äpfel schneiden", "45 Minuten backen"},
			"tips":        []string{"Mit Sahne servieren"},
		},
	})
	return string(data)
}
