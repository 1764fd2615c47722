package main

import (
	"testing"

	"github.com/Lin-Jiong-HDU/shellguard/internal/ai/openai"
	"github.com/Lin-Jiong-HDU/shellguard/internal/storage"
)

func TestNewAIProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     storage.AIConfig
		wantErr bool
	}{
		{"openrouter", storage.AIConfig{Provider: "openrouter", APIKey: "k", Model: "openai/gpt-4-turbo"}, false},
		{"openai", storage.AIConfig{Provider: "openai", APIKey: "k", Model: "gpt-4o"}, false},
		{"missing key", storage.AIConfig{Provider: "openrouter"}, true},
		{"unknown provider", storage.AIConfig{Provider: "glm", APIKey: "k"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := newAIProvider(&storage.Config{AI: tt.cfg})
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if _, ok := p.(*openai.Client); !ok {
				t.Errorf("Expected *openai.Client, got %T", p)
			}
		})
	}
}
