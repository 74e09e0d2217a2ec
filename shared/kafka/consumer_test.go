package kafka

import (
	"context"
	"errors"
	"testing"
)

type payload struct {
	Name string `json:"name"`
}

func TestTypedMessageHandler(t *testing.T) {
	var processed []string
	h := &TypedMessageHandler[payload]{
		Validate: func(p *payload) error {
			if p.Name == "" {
				return errors.New("name is required")
			}
			return nil
		},
		Process: func(_ context.Context, p *payload) error {
			if p.Name == "fail" {
				return errors.New("boom")
			}
			processed = append(processed, p.Name)
			return nil
		},
		AlwaysMark: true,
	}

	cases := []struct {
		name     string
		message  string
		wantMark bool
		wantErr  bool
	}{
		{"valid", `{"name":"ok"}`, true, false},
		{"undecodable", `{not json`, true, false},
		{"invalid", `{"name":""}`, true, false},
		{"process error", `{"name":"fail"}`, false, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			mark, err := h.HandleMessage(context.Background(), []byte(c.message))
			if mark != c.wantMark {
				t.Fatalf("mark = %v; want %v", mark, c.wantMark)
			}
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v; wantErr %v", err, c.wantErr)
			}
		})
	}

	if len(processed) != 1 || processed[0] != "ok" {
		t.Fatalf("processed = %v; want [ok]", processed)
	}
}

func TestNewConsumerRequiresHandler(t *testing.T) {
	if _, err := NewConsumer(ConsumerConfig{Brokers: []string{"localhost:9092"}}); err == nil {
		t.Fatalf("expected error without handler")
	}
}
