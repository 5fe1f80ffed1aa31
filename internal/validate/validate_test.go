package validate

import (
	"errors"
	"testing"
)

type sample struct {
	Title string `json:"title" validate:"notblank"`
	Start string `json:"startTime" validate:"required,clock"`
	Date  string `json:"date" validate:"required,datekey"`
	Color string `json:"color" validate:"omitempty,oneof=blue green"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     sample
		wantField string
		wantRule  string
	}{
		{
			name:  "valid",
			input: sample{Title: "Standup", Start: "09:00", Date: "2025-06-01", Color: "blue"},
		},
		{
			name:  "empty color allowed",
			input: sample{Title: "Standup", Start: "09:00", Date: "2025-06-01"},
		},
		{
			name:      "blank title",
			input:     sample{Title: "   ", Start: "09:00", Date: "2025-06-01"},
			wantField: "title",
			wantRule:  "notblank",
		},
		{
			name:      "missing start",
			input:     sample{Title: "Standup", Date: "2025-06-01"},
			wantField: "startTime",
			wantRule:  "required",
		},
		{
			name:      "malformed start",
			input:     sample{Title: "Standup", Start: "9am", Date: "2025-06-01"},
			wantField: "startTime",
			wantRule:  "clock",
		},
		{
			name:      "impossible date",
			input:     sample{Title: "Standup", Start: "09:00", Date: "2024-02-30"},
			wantField: "date",
			wantRule:  "datekey",
		},
		{
			name:      "unknown color",
			input:     sample{Title: "Standup", Start: "09:00", Date: "2025-06-01", Color: "plaid"},
			wantField: "color",
			wantRule:  "oneof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.wantRule == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if ve.Field != tt.wantField || ve.Rule != tt.wantRule {
				t.Errorf("got field=%q rule=%q, expected field=%q rule=%q", ve.Field, ve.Rule, tt.wantField, tt.wantRule)
			}
			if ve.Error() == "" {
				t.Error("expected a message")
			}
		})
	}
}

func TestVar(t *testing.T) {
	if err := Var("date", "2025-06-01", "datekey"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := Var("date", "2025-13-01", "datekey")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if ve.Field != "date" || ve.Value != "2025-13-01" {
		t.Errorf("unexpected error contents: %+v", ve)
	}
}

func TestStructPartial(t *testing.T) {
	loose := sample{Title: "Standup", Start: "9:00", Date: "2025-06-01"}

	if err := StructPartial(loose, "Title", "Date"); err != nil {
		t.Errorf("unchecked field should be ignored, got %v", err)
	}
	if err := StructPartial(loose); err != nil {
		t.Errorf("no fields means nothing to check, got %v", err)
	}

	err := StructPartial(loose, "Start")
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "startTime" || ve.Rule != "clock" {
		t.Errorf("expected startTime clock error, got %v", err)
	}
}
