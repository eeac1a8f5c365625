package recognizer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestHeaderRecognizer(t *testing.T) {
	tests := []struct {
		name      string
		r         Recognizer
		input     string
		wantTexts []string
		wantTypes []ContextType
	}{
		{
			name:      "settings header",
			r:         NewSettingsTableHeaderRecognizer(),
			input:     "*** Settings ***",
			wantTexts: []string{"*** Settings ***"},
			wantTypes: []ContextType{ContextSettingsTableHeader},
		},
		{
			name:      "header without trailing asterisks",
			r:         NewSettingsTableHeaderRecognizer(),
			input:     "*** Setting",
			wantTexts: []string{"*** Setting"},
			wantTypes: []ContextType{ContextSettingsTableHeader},
		},
		{
			name:      "singular keyword",
			r:         NewKeywordsTableHeaderRecognizer(),
			input:     "*** Keyword ***",
			wantTexts: []string{"*** Keyword ***"},
			wantTypes: []ContextType{ContextKeywordsTableHeader},
		},
		{
			name:      "two word name",
			r:         NewTestCasesTableHeaderRecognizer(),
			input:     "*** test cases ***",
			wantTexts: []string{"*** test cases ***"},
			wantTypes: []ContextType{ContextTestCasesTableHeader},
		},
		{
			name:      "double space makes the header incorrect",
			r:         NewKeywordsTableHeaderRecognizer(),
			input:     "***  Keywords  ***",
			wantTexts: []string{"***  Keywords  ***"},
			wantTypes: []ContextType{ContextKeywordsTableHeaderIncorrect},
		},
		{
			name:  "no name",
			r:     NewSettingsTableHeaderRecognizer(),
			input: "*** ***",
		},
		{
			name:  "no asterisks",
			r:     NewSettingsTableHeaderRecognizer(),
			input: "Settings",
		},
		{
			name:  "other table",
			r:     NewVariablesTableHeaderRecognizer(),
			input: "*** Settings ***",
		},
		{
			name:      "header after text",
			r:         NewKeywordsTableHeaderRecognizer(),
			input:     "foobar *Keyword*",
			wantTexts: []string{"*Keyword*"},
			wantTypes: []ContextType{ContextKeywordsTableHeader},
		},
		{
			name:      "repeated name reopens",
			r:         NewKeywordsTableHeaderRecognizer(),
			input:     "*Keyword Keyword*",
			wantTexts: []string{"*Keyword", "Keyword*"},
			wantTypes: []ContextType{ContextKeywordsTableHeader, ContextKeywordsTableHeaderIncorrect},
		},
		{
			name:      "pipe line header",
			r:         NewSettingsTableHeaderRecognizer(),
			input:     "| *** Settings *** |",
			wantTexts: []string{"*** Settings ***"},
			wantTypes: []ContextType{ContextSettingsTableHeader},
		},
		{
			name:      "user table",
			r:         NewUserTableHeaderRecognizer(),
			input:     "*** My Table ***",
			wantTexts: []string{"*** My Table ***"},
			wantTypes: []ContextType{ContextUserTableHeader},
		},
		{
			name:  "user table rejects known names",
			r:     NewUserTableHeaderRecognizer(),
			input: "*** Settings ***",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recognize(tt.r, tt.input)
			if diff := cmp.Diff(tt.wantTexts, texts(got), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Recognize() texts mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantTypes, types(got), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Recognize() types mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
