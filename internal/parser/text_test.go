package parser

import (
	"strings"
	"testing"
)

func TestTextParser_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\n\n\nThird paragraph."
	p := &TextParser{}
	paras, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"First paragraph line one.\nFirst paragraph line two.",
		"Second paragraph.",
		"Third paragraph.",
	}
	if len(paras) != len(want) {
		t.Fatalf("expected %d paragraphs, got %d", len(want), len(paras))
	}
	for i, w := range want {
		if paras[i].Text != w {
			t.Errorf("paragraph[%d]: expected %q, got %q", i, w, paras[i].Text)
		}
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	paras, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paras) != 0 {
		t.Errorf("expected 0 paragraphs for empty input, got %d", len(paras))
	}
}

func TestTextParser_EscapesHTML(t *testing.T) {
	p := &TextParser{}
	paras, err := p.Parse(strings.NewReader("a < b & c"), "single.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paras) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(paras))
	}
	if paras[0].HTML != "<p>a &lt; b &amp; c</p>" {
		t.Errorf("unexpected html %q", paras[0].HTML)
	}
}

func TestTextParser_CRLFAndBOM(t *testing.T) {
	input := "\uFEFF1. Пункт\r\n\r\nсержант\r\nКОВАЛЬ Андрій\r\n"
	p := &TextParser{}
	paras, err := p.Parse(strings.NewReader(input), "order.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paras) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(paras))
	}
	if paras[0].Text != "1. Пункт" {
		t.Errorf("paragraph[0] = %q", paras[0].Text)
	}
	if paras[1].Text != "сержант\nКОВАЛЬ Андрій" {
		t.Errorf("paragraph[1] = %q", paras[1].Text)
	}
}
