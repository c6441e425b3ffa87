package ordermode

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const fiveParagraphs = `Вважати ШОСТАКА Олександра Володимировича таким, що прибув, в наказі командира від 01.02.2024 № 12.

Відповідно до розпорядження в наказі зазначено строки виконання.

ПЕТРЕНКУ Івану Івановичу надати відпустку.

Зміни в наказі стосуються ПЕТРЕНКА Івана Івановича та КОВАЛЯ Андрія.

Контроль за виконанням залишаю за собою.`

func TestFindOrderParagraphs_Conjunctive(t *testing.T) {
	roster := []string{
		"Шостак Олександр Володимирович",
		"Петренко Іван Іванович",
		"Коваль Андрій",
	}
	got := FindOrderParagraphs(fiveParagraphs, roster)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(got), got)
	}

	if !strings.HasPrefix(got[0].Paragraph, "Вважати ШОСТАКА") {
		t.Errorf("first match = %q", got[0].Paragraph)
	}
	if strings.Join(got[0].MatchedNames, "|") != "Шостак Олександр Володимирович" {
		t.Errorf("first match names = %v", got[0].MatchedNames)
	}

	if !strings.HasPrefix(got[1].Paragraph, "Зміни в наказі") {
		t.Errorf("second match = %q", got[1].Paragraph)
	}
	if strings.Join(got[1].MatchedNames, "|") != "Петренко Іван Іванович|Коваль Андрій" {
		t.Errorf("second match names = %v", got[1].MatchedNames)
	}
}

func TestFindOrderParagraphs_StartPosition(t *testing.T) {
	got := FindOrderParagraphs(fiveParagraphs, []string{"Петренко Іван Іванович"})
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	runes := []rune(fiveParagraphs)
	start := got[0].StartPosition
	end := start + utf8.RuneCountInString(got[0].Paragraph)
	if end > len(runes) || string(runes[start:end]) != got[0].Paragraph {
		t.Errorf("start position %d does not point at the paragraph", start)
	}
}

func TestFindOrderParagraphs_KeywordCaseAndCustomKeyword(t *testing.T) {
	text := "В НАКАЗІ згадано Шостака Олександра.\n\nЗгідно з розпорядженням Шостака Олександра призначити."
	got := FindOrderParagraphs(text, []string{"Шостак Олександр"})
	if len(got) != 1 || !strings.HasPrefix(got[0].Paragraph, "В НАКАЗІ") {
		t.Fatalf("default keyword: %+v", got)
	}

	f := NewFinder("розпорядженням", nil)
	got = f.FindOrderParagraphs(text, []string{"Шостак Олександр"})
	if len(got) != 1 || !strings.HasPrefix(got[0].Paragraph, "Згідно") {
		t.Fatalf("custom keyword: %+v", got)
	}
}

func TestFindOrderParagraphs_BlankLinesWithSpaces(t *testing.T) {
	text := "  в наказі Коваль Андрій  \r\n \t \r\nв наказі без імені"
	got := FindOrderParagraphs(text, []string{"Коваль Андрій"})
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].Paragraph != "в наказі Коваль Андрій" {
		t.Errorf("paragraph = %q", got[0].Paragraph)
	}
	if got[0].StartPosition != 2 {
		t.Errorf("start position = %d, want 2", got[0].StartPosition)
	}
}

func TestFindOrderParagraphs_EmptyRoster(t *testing.T) {
	if got := FindOrderParagraphs(fiveParagraphs, nil); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
	if got := FindOrderParagraphs(fiveParagraphs, []string{"  "}); got != nil {
		t.Errorf("blank names: expected nil, got %+v", got)
	}
}
