package roster

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Шостак Олександр Володимирович", "Шостак Олександр Володимирович"},
		{"  ШОСТАК   Олександр\tВолодимирович ", "Шостак Олександр Володимирович"},
		{"\uFEFFПетренко\u00A0Іван\u200B Іванович", "Петренко Іван Іванович"},
		{"старший лейтенант ПЕТРЕНКО Іван", "Петренко Іван"},
		{"Молодший сержант Коваль Андрій", "Коваль Андрій"},
		{"сержант Коваль Андрій", "Коваль Андрій"},
		{"Сержантенко Іван", "Сержантенко Іван"},
		{"Іванов–Петренко Іван", "Іванов-Петренко Іван"},
		{"сержант", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := CleanName(tt.in); got != tt.want {
			t.Errorf("CleanName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripRank_LongestFirst(t *testing.T) {
	if got := StripRank("старший майстер-сержант Коваль Андрій"); got != "Коваль Андрій" {
		t.Errorf("StripRank = %q", got)
	}
	if got := StripRank("генерал-лейтенант Коваль"); got != "Коваль" {
		t.Errorf("StripRank = %q", got)
	}
}

func TestReadText(t *testing.T) {
	input := "ПІБ\nШостак Олександр Володимирович\n\nсержант ПЕТРЕНКО Іван Іванович\nшостак олександр володимирович\n"
	names, err := ReadText(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	want := []string{"Шостак Олександр Володимирович", "Петренко Іван Іванович"}
	if strings.Join(names, "|") != strings.Join(want, "|") {
		t.Errorf("ReadText = %q, want %q", names, want)
	}
}

func TestReadText_Empty(t *testing.T) {
	_, err := ReadText(strings.NewReader("\n  \nПІБ\n"))
	if !errors.Is(err, ErrNoNames) {
		t.Errorf("expected ErrNoNames, got %v", err)
	}
}

func TestReadCSV_HeaderColumn(t *testing.T) {
	input := "№;Звання;ПІБ;Посада\n1;сержант;Шостак Олександр Володимирович;командир\n2;солдат;Коваль Андрій;стрілець\n"
	names, err := DefaultOptions.ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	want := []string{"Шостак Олександр Володимирович", "Коваль Андрій"}
	if strings.Join(names, "|") != strings.Join(want, "|") {
		t.Errorf("ReadCSV = %q, want %q", names, want)
	}
}

func TestReadCSV_DetectsNameColumn(t *testing.T) {
	input := "1,Шостак Олександр,командир взводу 1\n2,Коваль Андрій,2\n3,Петренко Іван,3\n"
	names, err := DefaultOptions.ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(names) != 3 || names[0] != "Шостак Олександр" {
		t.Errorf("ReadCSV = %q", names)
	}
}

func TestReadCSV_ExplicitColumn(t *testing.T) {
	input := "Шостак Олександр,Коваль Андрій\nПетренко Іван,Іваненко Петро\n"
	names, err := Options{Column: 1}.ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if strings.Join(names, "|") != "Коваль Андрій|Іваненко Петро" {
		t.Errorf("ReadCSV = %q", names)
	}
}

func TestFromStrings(t *testing.T) {
	names, err := FromStrings([]string{"Шостак Олександр\nКоваль Андрій", "  ", "Коваль Андрій"})
	if err != nil {
		t.Fatalf("FromStrings: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("FromStrings = %q", names)
	}
	if _, err := FromStrings(nil); !errors.Is(err, ErrNoNames) {
		t.Errorf("expected ErrNoNames, got %v", err)
	}
}

func TestRead_Dispatch(t *testing.T) {
	if _, err := Read(strings.NewReader("x"), "roster.ods"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	names, err := Read(strings.NewReader("Коваль Андрій\n"), "roster.txt")
	if err != nil || len(names) != 1 {
		t.Errorf("Read txt = %q, %v", names, err)
	}
}

func buildXLSX(t *testing.T, sheet string, shared []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>
  <Override PartName="/xl/worksheets/sheet1.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>
  <Override PartName="/xl/sharedStrings.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"/>
</Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>
</Relationships>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings" Target="sharedStrings.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
</Relationships>`,
		"xl/workbook.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets>
  <sheet name="Особовий склад" sheetId="1" r:id="rId2"/>
</sheets>
</workbook>`,
		"xl/worksheets/sheet1.xml": sheet,
	}
	var ss strings.Builder
	ss.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">`)
	for _, s := range shared {
		ss.WriteString("<si><t>" + s + "</t></si>")
	}
	ss.WriteString("</sst>")
	files["xl/sharedStrings.xml"] = ss.String()

	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	sheet := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
  <row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>
  <row r="2"><c r="A2"><v>1</v></c><c r="B2" t="s"><v>2</v></c></row>
  <row r="3"><c r="A3"><v>2</v></c><c r="B3" t="s"><v>3</v></c></row>
  <row r="4"><c r="A4"><v>3</v></c><c r="B4" t="inlineStr"><is><t>солдат КОВАЛЬ Андрій</t></is></c></row>
</sheetData>
</worksheet>`
	data := buildXLSX(t, sheet, []string{"№", "ПІБ", "Шостак Олександр Володимирович", "Петренко Іван Іванович"})

	names, err := DefaultOptions.ReadXLSX(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	want := []string{"Шостак Олександр Володимирович", "Петренко Іван Іванович", "Коваль Андрій"}
	if strings.Join(names, "|") != strings.Join(want, "|") {
		t.Errorf("ReadXLSX = %q, want %q", names, want)
	}

	if _, err := (Options{Sheet: 3, Column: -1}).ReadXLSX(bytes.NewReader(data)); err == nil {
		t.Error("expected error for missing sheet")
	}
}

func TestReadXLSX_Invalid(t *testing.T) {
	if _, err := DefaultOptions.ReadXLSX(strings.NewReader("not a zip")); err == nil {
		t.Error("expected error for invalid workbook")
	}
}
