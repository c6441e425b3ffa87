package declension

import "strings"

// Case positions within Forms.
const (
	Nominative = iota
	Genitive
	Dative
	Accusative
	Instrumental
	Locative
)

// Forms holds a word in the six cases, in the order of the constants above.
type Forms [6]string

// hardMasc declines a masculine name ending in a hard consonant: Іван, Олег.
func hardMasc(nom string) Forms {
	return Forms{nom, nom + "а", nom + "у", nom + "а", nom + "ом", nom + "ові"}
}

// oMasc declines a masculine name ending in -о: Дмитро, Павло.
func oMasc(nom string) Forms {
	s := strings.TrimSuffix(nom, "о")
	return Forms{nom, s + "а", s + "у", s + "а", s + "ом", s + "ові"}
}

// iyMasc declines a masculine name ending in -ій: Андрій, Сергій.
func iyMasc(nom string) Forms {
	s := strings.TrimSuffix(nom, "й")
	return Forms{nom, s + "я", s + "ю", s + "я", s + "єм", s + "єві"}
}

// aDecl declines names ending in -а after a hard consonant: Олена, Микола.
func aDecl(nom string) Forms {
	s := strings.TrimSuffix(nom, "а")
	return Forms{nom, s + "и", s + "і", s + "у", s + "ою", s + "і"}
}

// iyaFem declines a feminine name ending in -ія: Марія, Юлія.
func iyaFem(nom string) Forms {
	s := strings.TrimSuffix(nom, "я")
	return Forms{nom, s + "ї", s + "ї", s + "ю", s + "єю", s + "ї"}
}

func mascPatronymic(nom string) Forms {
	return Forms{nom, nom + "а", nom + "у", nom + "а", nom + "ем", nom + "у"}
}

func femPatronymic(nom string) Forms {
	s := strings.TrimSuffix(nom, "а")
	return Forms{nom, s + "и", s + "і", s + "у", s + "ою", s + "і"}
}

func defaultFirstNames() []Forms {
	var out []Forms
	for _, n := range []string{
		"Олександр", "Іван", "Володимир", "Віктор", "Олег", "Максим", "Артем",
		"Богдан", "Роман", "Тарас", "Ярослав", "Євген", "Вадим", "Денис",
		"Руслан", "Степан", "Назар", "Владислав", "Станіслав", "Костянтин",
		"Леонід", "Антон", "Борис", "Остап", "Святослав", "Едуард",
	} {
		out = append(out, hardMasc(n))
	}
	for _, n := range []string{"Дмитро", "Петро", "Павло", "Михайло", "Кирило", "Данило"} {
		out = append(out, oMasc(n))
	}
	for _, n := range []string{
		"Андрій", "Сергій", "Юрій", "Віталій", "Олексій", "Анатолій",
		"Валерій", "Григорій", "Геннадій", "Дмитрій",
	} {
		out = append(out, iyMasc(n))
	}
	for _, n := range []string{
		"Микола", "Микита", "Олена", "Тетяна", "Ірина", "Анна", "Світлана",
		"Оксана", "Людмила", "Катерина", "Галина", "Алла", "Валентина", "Інна",
	} {
		out = append(out, aDecl(n))
	}
	for _, n := range []string{"Наталія", "Юлія", "Марія", "Вікторія", "Анастасія", "Софія"} {
		out = append(out, iyaFem(n))
	}
	out = append(out,
		Forms{"Ігор", "Ігоря", "Ігорю", "Ігоря", "Ігорем", "Ігореві"},
		Forms{"Василь", "Василя", "Василю", "Василя", "Василем", "Василеві"},
		Forms{"Ілля", "Іллі", "Іллі", "Іллю", "Іллею", "Іллі"},
		Forms{"Ольга", "Ольги", "Ользі", "Ольгу", "Ольгою", "Ользі"},
		Forms{"Дар'я", "Дар'ї", "Дар'ї", "Дар'ю", "Дар'єю", "Дар'ї"},
	)
	return out
}

func defaultPatronymics() []Forms {
	var out []Forms
	for _, n := range []string{
		"Олександрович", "Андрійович", "Іванович", "Сергійович", "Володимирович",
		"Дмитрович", "Миколайович", "Васильович", "Юрійович", "Вікторович",
		"Олегович", "Максимович", "Богданович", "Михайлович", "Віталійович",
		"Олексійович", "Петрович", "Павлович", "Романович", "Тарасович",
		"Ярославович", "Євгенович", "Вадимович", "Русланович", "Ігорович",
		"Анатолійович", "Валерійович", "Григорович", "Степанович", "Леонідович",
		"Костянтинович", "Антонович", "Геннадійович", "Федорович", "Борисович",
		"Валентинович", "Миронович", "В'ячеславович",
	} {
		out = append(out, mascPatronymic(n))
	}
	for _, n := range []string{
		"Олександрівна", "Андріївна", "Іванівна", "Сергіївна", "Володимирівна",
		"Дмитрівна", "Миколаївна", "Василівна", "Юріївна", "Вікторівна",
		"Олегівна", "Богданівна", "Михайлівна", "Петрівна", "Павлівна",
		"Романівна", "Анатоліївна", "Григорівна", "Степанівна", "Леонідівна",
	} {
		out = append(out, femPatronymic(n))
	}
	return out
}

// defaultSurnameRules cover the common Ukrainian surname endings. Longer
// suffixes are tried first regardless of their position here.
func defaultSurnameRules() []SuffixRule {
	hard := []string{"", "а", "у", "ом", "ові"}
	soft := []string{"", "я", "ю", "ем", "еві"}
	hushing := []string{"", "а", "у", "ем", "еві"}
	possessive := []string{"", "а", "у", "им", "і"}
	adjective := []string{"ий", "ого", "ому", "им"}
	femAdjective := []string{"а", "ої", "ій", "у", "ою"}

	rules := []SuffixRule{
		{Suffix: "енко", Strip: "о", Endings: []string{"о", "а", "у", "ом", "ові"}},
		{Suffix: "ко", Strip: "о", Endings: []string{"о", "а", "у", "ом", "ові"}},
		{Suffix: "ський", Strip: "ий", Endings: adjective},
		{Suffix: "цький", Strip: "ий", Endings: adjective},
		{Suffix: "ий", Strip: "ий", Endings: adjective},
		{Suffix: "ська", Strip: "а", Endings: femAdjective},
		{Suffix: "цька", Strip: "а", Endings: femAdjective},
		{Suffix: "ова", Strip: "а", Endings: femAdjective},
		{Suffix: "ева", Strip: "а", Endings: femAdjective},
		{Suffix: "іна", Strip: "а", Endings: femAdjective},
		{Suffix: "ець", Strip: "ець", Endings: []string{"ець", "ця", "цю", "цем", "цеві"}},
		{Suffix: "ай", Strip: "й", Endings: []string{"й", "я", "ю", "єм", "єві"}},
		{Suffix: "ей", Strip: "й", Endings: []string{"й", "я", "ю", "єм", "єві"}},
		{Suffix: "ь", Strip: "ь", Endings: []string{"ь", "я", "ю", "ем", "еві"}},
		{Suffix: "а", Strip: "а", Endings: []string{"а", "и", "і", "у", "ою"}},
	}
	for _, s := range []string{"ак", "як", "ук", "юк", "ик", "ок", "ян", "ан", "ун", "ен", "ет", "ут", "ор", "ід", "ад", "ил", "ел"} {
		rules = append(rules, SuffixRule{Suffix: s, Endings: hard})
	}
	for _, s := range []string{"ар", "яр"} {
		rules = append(rules, SuffixRule{Suffix: s, Endings: soft})
	}
	for _, s := range []string{"ач", "ич", "уш", "аш"} {
		rules = append(rules, SuffixRule{Suffix: s, Endings: hushing})
	}
	for _, s := range []string{"ов", "ев", "єв", "ів", "їв", "ин", "ін", "їн"} {
		rules = append(rules, SuffixRule{Suffix: s, Endings: possessive})
	}
	return rules
}
