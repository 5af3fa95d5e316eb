package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

const (
	upperLetters = `A-ZÁÉÍÓÚÑÜ`
	letters      = upperLetters + `a-záéíóúñü`
)

// Номер удостоверения: 7–8 цифр, более длинные серии цифр отбрасываются.
var ciRules = []rule[string]{
	{re: compile(`(?<!/)\b(?:CI|C\.I\.?|CARNET|C[EÉ]DULA|No\.)[\s:.#]*(\d{7,8})(?!\d)`, caseless), accept: acceptCI},
	{re: compile(`(?<!\d)(\d{7,8})[ \t]*-?[ \t]*[A-Z]{2}`, caseExact), accept: acceptCI},
	{re: compile(`(?<!\S)(\d{7,8})(?!\S)`, caseExact), accept: acceptCI},
}

func acceptCI(m *regexp2.Match) (string, bool) {
	ci := strings.Join(strings.Fields(group(m, 1)), "")
	if n := len(ci); n < 7 || n > 8 {
		return "", false
	}
	return ci, true
}

// personName имя, разобранное из строки "A: ИМЕНА ФАМИЛИИ"
type personName struct {
	given    string
	surnames string
}

// Якорь "A:" на обороте: 3–5 слов заглавными.
var backNameRules = []rule[personName]{
	{re: compile(`(?<![`+letters+`])A:[ \t]*([`+upperLetters+`]+(?:[ \t]+[`+upperLetters+`]+){2,4})(?![`+letters+`])`, caseExact), accept: acceptFullName},
	{re: compile(`(?<![`+letters+`])A:[ \t]*([`+upperLetters+`][`+letters+` \t]+?)[ \t]*(?=[ÉËÈ]|Nacido|$)`, caseExact), accept: acceptFullName},
}

var nameNoise = compile(`[ \t]+(?:DES|ME|NACIDO|[EÉÈË])(?![`+letters+`]).*$`, regexp2.IgnoreCase)

// Систематические ошибки распознавания фамилий.
var (
	mateoCorrections = []replacement{
		{re: compile(`MAT[ \t]EO`, regexp2.IgnoreCase), with: "MATEO"},
		{re: compile(`MÁTEO`, regexp2.IgnoreCase), with: "MATEO"},
	}
	nameCorrections = append([]replacement{
		{re: compile(`CAI[ \t]+LISAYA`, regexp2.IgnoreCase), with: "CALLISAYA"},
	}, mateoCorrections...)
)

func cleanName(s string) string {
	s = collapseSpaces(s)
	if out, err := nameNoise.Replace(s, "", -1, 1); err == nil {
		s = out
	}
	return collapseSpaces(applyReplacements(s, nameCorrections))
}

func acceptFullName(m *regexp2.Match) (personName, bool) {
	var parts []string
	for _, p := range strings.Fields(cleanName(group(m, 1))) {
		if len([]rune(p)) > 1 {
			parts = append(parts, p)
		}
	}
	switch {
	case len(parts) >= 4:
		return personName{given: strings.Join(parts[:2], " "), surnames: strings.Join(parts[2:], " ")}, true
	case len(parts) == 3:
		return personName{given: parts[0], surnames: strings.Join(parts[1:], " ")}, true
	default:
		return personName{}, false
	}
}

// Подписанные поля лицевой стороны: значение на той же строке или на следующей.
var givenNameRules = []rule[string]{
	{re: compile(`\bNOMBRES?\b[ \t]*:?[ \t]*([`+letters+`][`+letters+` \t]*?)[ \t]*(?=\bAPELLIDOS?\b|$)`, caseless), accept: acceptLabelledName},
	{re: compile(`\bNOMBRES?\b[ \t]*:?[ \t]*\n[ \t]*([`+letters+`][`+letters+` \t]*?)[ \t]*$`, caseless), accept: acceptLabelledName},
}

var surnameRules = []rule[string]{
	{re: compile(`\bAPELLIDOS?\b[ \t]*:?[ \t]*([`+letters+`][`+letters+` \t]*?)[ \t]*$`, caseless), accept: acceptLabelledName},
	{re: compile(`\bAPELLIDOS?\b[ \t]*:?[ \t]*\n[ \t]*([`+letters+`][`+letters+` \t]*?)[ \t]*$`, caseless), accept: acceptLabelledName},
}

func acceptLabelledName(m *regexp2.Match) (string, bool) {
	return nonBlank(cleanName(group(m, 1)))
}

var months = map[string]int{
	"enero":      1,
	"febrero":    2,
	"marzo":      3,
	"abril":      4,
	"mayo":       5,
	"junio":      6,
	"julio":      7,
	"agosto":     8,
	"septiembre": 9,
	"setiembre":  9,
	"octubre":    10,
	"noviembre":  11,
	"diciembre":  12,
}

var birthDateRules = []rule[string]{
	{re: compile(`Nacido\s*el\s+(\d{1,2})\s+de\s+([`+letters+`]+)\s+de\s+(\d{4})(?!\d)`, caseless), accept: acceptSpelledDate},
	{re: compile(`\b(?:NACIMIENTO|NAC|BORN)\b\.?[\s:]*(\d{1,2})[/.-](\d{1,2})[/.-](\d{4})(?!\d)`, caseless), accept: acceptNumericDate},
	{re: compile(`(?<!\d)(\d{1,2})[/.-](\d{1,2})[/.-](\d{4})(?!\d)`, caseExact), accept: acceptNumericDate},
}

func acceptSpelledDate(m *regexp2.Match) (string, bool) {
	month, ok := months[strings.ToLower(group(m, 2))]
	if !ok {
		return "", false
	}
	return formatDate(group(m, 1), month, group(m, 3))
}

func acceptNumericDate(m *regexp2.Match) (string, bool) {
	month, err := strconv.Atoi(group(m, 2))
	if err != nil {
		return "", false
	}
	return formatDate(group(m, 1), month, group(m, 3))
}

// formatDate приводит дату к DD/MM/YYYY и отбрасывает невозможные день и месяц
func formatDate(dayText string, month int, year string) (string, bool) {
	day, err := strconv.Atoi(dayText)
	if err != nil || day < 1 || day > 31 || month < 1 || month > 12 {
		return "", false
	}
	return fmt.Sprintf("%02d/%02d/%s", day, month, year), true
}

var birthPlaceRules = []rule[string]{
	{re: compile(`\b[Ee][Nn][ \t]+([`+upperLetters+`][`+upperLetters+` \t-]*?)[ \t]*(?=(?i:Domicilio)\b|\d|$)`, caseExact), accept: acceptPlace},
	{re: compile(`\b(?:LUGAR[ \t]+DE[ \t]+NACIMIENTO|NACIMIENTO|BORN[ \t]+IN)\b[ \t]*:?[ \t]*([`+letters+`][`+letters+` \t,]*)`, caseless), accept: acceptPlace},
	{re: compile(`\b(LA[ \t]+PAZ|COCHABAMBA|SANTA[ \t]+CRUZ|ORURO|POTOS[IÍ]|TARIJA|CHUQUISACA|BENI|PANDO)\b`, caseless), accept: acceptPlace},
}

// Хвост "- MURILLO - NUESTRA SEÑORA DE LA PAZ": провинция и город после департамента.
var placeNoise = compile(`[ \t]*-[ \t]*(?:MURILLO|NUESTRA)\b.*$`, regexp2.IgnoreCase)

func acceptPlace(m *regexp2.Match) (string, bool) {
	s := collapseSpaces(group(m, 1))
	if out, err := placeNoise.Replace(s, "", -1, 1); err == nil {
		s = out
	}
	return nonBlank(strings.TrimRight(s, " -,"))
}

var addressRules = []rule[string]{
	{re: compile(`\bDomicilio\b[ \t]*:?[ \t]*(\S[^\n]*?)[ \t]*(?=\bPadre\b|$)`, caseless), accept: acceptAddress},
	{re: compile(`\b(?:DOMICILIO|DIRECCI[OÓ]N|ADDRESS)\b[ \t]*:?[ \t]*\n[ \t]*(\S[^\n]*?)[ \t]*$`, caseless), accept: acceptAddress},
}

var addressNoise = []replacement{
	// номер документа "* 1317" в конце строки
	{re: compile(`[ \t]*\*[ \t]*\d{4}[ \t]*\.?[ \t]*$`, regexp2.None), with: ""},
	{re: compile(`[ \t]*\*+[ \t]*$`, regexp2.None), with: ""},
}

func acceptAddress(m *regexp2.Match) (string, bool) {
	return nonBlank(collapseSpaces(applyReplacements(group(m, 1), addressNoise)))
}

var fatherRules = []rule[string]{
	{re: compile(`\bPadre\b[ \t]*:?[ \t]*([`+letters+`][`+letters+` \t]*?)[ \t]*(?=/C[I1]:|[ \t]e[ \t]|\bMadre\b|$)`, caseless), accept: acceptFather},
	{re: compile(`\bPadre\b[ \t]*:?[ \t]*\n[ \t]*([`+letters+`][`+letters+` \t]*?)[ \t]*(?=/C[I1]:|$)`, caseless), accept: acceptFather},
}

var motherRules = []rule[string]{
	{re: compile(`\bMadre\b[ \t]*:?[ \t]*([`+letters+`][`+letters+` \t]*?)[ \t]*(?=/C[I1]:|[ \t]uu?[ \t]|$)`, caseless), accept: acceptMother},
	{re: compile(`\bMadre\b[ \t]*:?[ \t]*\n[ \t]*([`+letters+`][`+letters+` \t]*?)[ \t]*(?=/C[I1]:|$)`, caseless), accept: acceptMother},
}

// Движок дописывает к именам родителей одиночные "e" и "u"/"uu".
var (
	fatherNoise = []replacement{{re: compile(`[ \t]+e+$`, regexp2.IgnoreCase), with: ""}}
	motherNoise = append([]replacement{{re: compile(`[ \t]+uu?$`, regexp2.IgnoreCase), with: ""}}, mateoCorrections...)
)

func acceptFather(m *regexp2.Match) (string, bool) {
	return nonBlank(collapseSpaces(applyReplacements(collapseSpaces(group(m, 1)), fatherNoise)))
}

func acceptMother(m *regexp2.Match) (string, bool) {
	return nonBlank(collapseSpaces(applyReplacements(collapseSpaces(group(m, 1)), motherNoise)))
}

// Серийный номер бланка: от подписанных форм к близости к меткам "serie"/"BIO".
var serialPatterns = []*regexp2.Regexp{
	compile(`\bserie\b[ \t:.]*(\d+)`, caseless),
	compile(`\bserie\b[ \t:.]*[A-Za-z]*[ \t]*(\d{4,6})(?!\d)`, caseless),
	compile(`\bserie\b[ \t:.]+((?-i:[A-Z]+)\d*)(?![A-Za-z0-9])`, caseless),
	compile(`\b(?:serie|BIO)[\s\S]{0,50}?(?<!\d)(\d{4,6})(?!\d)`, caseless),
	compile(`(?<![A-Za-z])([A-Z]{2}\d{6,8})(?!\d)`, caseExact),
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func nonBlank(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
