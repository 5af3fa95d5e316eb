package app

import (
	"github.com/dlclark/regexp2"

	"carnet-ocr/internal/domain/entity"
)

// DefaultSerialDenylist числа, которые на реальных снимках попадали в серию
// из соседних полей. Список подобран по небольшой выборке.
var DefaultSerialDenylist = []string{"8446290", "21222", "2026", "2002"}

const (
	minSerialLength = 2
	maxSerialLength = 10
)

// Extractor извлекает поля удостоверения из распознанного текста.
// Каждое поле задаётся каскадом правил; первое принятое совпадение побеждает.
type Extractor struct {
	serialDenylist map[string]struct{}
	cascades       map[entity.FieldName][]rule[string]
}

// ExtractorOption настройка экстрактора
type ExtractorOption func(*Extractor)

// WithSerialDenylist заменяет список отбрасываемых серий
func WithSerialDenylist(values ...string) ExtractorOption {
	return func(e *Extractor) {
		e.serialDenylist = toSet(values)
	}
}

// NewExtractor создаёт экстрактор полей
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{serialDenylist: toSet(DefaultSerialDenylist)}
	for _, opt := range opts {
		opt(e)
	}

	serialRules := make([]rule[string], 0, len(serialPatterns))
	for _, re := range serialPatterns {
		serialRules = append(serialRules, rule[string]{re: re, accept: e.acceptSerial})
	}

	e.cascades = map[entity.FieldName][]rule[string]{
		entity.FieldCI:              ciRules,
		entity.FieldFechaNacimiento: birthDateRules,
		entity.FieldLugarNacimiento: birthPlaceRules,
		entity.FieldDomicilio:       addressRules,
		entity.FieldPadre:           fatherRules,
		entity.FieldMadre:           motherRules,
		entity.FieldSerie:           serialRules,
	}
	return e
}

// Extract разбирает текст одной стороны. Лицевая сторона даёт номер, дату
// рождения, серию и подписанные имена; оборот даёт все поля, имена берутся
// из строки "A:".
func (e *Extractor) Extract(rawText string, face entity.Face) entity.Fields {
	text := normalizeText(rawText)

	var fields entity.Fields
	for _, name := range []entity.FieldName{entity.FieldCI, entity.FieldFechaNacimiento, entity.FieldSerie} {
		fields.Set(name, e.cascade(name, text))
	}

	if face == entity.FaceBack {
		for _, name := range []entity.FieldName{entity.FieldLugarNacimiento, entity.FieldDomicilio, entity.FieldPadre, entity.FieldMadre} {
			fields.Set(name, e.cascade(name, text))
		}
		if n, ok := firstMatch(backNameRules, text); ok {
			fields.Nombres = &n.given
			fields.Apellidos = &n.surnames
		}
		return fields
	}

	fields.Nombres = matchOne(givenNameRules, text)
	fields.Apellidos = matchOne(surnameRules, text)
	return fields
}

// Field извлекает одно поле из произвольного текста. Имена сначала ищутся
// по якорю "A:", затем по подписям лицевой стороны.
func (e *Extractor) Field(name entity.FieldName, rawText string) *string {
	text := normalizeText(rawText)

	switch name {
	case entity.FieldNombres, entity.FieldApellidos:
		if n, ok := firstMatch(backNameRules, text); ok {
			if name == entity.FieldNombres {
				return &n.given
			}
			return &n.surnames
		}
		if name == entity.FieldNombres {
			return matchOne(givenNameRules, text)
		}
		return matchOne(surnameRules, text)
	default:
		return e.cascade(name, text)
	}
}

func (e *Extractor) cascade(name entity.FieldName, text string) *string {
	rules, ok := e.cascades[name]
	if !ok {
		return nil
	}
	return matchOne(rules, text)
}

func (e *Extractor) acceptSerial(m *regexp2.Match) (string, bool) {
	serial, ok := nonBlank(group(m, 1))
	if !ok || len(serial) < minSerialLength || len(serial) > maxSerialLength {
		return "", false
	}
	if _, denied := e.serialDenylist[serial]; denied {
		return "", false
	}
	return serial, true
}

func matchOne(rules []rule[string], text string) *string {
	if v, ok := firstMatch(rules, text); ok {
		return &v
	}
	return nil
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
