package app

import "carnet-ocr/internal/domain/entity"

// Source откуда берётся значение поля при объединении сторон
type Source int

const (
	// SourceBack только оборот
	SourceBack Source = iota + 1
	// SourceBoth повторное извлечение из текста обеих сторон
	SourceBoth
	// SourceBackPreferred оборот, если там есть значение, иначе лицевая сторона
	SourceBackPreferred
)

func (s Source) String() string {
	switch s {
	case SourceBack:
		return "back"
	case SourceBoth:
		return "both"
	case SourceBackPreferred:
		return "back_preferred"
	default:
		return "unknown"
	}
}

// fieldSources таблица маршрутизации полей. Конфликты между сторонами
// не разрешаются: выбранный источник всегда побеждает.
var fieldSources = map[entity.FieldName]Source{
	entity.FieldCI:              SourceBoth,
	entity.FieldNombres:         SourceBackPreferred,
	entity.FieldApellidos:       SourceBackPreferred,
	entity.FieldFechaNacimiento: SourceBoth,
	entity.FieldLugarNacimiento: SourceBack,
	entity.FieldDomicilio:       SourceBack,
	entity.FieldPadre:           SourceBack,
	entity.FieldMadre:           SourceBack,
	entity.FieldSerie:           SourceBoth,
}

// FaceExtraction распознанный текст стороны и поля, извлечённые из него
type FaceExtraction struct {
	RawText string
	Fields  entity.Fields
}

// Merger собирает запись из результатов двух сторон
type Merger struct {
	extractor *Extractor
}

// NewMerger создаёт объединитель; extractor нужен для полей с источником SourceBoth
func NewMerger(extractor *Extractor) *Merger {
	return &Merger{extractor: extractor}
}

// Merge собирает поля по таблице маршрутизации
func (m *Merger) Merge(front, back FaceExtraction) entity.Fields {
	combined := front.RawText + "\n" + back.RawText

	var out entity.Fields
	for _, name := range entity.AllFields {
		switch fieldSources[name] {
		case SourceBack:
			out.Set(name, back.Fields.Get(name))
		case SourceBoth:
			out.Set(name, m.extractor.Field(name, combined))
		case SourceBackPreferred:
			if back.Fields.Present(name) {
				out.Set(name, back.Fields.Get(name))
			} else {
				out.Set(name, front.Fields.Get(name))
			}
		}
	}
	return out
}
