package entity

import "strings"

// FieldName имя поля удостоверения
type FieldName string

const (
	FieldCI              FieldName = "ci"
	FieldNombres         FieldName = "nombres"
	FieldApellidos       FieldName = "apellidos"
	FieldFechaNacimiento FieldName = "fechaNacimiento"
	FieldLugarNacimiento FieldName = "lugarNacimiento"
	FieldDomicilio       FieldName = "domicilio"
	FieldPadre           FieldName = "padre"
	FieldMadre           FieldName = "madre"
	FieldSerie           FieldName = "serie"
)

// AllFields поля в каноническом порядке
var AllFields = []FieldName{
	FieldCI,
	FieldNombres,
	FieldApellidos,
	FieldFechaNacimiento,
	FieldLugarNacimiento,
	FieldDomicilio,
	FieldPadre,
	FieldMadre,
	FieldSerie,
}

// Fields извлечённые значения; nil означает, что поле не найдено
type Fields struct {
	CI              *string `json:"ci"`
	Nombres         *string `json:"nombres"`
	Apellidos       *string `json:"apellidos"`
	FechaNacimiento *string `json:"fechaNacimiento"`
	LugarNacimiento *string `json:"lugarNacimiento"`
	Domicilio       *string `json:"domicilio"`
	Padre           *string `json:"padre"`
	Madre           *string `json:"madre"`
	Serie           *string `json:"serie"`
}

func (f *Fields) slot(name FieldName) **string {
	switch name {
	case FieldCI:
		return &f.CI
	case FieldNombres:
		return &f.Nombres
	case FieldApellidos:
		return &f.Apellidos
	case FieldFechaNacimiento:
		return &f.FechaNacimiento
	case FieldLugarNacimiento:
		return &f.LugarNacimiento
	case FieldDomicilio:
		return &f.Domicilio
	case FieldPadre:
		return &f.Padre
	case FieldMadre:
		return &f.Madre
	case FieldSerie:
		return &f.Serie
	default:
		return nil
	}
}

// Get возвращает значение поля или nil
func (f *Fields) Get(name FieldName) *string {
	if s := f.slot(name); s != nil {
		return *s
	}
	return nil
}

// Set записывает значение поля; неизвестные имена игнорируются
func (f *Fields) Set(name FieldName, value *string) {
	if s := f.slot(name); s != nil {
		*s = value
	}
}

// Present сообщает, что поле заполнено непустым значением
func (f *Fields) Present(name FieldName) bool {
	v := f.Get(name)
	return v != nil && strings.TrimSpace(*v) != ""
}

// Validation вердикт полноты записи
type Validation struct {
	IsValid       bool        `json:"isValid"`
	Completeness  int         `json:"completeness"`
	MissingFields []FieldName `json:"missingFields"`
}

// IdentityRecord итоговая запись по документу
type IdentityRecord struct {
	Fields            Fields     `json:"data"`
	AverageConfidence int        `json:"averageConfidence"`
	Validation        Validation `json:"validation"`
}
