package app

import (
	"math"

	"carnet-ocr/internal/domain/entity"
)

// MinCompleteness минимальная полнота записи (в процентах) для валидной записи
const MinCompleteness = 70

// Validator проверяет полноту записи
type Validator struct{}

// NewValidator создаёт валидатор
func NewValidator() *Validator {
	return &Validator{}
}

// Validate считает полноту и список пустых полей. Запись валидна при полноте
// не ниже MinCompleteness и заполненных номере и именах.
func (v *Validator) Validate(fields entity.Fields) entity.Validation {
	missing := make([]entity.FieldName, 0, len(entity.AllFields))
	for _, name := range entity.AllFields {
		if !fields.Present(name) {
			missing = append(missing, name)
		}
	}

	present := len(entity.AllFields) - len(missing)
	completeness := int(math.Round(100 * float64(present) / float64(len(entity.AllFields))))

	return entity.Validation{
		IsValid:       completeness >= MinCompleteness && fields.Present(entity.FieldCI) && fields.Present(entity.FieldNombres),
		Completeness:  completeness,
		MissingFields: missing,
	}
}
