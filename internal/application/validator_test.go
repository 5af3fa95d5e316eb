package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"carnet-ocr/internal/domain/entity"
)

func TestValidator_RequiredFieldsBelowThreshold(t *testing.T) {
	v := NewValidator().Validate(entity.Fields{CI: ptr("5847291"), Nombres: ptr("DIEGO")})

	require.Equal(t, 22, v.Completeness)
	require.False(t, v.IsValid)
	require.Equal(t, []entity.FieldName{
		entity.FieldApellidos,
		entity.FieldFechaNacimiento,
		entity.FieldLugarNacimiento,
		entity.FieldDomicilio,
		entity.FieldPadre,
		entity.FieldMadre,
		entity.FieldSerie,
	}, v.MissingFields)
}

func TestValidator_Valid(t *testing.T) {
	v := NewValidator().Validate(entity.Fields{
		CI:              ptr("5847291"),
		Nombres:         ptr("DIEGO"),
		Apellidos:       ptr("ALVARADO"),
		FechaNacimiento: ptr("15/03/2001"),
		LugarNacimiento: ptr("LA PAZ"),
		Domicilio:       ptr("AV. BUSCH"),
		Padre:           ptr("CESAR"),
	})

	require.Equal(t, 78, v.Completeness)
	require.True(t, v.IsValid)
	require.Equal(t, []entity.FieldName{entity.FieldMadre, entity.FieldSerie}, v.MissingFields)
}

func TestValidator_MissingRequiredField(t *testing.T) {
	v := NewValidator().Validate(entity.Fields{
		Nombres:         ptr("DIEGO"),
		Apellidos:       ptr("ALVARADO"),
		FechaNacimiento: ptr("15/03/2001"),
		LugarNacimiento: ptr("LA PAZ"),
		Domicilio:       ptr("AV. BUSCH"),
		Padre:           ptr("CESAR"),
		Madre:           ptr("MARIA"),
		Serie:           ptr("43333"),
	})

	require.Equal(t, 89, v.Completeness)
	require.False(t, v.IsValid)
	require.Equal(t, []entity.FieldName{entity.FieldCI}, v.MissingFields)
}

func TestValidator_BlankCountsAsMissing(t *testing.T) {
	v := NewValidator().Validate(entity.Fields{CI: ptr("   "), Nombres: ptr("")})

	require.Equal(t, 0, v.Completeness)
	require.False(t, v.IsValid)
	require.Len(t, v.MissingFields, 9)
}

func TestValidator_Empty(t *testing.T) {
	v := NewValidator().Validate(entity.Fields{})

	require.Equal(t, 0, v.Completeness)
	require.False(t, v.IsValid)
	require.Equal(t, entity.AllFields, v.MissingFields)
}
