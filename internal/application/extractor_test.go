package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"carnet-ocr/internal/domain/entity"
)

const sampleBack = `A: DIEGO CESAR ALVARADO CALLISAYA
Nacido el 15 de marzo de 2001
En LA PAZ - MURILLO - NUESTRA SEÑORA DE LA PAZ
Domicilio AV. BUSCH 123 ZONA MIRAFLORES * 1317
Padre CESAR SILVIO ALVARADO TICONA/CI:2542147
Madre MARIA AURORA CALLISAYA MÁTEO/CI:3456328
Serie 43333`

func value(t *testing.T, v *string) string {
	t.Helper()
	require.NotNil(t, v)
	return *v
}

func TestExtract_BackFace(t *testing.T) {
	f := NewExtractor().Extract(sampleBack, entity.FaceBack)

	require.Equal(t, "DIEGO CESAR", value(t, f.Nombres))
	require.Equal(t, "ALVARADO CALLISAYA", value(t, f.Apellidos))
	require.Equal(t, "15/03/2001", value(t, f.FechaNacimiento))
	require.Equal(t, "LA PAZ", value(t, f.LugarNacimiento))
	require.Equal(t, "AV. BUSCH 123 ZONA MIRAFLORES", value(t, f.Domicilio))
	require.Equal(t, "CESAR SILVIO ALVARADO TICONA", value(t, f.Padre))
	require.Equal(t, "MARIA AURORA CALLISAYA MATEO", value(t, f.Madre))
	require.Equal(t, "43333", value(t, f.Serie))
	// номера родителей не считаются номером владельца
	require.Nil(t, f.CI)
}

func TestExtract_BackNames(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		nombres   string
		apellidos string
	}{
		{name: "four words", text: "A: DIEGO CESAR ALVARADO CALLISAYA", nombres: "DIEGO CESAR", apellidos: "ALVARADO CALLISAYA"},
		{name: "three words", text: "A: DIEGO ALVARADO CALLISAYA", nombres: "DIEGO", apellidos: "ALVARADO CALLISAYA"},
		{name: "split surname", text: "A: DIEGO CESAR ALVARADO CAI LISAYA", nombres: "DIEGO CESAR", apellidos: "ALVARADO CALLISAYA"},
		{name: "noise token", text: "A: DIEGO CESAR ALVARADO CALLISAYA ME", nombres: "DIEGO CESAR", apellidos: "ALVARADO CALLISAYA"},
		{name: "windows line endings", text: "A: DIEGO ALVARADO CALLISAYA\r\nNacido el 1 de enero de 2000", nombres: "DIEGO", apellidos: "ALVARADO CALLISAYA"},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := e.Extract(tt.text, entity.FaceBack)
			require.Equal(t, tt.nombres, value(t, f.Nombres))
			require.Equal(t, tt.apellidos, value(t, f.Apellidos))
		})
	}
}

func TestExtract_BackNamesTooShort(t *testing.T) {
	f := NewExtractor().Extract("A: DIEGO ALVARADO", entity.FaceBack)
	require.Nil(t, f.Nombres)
	require.Nil(t, f.Apellidos)
}

func TestExtract_FrontLabels(t *testing.T) {
	e := NewExtractor()

	f := e.Extract("NOMBRES: JUAN CARLOS\nAPELLIDOS: PEREZ MAMANI", entity.FaceFront)
	require.Equal(t, "JUAN CARLOS", value(t, f.Nombres))
	require.Equal(t, "PEREZ MAMANI", value(t, f.Apellidos))

	f = e.Extract("NOMBRES\nJUAN CARLOS\nAPELLIDOS\nPEREZ MAMANI", entity.FaceFront)
	require.Equal(t, "JUAN CARLOS", value(t, f.Nombres))
	require.Equal(t, "PEREZ MAMANI", value(t, f.Apellidos))
}

func TestExtract_FrontIgnoresBackOnlyFields(t *testing.T) {
	f := NewExtractor().Extract(sampleBack, entity.FaceFront)

	require.Nil(t, f.LugarNacimiento)
	require.Nil(t, f.Domicilio)
	require.Nil(t, f.Padre)
	require.Nil(t, f.Madre)
	require.Equal(t, "15/03/2001", value(t, f.FechaNacimiento))
}

func TestField_CI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *string
	}{
		{name: "labelled", text: "CI 5847291", want: ptr("5847291")},
		{name: "labelled eight digits", text: "No. 12345678", want: ptr("12345678")},
		{name: "dotted label", text: "C.I.: 4512873", want: ptr("4512873")},
		{name: "department suffix", text: "5847291 LP", want: ptr("5847291")},
		{name: "bare token", text: "NUMERO\n6012345\n", want: ptr("6012345")},
		{name: "bare nine digits", text: "123456789", want: nil},
		{name: "labelled nine digits", text: "CI 123456789", want: nil},
		{name: "six digits", text: "CI 584729", want: nil},
		{name: "parent annotation", text: "Padre CESAR SILVIO ALVARADO TICONA/CI:2542147", want: nil},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, e.Field(entity.FieldCI, tt.text))
		})
	}
}

func TestField_BirthDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *string
	}{
		{name: "spelled", text: "Nacido el 15 de marzo de 2001", want: ptr("15/03/2001")},
		{name: "spelled glued", text: "Nacidoel 3 de Setiembre de 1999", want: ptr("03/09/1999")},
		{name: "labelled numeric", text: "FECHA DE NACIMIENTO: 5/7/1990", want: ptr("05/07/1990")},
		{name: "unknown month falls through", text: "Nacido el 15 de marzzo de 2001\nNAC. 15-03-2001", want: ptr("15/03/2001")},
		{name: "bare numeric", text: "EMITIDO 01.12.2019", want: ptr("01/12/2019")},
		{name: "impossible date", text: "32/13/2001", want: nil},
		{name: "absent", text: "SIN FECHA", want: nil},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, e.Field(entity.FieldFechaNacimiento, tt.text))
		})
	}
}

func TestField_BirthPlace(t *testing.T) {
	e := NewExtractor()

	require.Equal(t, "LA PAZ", value(t, e.Field(entity.FieldLugarNacimiento, "En LA PAZ - MURILLO\nDomicilio CALLE 1")))
	require.Equal(t, "COCHABAMBA", value(t, e.Field(entity.FieldLugarNacimiento, "En COCHABAMBA Domicilio CALLE 1")))
	require.Equal(t, "SUCRE", value(t, e.Field(entity.FieldLugarNacimiento, "LUGAR DE NACIMIENTO: SUCRE")))
	require.Equal(t, "ORURO", value(t, e.Field(entity.FieldLugarNacimiento, "CIUDAD DE ORURO")))
	require.Nil(t, e.Field(entity.FieldLugarNacimiento, "sin datos"))
}

func TestField_Address(t *testing.T) {
	e := NewExtractor()

	require.Equal(t, "AV. BUSCH 123 ZONA MIRAFLORES", value(t, e.Field(entity.FieldDomicilio, "Domicilio AV. BUSCH 123 ZONA MIRAFLORES * 1317")))
	require.Equal(t, "CALLE 5", value(t, e.Field(entity.FieldDomicilio, "Domicilio CALLE 5 Padre JUAN PEREZ")))
	require.Equal(t, "C. LOS PINOS 44", value(t, e.Field(entity.FieldDomicilio, "DIRECCIÓN:\nC. LOS PINOS 44 *")))
	require.Nil(t, e.Field(entity.FieldDomicilio, "Padre JUAN PEREZ"))
}

func TestField_Parents(t *testing.T) {
	e := NewExtractor()
	text := "Padre JUAN PEREZ e\nMadre ANA LOPEZ uu"

	require.Equal(t, "JUAN PEREZ", value(t, e.Field(entity.FieldPadre, text)))
	require.Equal(t, "ANA LOPEZ", value(t, e.Field(entity.FieldMadre, text)))
	require.Equal(t, "JUAN PEREZ", value(t, e.Field(entity.FieldPadre, "Padre JUAN PEREZ Madre ANA LOPEZ")))
	require.Equal(t, "MARIA MATEO", value(t, e.Field(entity.FieldMadre, "Madre MARIA MAT EO/C1:3456328")))
	require.Nil(t, e.Field(entity.FieldPadre, "Madre ANA LOPEZ"))
}

func TestField_Serial(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *string
	}{
		{name: "digits", text: "Serie 43333", want: ptr("43333")},
		{name: "letters and digits", text: "serie ABC123", want: ptr("ABC123")},
		{name: "near biometric label", text: "BIO\nMETRICO 43333", want: ptr("43333")},
		{name: "bare code", text: "AB123456", want: ptr("AB123456")},
		{name: "denied", text: "SERIE 8446290", want: nil},
		{name: "denied year", text: "Serie 2002", want: nil},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, e.Field(entity.FieldSerie, tt.text))
		})
	}
}

func TestField_SerialCustomDenylist(t *testing.T) {
	e := NewExtractor(WithSerialDenylist())
	require.Equal(t, "8446290", value(t, e.Field(entity.FieldSerie, "SERIE 8446290")))

	e = NewExtractor(WithSerialDenylist("43333"))
	require.Nil(t, e.Field(entity.FieldSerie, "Serie 43333"))
}

func TestField_NamesPreferAnchor(t *testing.T) {
	e := NewExtractor()
	text := "NOMBRES: JUAN\nAPELLIDOS: PEREZ\nA: DIEGO CESAR ALVARADO CALLISAYA"

	require.Equal(t, "DIEGO CESAR", value(t, e.Field(entity.FieldNombres, text)))
	require.Equal(t, "ALVARADO CALLISAYA", value(t, e.Field(entity.FieldApellidos, text)))
	require.Equal(t, "JUAN", value(t, e.Field(entity.FieldNombres, "NOMBRES: JUAN")))
}

func TestExtract_EmptyText(t *testing.T) {
	e := NewExtractor()
	for _, face := range []entity.Face{entity.FaceFront, entity.FaceBack} {
		f := e.Extract("", face)
		for _, name := range entity.AllFields {
			require.Nil(t, f.Get(name), "face %s field %s", face, name)
		}
	}
}

func ptr(s string) *string { return &s }
