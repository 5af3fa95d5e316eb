package telegram

import (
	"fmt"
	"strings"

	"carnet-ocr/internal/domain/entity"
)

var fieldLabels = map[entity.FieldName]string{
	entity.FieldCI:              "CI",
	entity.FieldNombres:         "Nombres",
	entity.FieldApellidos:       "Apellidos",
	entity.FieldFechaNacimiento: "Fecha de nacimiento",
	entity.FieldLugarNacimiento: "Lugar de nacimiento",
	entity.FieldDomicilio:       "Domicilio",
	entity.FieldPadre:           "Padre",
	entity.FieldMadre:           "Madre",
	entity.FieldSerie:           "Serie",
}

// FormatResult готовит ответ пользователю: поля, вердикт, качество и диагностику
func FormatResult(res *entity.DocumentResult) string {
	var sb strings.Builder

	v := res.Record.Validation
	if v.IsValid {
		sb.WriteString("✅ Carnet leído correctamente\n\n")
	} else {
		sb.WriteString("⚠️ Datos incompletos\n\n")
	}

	for _, name := range entity.AllFields {
		val := "—"
		if res.Record.Fields.Present(name) {
			val = *res.Record.Fields.Get(name)
		}
		fmt.Fprintf(&sb, "%s: %s\n", fieldLabels[name], val)
	}

	fmt.Fprintf(&sb, "\nCompletitud: %d%%\nConfianza promedio: %d%%\n", v.Completeness, res.AverageConfidence)
	fmt.Fprintf(&sb, "Calidad: anverso %d/100, reverso %d/100\n", res.Quality.Front.Score, res.Quality.Back.Score)

	recs := entity.RecommendationsFor(append(append([]entity.IssueTag{}, res.Quality.Front.Issues...), res.Quality.Back.Issues...))
	if len(recs) > 0 {
		sb.WriteString("\n💡 Recomendaciones:\n")
		for _, r := range recs {
			fmt.Fprintf(&sb, "• %s\n", r)
		}
	}

	if len(res.Diagnostics) > 0 {
		sb.WriteString("\nℹ️ Diagnóstico:\n")
		for _, d := range res.Diagnostics {
			fmt.Fprintf(&sb, "• %s\n", d)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
