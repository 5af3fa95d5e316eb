package entity

// DefaultWhitelist набор символов, которые разрешено выдавать движку распознавания
const DefaultWhitelist = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyzÁÉÍÓÚáéíóúÑñ0123456789 .,:-/"

// LanguageProfile настройки языка для движка распознавания
type LanguageProfile struct {
	Language  string // код языка движка, например "spa"
	Whitelist string // разрешённые символы
}

// RecognizedText ответ внешнего движка
type RecognizedText struct {
	Text       string
	Confidence float64 // 0..100
}

// RecognitionResult итог распознавания одной стороны
type RecognitionResult struct {
	RawText    string  `json:"rawText"`
	Confidence float64 `json:"confidence"`
	Face       Face    `json:"face"`
}
