package entity

// Face сторона удостоверения
type Face string

const (
	FaceFront Face = "front" // лицевая сторона
	FaceBack  Face = "back"  // оборотная сторона
)

// Label возвращает подпись стороны для сообщений пользователю
func (f Face) Label() string {
	switch f {
	case FaceFront:
		return "anverso"
	case FaceBack:
		return "reverso"
	default:
		return string(f)
	}
}
