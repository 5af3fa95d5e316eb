package app

import (
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout ограничивает один поиск по шаблону: на мусорном тексте
// обратный поиск может уйти в экспоненту.
const matchTimeout = 250 * time.Millisecond

const (
	caseless  = regexp2.IgnoreCase | regexp2.Multiline
	caseExact = regexp2.Multiline
)

// rule шаблон каскада и функция приёма совпадения
type rule[T any] struct {
	re     *regexp2.Regexp
	accept func(m *regexp2.Match) (T, bool)
}

// firstMatch перебирает правила по приоритету. Первое принятое совпадение
// побеждает; отклонённое передаёт ход следующему правилу.
func firstMatch[T any](rules []rule[T], text string) (T, bool) {
	var zero T
	for _, r := range rules {
		m, err := r.re.FindStringMatch(text)
		if err != nil || m == nil {
			continue
		}
		if v, ok := r.accept(m); ok {
			return v, true
		}
	}
	return zero, false
}

func compile(pattern string, opts regexp2.RegexOptions) *regexp2.Regexp {
	re := regexp2.MustCompile(pattern, opts)
	re.MatchTimeout = matchTimeout
	return re
}

// group возвращает текст группы n или пустую строку
func group(m *regexp2.Match, n int) string {
	g := m.GroupByNumber(n)
	if g == nil {
		return ""
	}
	return g.String()
}

// replacement замена по шаблону, применяемая к захваченному значению
type replacement struct {
	re   *regexp2.Regexp
	with string
}

func applyReplacements(s string, table []replacement) string {
	for _, r := range table {
		out, err := r.re.Replace(s, r.with, -1, -1)
		if err != nil {
			continue
		}
		s = out
	}
	return s
}
