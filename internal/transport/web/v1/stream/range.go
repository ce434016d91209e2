package stream

import (
	"regexp"
	"strconv"
)

// Принимаем только одиночный диапазон bytes=<start>-<end>?.
// Списки диапазонов и суффиксная форма bytes=-N под грамматику не подходят
// целиком, но пустой start разбирается как 0 — мягкое восстановление.
var rangeRe = regexp.MustCompile(`^bytes=(\d*)-(\d*)$`)

// parseRange разбирает заголовок Range для объекта размера size.
// Возвращает включительные границы [start, end] и признак того, что
// диапазон пригоден. Любой непригодный диапазон (не та грамматика,
// start > end, start за концом объекта) — это ok=false, и вызывающий
// отдаёт объект целиком со статусом 200.
func parseRange(header string, size int64) (start, end int64, ok bool) {
	if header == "" || size <= 0 {
		return 0, 0, false
	}
	m := rangeRe.FindStringSubmatch(header)
	if m == nil {
		return 0, 0, false
	}
	if m[1] == "" && m[2] == "" {
		return 0, 0, false // "bytes=-"
	}

	start = 0
	if m[1] != "" {
		// при переполнении остаёмся на 0
		if v, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			start = v
		}
	}
	end = size - 1
	if m[2] != "" {
		if v, err := strconv.ParseInt(m[2], 10, 64); err == nil {
			end = v
		}
	}
	if end > size-1 {
		end = size - 1
	}
	if start > end {
		return 0, 0, false
	}
	return start, end, true
}
