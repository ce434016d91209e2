package domain

import "strings"

// Identifier — непрозрачный ключ поиска, получаемый из e-mail:
// нижний регистр, '@' и '.' заменяются на '_'.
// Уникальность предполагается, здесь не проверяется.
type Identifier = string

// SafeID строит Identifier из адреса почты.
// "Jane@Acme.com" -> "jane_acme_com"
func SafeID(email string) Identifier {
	s := strings.ToLower(email)
	s = strings.ReplaceAll(s, "@", "_")
	s = strings.ReplaceAll(s, ".", "_")
	return s
}

// PointerRecord — указатель pointers/<id>.json, пишется пайплайном загрузки.
// Key задаёт "задуманное" место объекта; фактическое может отличаться
// (см. резолвер ключей).
type PointerRecord struct {
	Key     string `json:"key"`
	Company string `json:"company,omitempty"`
}

// Resolution — итог работы резолвера.
// Link считается всегда, даже при ошибке: клиент в любом случае должен
// получить рабочую каноническую ссылку.
type Resolution struct {
	SignedURL string // подписанная ссылка (режим presign)
	StreamURL string // same-origin ссылка /stream?key=... (режим stream)
	Link      string
	Company   string
	FoundKey  string // фактический ключ объекта (для наблюдаемости)
	WantedKey string // ключ из указателя (для диагностики при ошибке)
}

// DeleteMarker — маркер отложенного удаления delete_markers/<id>__YYYYMMDD.json.
type DeleteMarker struct {
	ID  string `json:"id"`
	Due string `json:"due"` // RFC3339
}
