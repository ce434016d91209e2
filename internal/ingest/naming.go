package ingest

import "strings"

// ParseDropName разбирает имя файла из drop-каталога:
// "jane@acme.com__tour.mp4" -> ("jane@acme.com", "tour.mp4").
func ParseDropName(base string) (email, rest string, ok bool) {
	email, rest, ok = strings.Cut(base, "__")
	if !ok || email == "" || rest == "" {
		return "", "", false
	}
	return email, rest, true
}

// DeriveCompany — best-effort имя компании из домена почты:
// "jane@acme-homes.com" -> "Acme homes". Пустая строка, если не похоже
// на адрес.
func DeriveCompany(email string) string {
	_, dom, ok := strings.Cut(email, "@")
	if !ok {
		return ""
	}
	base, _, _ := strings.Cut(dom, ".")
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.ReplaceAll(base, "_", " ")
	if base == "" {
		return ""
	}
	base = strings.ToLower(base)
	return strings.ToUpper(base[:1]) + base[1:]
}
