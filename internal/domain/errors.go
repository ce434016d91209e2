package domain

import "errors"

// Бизнес-ошибки резолвера и выдачи. Наружу resolve-эндпоинт отдаёт 200
// со структурной ошибкой, stream — обычные HTTP-коды.
var (
	ErrMissingID       = errors.New("missing_id")        // пустой/отсутствующий id
	ErrPointerNotFound = errors.New("pointer_not_found") // нет pointers/<id>.json
	ErrEmptyKey        = errors.New("empty_key")         // указатель есть, key пустой/битый
	ErrSampleNotFound  = errors.New("sample_not_found")  // объект не найден после всех эвристик
	ErrNotFound        = errors.New("not_found")         // объект хранилища отсутствует
	ErrUnexpected      = errors.New("unexpected")        // всё прочее -> SERVER / 500
)
