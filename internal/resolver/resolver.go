// Package resolver превращает идентификатор получателя в ссылку на выдачу
// видео-сэмпла: указатель -> фактический ключ объекта -> подписанная или
// same-origin ссылка.
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/matlycreative/sample-gate/internal/config"
	"github.com/matlycreative/sample-gate/internal/domain"
)

type Resolver struct {
	Log     *log.Logger
	Storage domain.ObjectStorage

	// База канонических ссылок; пустая — берём origin запроса.
	Base string
	// presign | stream
	Mode       string
	PresignTTL time.Duration
}

// Resolve выполняет полный цикл: указатель -> ключ -> ссылка выдачи.
// origin — схема+хост текущего запроса (фолбэк для Link).
// Link заполнен во всех исходах, кроме пустого id; при бизнес-ошибке
// возвращается соответствующая доменная ошибка, Resolution заполнен
// настолько, насколько получилось.
func (rs *Resolver) Resolve(ctx context.Context, id domain.Identifier, origin string) (domain.Resolution, error) {
	var res domain.Resolution

	if id == "" {
		return res, domain.ErrMissingID
	}
	res.Link = rs.link(id, origin)

	ptr, err := rs.pointer(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return res, domain.ErrPointerNotFound
		}
		if errors.Is(err, domain.ErrEmptyKey) {
			return res, domain.ErrEmptyKey
		}
		return res, fmt.Errorf("fetch pointer: %w", err)
	}
	res.Company = ptr.Company
	res.WantedKey = ptr.Key
	if ptr.Key == "" {
		return res, domain.ErrEmptyKey
	}

	found, err := rs.resolveKey(ctx, ptr.Key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return res, domain.ErrSampleNotFound
		}
		return res, fmt.Errorf("resolve key: %w", err)
	}
	res.FoundKey = found

	switch rs.Mode {
	case config.DeliveryPresign:
		u, err := rs.Storage.PresignGet(ctx, found, rs.PresignTTL)
		if err != nil {
			return res, fmt.Errorf("presign %q: %w", found, err)
		}
		res.SignedURL = u
	default:
		res.StreamURL = "/stream?key=" + url.QueryEscape(found)
	}
	return res, nil
}

// pointer читает и разбирает pointers/<id>.json.
func (rs *Resolver) pointer(ctx context.Context, id domain.Identifier) (domain.PointerRecord, error) {
	var rec domain.PointerRecord

	rc, err := rs.Storage.Open(ctx, domain.PointerKey(id), -1, 0)
	if err != nil {
		return rec, err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		// Указатель есть, но не читается — это ошибка данных, не транспорта.
		rs.Log.Printf("pointer %q: bad json: %v", id, err)
		return rec, domain.ErrEmptyKey
	}
	return rec, nil
}

// resolveKey находит фактический ключ объекта, начиная с "задуманного".
// Порядок эвристик — от дешёвой и точной к дорогой и широкой:
//  1. точное совпадение;
//  2. <key>/<basename(key)> — известный артефакт загрузчика, дублирующего
//     имя файла как подкаталог;
//  3. листинг по префиксу <key>/ с лимитом 1; берётся первый ключ в
//     порядке листинга бэкенда (порядок не гарантируется).
func (rs *Resolver) resolveKey(ctx context.Context, key string) (string, error) {
	ok, err := rs.Storage.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if ok {
		return key, nil
	}

	nested := key + "/" + path.Base(key)
	ok, err = rs.Storage.Exists(ctx, nested)
	if err != nil {
		return "", err
	}
	if ok {
		rs.Log.Printf("key %q recovered as %q (nested)", key, nested)
		return nested, nil
	}

	prefix := key
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	keys, err := rs.Storage.List(ctx, prefix, 1)
	if err != nil {
		return "", err
	}
	if len(keys) > 0 {
		rs.Log.Printf("key %q recovered as %q (prefix listing)", key, keys[0])
		return keys[0], nil
	}

	return "", domain.ErrNotFound
}

// link строит каноническую страницу сэмпла независимо от исхода резолва.
func (rs *Resolver) link(id domain.Identifier, origin string) string {
	base := rs.Base
	if base == "" {
		base = origin
	}
	return strings.TrimRight(base, "/") + "/p/?id=" + url.QueryEscape(id)
}
