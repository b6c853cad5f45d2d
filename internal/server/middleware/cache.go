package middleware

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/DiegoMiguel/design-webapi/internal/server/cache"
	"github.com/DiegoMiguel/design-webapi/internal/shared/logger"
)

// OutputCache кэширует успешные GET-ответы группы маршрутов.
//
// Ключ: "<Group>:<поколение>:<RequestURI>". Сохраняются только ответы 200.
// Поколение читается до вызова обработчика, поэтому ответ, посчитанный
// до Invalidate, не попадёт к запросам, пришедшим после него.
// Параллельные промахи по одному ключу склеиваются через singleflight:
// обработчик выполняется один раз, остальные получают его ответ.
// Ошибки хранилища логируются, запрос обслуживается без кэша.
type OutputCache struct {
	Store cache.Store
	Group string
	TTL   time.Duration
	Log   *logger.HTTPLogger

	sf singleflight.Group
}

// NewOutputCache создаёт OutputCache для группы маршрутов.
func NewOutputCache(store cache.Store, group string, ttl time.Duration, log *logger.HTTPLogger) *OutputCache {
	return &OutputCache{Store: store, Group: group, TTL: ttl, Log: log}
}

// Key — ключ кэша для запроса в поколении gen.
func (c *OutputCache) Key(r *http.Request, gen uint64) string {
	return c.Prefix() + strconv.FormatUint(gen, 10) + ":" + r.URL.RequestURI()
}

// Prefix — общий префикс всех ключей группы.
func (c *OutputCache) Prefix() string {
	return c.Group + ":"
}

// Middleware возвращает кэширующий middleware.
func (c *OutputCache) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || c.Store == nil {
				next.ServeHTTP(w, r)
				return
			}

			gen, err := c.Store.Generation(r.Context(), c.Prefix())
			if err != nil {
				c.logError("cache generation failed", c.Prefix(), err)
				next.ServeHTTP(w, r)
				return
			}
			key := c.Key(r, gen)

			if e, ok, err := c.Store.Get(r.Context(), key); err != nil {
				c.logError("cache get failed", key, err)
			} else if ok {
				c.writeEntry(w, e, "HIT")
				return
			}

			v, _, _ := c.sf.Do(key, func() (any, error) {
				rec := newRecorder()
				next.ServeHTTP(rec, r)

				if rec.status == http.StatusOK {
					e := cache.Entry{
						Status:      rec.status,
						ContentType: rec.header.Get("Content-Type"),
						Body:        rec.body.Bytes(),
					}
					if err := c.Store.Set(r.Context(), key, e, c.TTL); err != nil {
						c.logError("cache set failed", key, err)
					}
				}
				return rec, nil
			})

			rec := v.(*recorder)
			for k, vals := range rec.header {
				w.Header()[k] = append([]string(nil), vals...)
			}
			if rec.status == http.StatusOK {
				c.writeEntry(w, cache.Entry{
					Status:      rec.status,
					ContentType: rec.header.Get("Content-Type"),
					Body:        rec.body.Bytes(),
				}, "MISS")
				return
			}
			w.WriteHeader(rec.status)
			_, _ = w.Write(rec.body.Bytes())
		})
	}
}

// Invalidate сбрасывает все записи группы после успешного изменяющего запроса.
func (c *OutputCache) Invalidate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || c.Store == nil {
				next.ServeHTTP(w, r)
				return
			}

			wr := &ResponseWriter{ResponseWriter: w}
			next.ServeHTTP(wr, r)

			if code := wr.StatusCode(); code >= 200 && code < 300 {
				if err := c.Store.InvalidatePrefix(r.Context(), c.Prefix()); err != nil {
					c.logError("cache invalidate failed", c.Prefix(), err)
				}
			}
		})
	}
}

func (c *OutputCache) writeEntry(w http.ResponseWriter, e cache.Entry, state string) {
	h := w.Header()
	if e.ContentType != "" {
		h.Set("Content-Type", e.ContentType)
	}
	h.Set("Cache-Control", "public, max-age="+strconv.Itoa(int(c.TTL.Seconds())))
	h.Set("X-Cache", state)
	w.WriteHeader(e.Status)
	_, _ = w.Write(e.Body)
}

func (c *OutputCache) logError(msg, key string, err error) {
	if c.Log == nil {
		return
	}
	c.Log.Sugar().Errorw(msg, "group", c.Group, "key", key, "err", err)
}

// recorder буферизует ответ обработчика целиком.
type recorder struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newRecorder() *recorder {
	return &recorder{header: make(http.Header), status: http.StatusOK}
}

func (r *recorder) Header() http.Header { return r.header }

func (r *recorder) WriteHeader(status int) { r.status = status }

func (r *recorder) Write(b []byte) (int, error) { return r.body.Write(b) }
