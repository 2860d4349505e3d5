package middleware

import "net/http"

// WithLimit ограничивает число одновременно обрабатываемых запросов.
// Аналог пула потоков: лишние запросы ждут освобождения слота.
func WithLimit(n int) func(http.Handler) http.Handler {
	slots := make(chan struct{}, n)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slots <- struct{}{}
			defer func() { <-slots }()
			next.ServeHTTP(w, r)
		})
	}
}
