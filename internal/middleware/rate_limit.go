package middleware

import (
	"moodTracker/internal/logger"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

const rateWindow = time.Minute

type window struct {
	count   int
	resetAt time.Time
}

// limiter считает запросы каждого IP в фиксированном окне.
// Просроченные окна вычищаются не чаще раза в окно, отдельной горутины нет.
type limiter struct {
	mu        sync.Mutex
	rpm       int
	clients   map[string]*window
	nextSweep time.Time
	now       func() time.Time
}

func newLimiter(rpm int) *limiter {
	return &limiter{
		rpm:     rpm,
		clients: make(map[string]*window),
		now:     time.Now,
	}
}

// allow учитывает запрос и возвращает остаток и момент сброса окна.
func (l *limiter) allow(ip string) (ok bool, remaining int, resetAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, exists := l.clients[ip]
	if !exists || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(rateWindow)}
		l.clients[ip] = w
	}
	if w.count >= l.rpm {
		return false, 0, w.resetAt
	}

	w.count++
	return true, l.rpm - w.count, w.resetAt
}

func (l *limiter) sweep(now time.Time) {
	if now.Before(l.nextSweep) {
		return
	}
	for ip, w := range l.clients {
		if now.After(w.resetAt) {
			delete(l.clients, ip)
		}
	}
	l.nextSweep = now.Add(rateWindow)
}

// RateLimit ограничивает число запросов с одного IP в минуту. rpm <= 0 отключает ограничение.
func RateLimit(rpm int) func(http.Handler) http.Handler {
	if rpm <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	l := newLimiter(rpm)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			ok, remaining, resetAt := l.allow(ip)

			if !ok {
				retryAfter := int(time.Until(resetAt).Seconds()) + 1
				logger.Warn("HTTP: Превышен лимит запросов",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.String("client_ip", ip),
					zap.Int("retry_after", retryAfter))

				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rpm))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
