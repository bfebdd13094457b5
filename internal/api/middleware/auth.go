package middleware

import (
	"context"
	"net/http"
	"strconv"
)

// HeaderCustomerID заголовок, через который внешний слой аутентификации
// передает идентификатор клиента
const HeaderCustomerID = "X-Customer-ID"

type contextKey string

const customerIDKey contextKey = "customerID"

// Auth извлекает ID клиента из заголовка и кладет его в контекст запроса.
// Сама аутентификация выполняется внешним шлюзом - здесь только доверенный
// заголовок.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(HeaderCustomerID)
		if header != "" {
			if customerID, err := strconv.ParseInt(header, 10, 64); err == nil && customerID > 0 {
				r = r.WithContext(context.WithValue(r.Context(), customerIDKey, customerID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetCustomerID возвращает ID клиента из контекста запроса
func GetCustomerID(ctx context.Context) (int64, bool) {
	customerID, ok := ctx.Value(customerIDKey).(int64)
	return customerID, ok
}
