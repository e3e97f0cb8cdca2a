package errx

import (
	"net/http"
)

// WrapRedis maps a Redis error to an AppError with a consistent status and message.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, RedisErrorMessage)
}
