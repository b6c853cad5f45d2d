// Package utils — мелкие общие помощники.
package utils

// Ptr возвращает указатель на копию v.
// Нужен для необязательных полей запросов (например, пароль в UpdateUserRequest).
func Ptr[T any](v T) *T {
	return &v
}
