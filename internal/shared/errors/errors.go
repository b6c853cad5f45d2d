// Package errors содержит общие доменные ошибки приложения.
//
// Ошибки возвращаются из repository и service слоёв
// и маппятся на HTTP-статусы и тела ответов в api слое.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат, кривой UUID и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
	// Ресурс уже существует (например username уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// ожидаемая ошибка
	ErrExpectedError = errors.New("expected error")
)

// ошибки OAuth token endpoint
var (
	// неверная пара username/password при password grant
	ErrInvalidGrant = errors.New("invalid_grant")
	// grant_type отличный от password
	ErrUnsupportedGrantType = errors.New("unsupported_grant_type")
	// владелец задачи не найден или удалён
	ErrOwnerNotFound = errors.New("owner not found")
)
