// Package config хранит локальные учётные данные CLI-клиента todoctl.
//
// Файл по умолчанию:
//
//	~/.config/todoctl/credentials.json
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Credentials — сохранённый после login bearer-токен.
type Credentials struct {
	AccessToken string    `json:"access_token"`
	Username    string    `json:"username,omitempty"`
	Role        string    `json:"role,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}

// Valid сообщает, есть ли токен и не истёк ли он к моменту now.
// Нулевой ExpiresAt считается бессрочным: срок проверит сервер.
func (c *Credentials) Valid(now time.Time) bool {
	if c == nil || c.AccessToken == "" {
		return false
	}
	return c.ExpiresAt.IsZero() || now.Before(c.ExpiresAt)
}

// DefaultPath возвращает <config dir>/todoctl/credentials.json.
// Переменная TODOCTL_CREDENTIALS переопределяет путь.
func DefaultPath() (string, error) {
	if p := os.Getenv("TODOCTL_CREDENTIALS"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "todoctl", "credentials.json"), nil
}

// Load читает учётные данные. Отсутствие файла не ошибка.
func Load(path string) (*Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Credentials{}, nil
		}
		return nil, err
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save пишет учётные данные (каталог 0700, файл 0600).
func Save(path string, c *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// Remove удаляет файл учётных данных, если он есть.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
