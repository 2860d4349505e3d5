package service

import "errors"

// Сентинелы сервисного слоя. "Не найдено" отделено от ошибок драйвера,
// чтобы хендлеры могли отличить 404 от 500.
var (
	ErrNotFound       = errors.New("запись не найдена")
	ErrEmailTaken     = errors.New("пользователь с таким email уже существует")
	ErrBadCredentials = errors.New("неверная пара логин/пароль")
)
