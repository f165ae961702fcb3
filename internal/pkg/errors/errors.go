package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены
	// (в том числе когда викторина существует, но не содержит ни одного вопроса).
	ErrNotFound = errors.New("record not found")

	// ErrInvalidState используется, когда запрос приходит без активной сессии
	// прохождения викторины (сессия истекла или не была создана).
	// Вызывающая сторона должна предложить начать викторину заново.
	ErrInvalidState = errors.New("no active delivery session")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict используется для конфликтов состояния
	// (например, попытка создать викторину с уже занятым названием).
	ErrConflict = errors.New("resource state conflict")
)
