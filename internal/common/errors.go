// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях бота.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отправлять пользователю понятные сообщения.
package common

import "errors"

// Ошибки наград (каталог, подтверждение)
var (
	// ErrUnknownReward — награды с таким id нет в каталоге сессии
	ErrUnknownReward = errors.New("награда не найдена в каталоге")
	// ErrNoPendingClaim — подтверждение не найдено (уже использовано или истекло)
	ErrNoPendingClaim = errors.New("нет ожидающего подтверждения")
	// ErrInvalidCatalog — каталог нарушает инварианты (пустой id, дубль, отрицательная цена)
	ErrInvalidCatalog = errors.New("некорректный каталог наград")
	// ErrNegativeBalance — начальный баланс из профиля отрицательный
	ErrNegativeBalance = errors.New("баланс не может быть отрицательным")
)

// Ошибки профиля и экранов
var (
	// ErrProfileNotFound — источник данных не знает пользователя
	ErrProfileNotFound = errors.New("профиль не найден")
	// ErrOpportunityNotFound — нет карточки с таким id
	ErrOpportunityNotFound = errors.New("возможность не найдена")
	// ErrCertificateNotFound — за этот год нет часов волонтёрства
	ErrCertificateNotFound = errors.New("сертификат за этот год не найден")
)

// Ошибки админки
var (
	// ErrNotAdmin — пользователь не является администратором
	ErrNotAdmin = errors.New("у вас нет прав администратора")
	// ErrAdminDisabled — ADMIN_PASSWORD_HASH не задан
	ErrAdminDisabled = errors.New("админ-панель отключена")
	// ErrWrongPassword — неверный пароль
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("слишком много попыток, подождите 1 час")
	// ErrSessionExpired — сессия истекла
	ErrSessionExpired = errors.New("сессия истекла, авторизуйтесь заново")
)
