package apperrors

import (
	"net/http"
)

// --- Broadcast ---

// ErrBroadcastNotFound - рассылка с таким id не существует.
var ErrBroadcastNotFound = NotFound("broadcast", "Broadcast does not exist")

// ErrContextNotFound - контекст (сайт, категория, курс, модуль) не найден.
var ErrContextNotFound = NotFound("context", "Context does not exist")

// ErrCourseNotFound - курс не найден (при выборе области рассылки).
var ErrCourseNotFound = NotFound("catalog", "Course does not exist")

// ErrCategoryNotFound - категория не найдена.
var ErrCategoryNotFound = NotFound("catalog", "Category does not exist")

// --- Auth & Users ---

// ErrUserNotFound - пользователь не найден.
var ErrUserNotFound = NotFound("user", "User does not exist")

// ErrEmailAlreadyExists - email уже используется.
var ErrEmailAlreadyExists = New(
	CodeConflict,
	"user",
	"Email already in use",
	http.StatusConflict,
)

// ErrInvalidCredentials - неверный email или пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - неверный или просроченный токен.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrPermissionDenied - у пользователя нет нужной capability в контексте.
var ErrPermissionDenied = NewForbiddenError("Access denied")

// ErrModuleNotFound - модуль курса не найден.
var ErrModuleNotFound = NotFound("catalog", "Course module does not exist")
