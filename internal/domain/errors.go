package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrCompanyNotFound    = errors.New("empresa no encontrada")
	ErrPolicyNotFound     = errors.New("póliza no encontrada")
	ErrMessageNotFound    = errors.New("mensaje no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrDocumentExists     = errors.New("el documento ya está registrado")
	ErrPolicyNumberExists = errors.New("el número de póliza ya existe")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrResetTokenInvalid  = errors.New("token de restablecimiento inválido o expirado")
)
