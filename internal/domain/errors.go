package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrSessionRequired   = errors.New("sesión no iniciada")
	ErrInvalidClient     = errors.New("cliente con datos inconsistentes")
	ErrImportInProgress  = errors.New("ya hay una importación en curso")
	ErrUnsupportedFormat = errors.New("formato de archivo no soportado")
)
