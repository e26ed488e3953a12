package core

// # Error Codes Reference
//
// User-facing errors carry a short code that can be quoted when reporting a
// problem. Codes are grouped by category:
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Name required: the product name is empty
//	         Action: Enter a product name
//	VAL002 - Invalid quantity: adjustment quantity is zero, negative or not a whole number
//	         Action: Enter a whole number greater than zero
//	VAL003 - Invalid direction: adjustment direction is neither in nor out
//	         Action: Choose whether stock goes in or out
//	VAL004 - Empty selection: a bulk action was requested with nothing selected
//	         Action: Select at least one product
//	VAL005 - Malformed request: an API body could not be decoded
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: the CSV exceeds the import size limit
//	FILE002 - Empty or invalid CSV: no usable rows
//	FILE004 - No file: no file was selected
//
// # Inventory Errors (INV001-INV099)
//
//	INV001 - Product not found: the product was deleted or never existed
//
// # Storage Errors (STO001-STO099)
//
//	STO001 - Storage unavailable: the catalog could not be saved
//	STO002 - Timeout: the operation took too long
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: too many requests
//	RATE002 - Import busy: too many imports running at once
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the server log for the technical error.
//
// # Matching
//
// Typed errors from this package are matched first with errors.Is. Anything
// else falls back to case-insensitive substring patterns; the first match wins.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgNameRequired = UserMessage{
		Message: "El nombre es obligatorio",
		Action:  "Ingresá un nombre para el producto",
		Code:    "VAL001",
	}
	msgInvalidQuantity = UserMessage{
		Message: "Indicá una cantidad válida",
		Action:  "Ingresá un número entero mayor que cero",
		Code:    "VAL002",
	}
	msgInvalidDirection = UserMessage{
		Message: "Tipo de movimiento inválido",
		Action:  "Elegí si el movimiento es de entrada o de salida",
		Code:    "VAL003",
	}
	msgEmptySelection = UserMessage{
		Message: "Seleccioná al menos un producto",
		Action:  "Marcá los productos en la tabla y volvé a intentar",
		Code:    "VAL004",
	}
	msgEmptyCSV = UserMessage{
		Message: "CSV vacío o inválido",
		Action:  "Subí un archivo CSV con una fila de encabezados y al menos una fila de datos",
		Code:    "FILE002",
	}
	msgImportBusy = UserMessage{
		Message: "Hay otra importación en curso",
		Action:  "Esperá unos segundos y volvé a subir el archivo",
		Code:    "RATE002",
	}
	msgNotFound = UserMessage{
		Message: "Producto no encontrado",
		Action:  "Recargá el listado; el producto puede haber sido eliminado",
		Code:    "INV001",
	}
)

// sentinelMessages maps package sentinels to user messages, checked in order.
var sentinelMessages = []struct {
	err error
	msg UserMessage
}{
	{ErrNameRequired, msgNameRequired},
	{ErrInvalidQuantity, msgInvalidQuantity},
	{ErrInvalidDirection, msgInvalidDirection},
	{ErrEmptySelection, msgEmptySelection},
	{ErrEmptyCSV, msgEmptyCSV},
	{ErrNotFound, msgNotFound},
	{ErrImportBusy, msgImportBusy},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages
// for errors that do not come from this package, e.g. storage or transport.
var errorPatterns = []errorPattern{
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "Solicitud mal formada",
			Action:  "Enviá un cuerpo JSON con los campos documentados",
			Code:    "VAL005",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "El archivo supera el tamaño máximo de importación",
			Action:  "Dividí el archivo en partes más chicas",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "El archivo supera el tamaño máximo de importación",
			Action:  "Dividí el archivo en partes más chicas",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No se seleccionó ningún archivo",
			Action:  "Elegí un archivo CSV para importar",
			Code:    "FILE004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "La operación tardó demasiado",
			Action:  "Volvé a intentar",
			Code:    "STO002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "La operación tardó demasiado",
			Action:  "Volvé a intentar",
			Code:    "STO002",
		},
	},
	{
		pattern: "persist",
		msg: UserMessage{
			Message: "No se pudo guardar el catálogo",
			Action:  "Revisá el almacenamiento y volvé a intentar",
			Code:    "STO001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "No se pudo guardar el catálogo",
			Action:  "Revisá el almacenamiento y volvé a intentar",
			Code:    "STO001",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Demasiadas solicitudes",
			Action:  "Esperá un momento antes de volver a intentar",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "Ocurrió un error inesperado",
	Action:  "Volvé a intentar",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			return sm.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Código: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Código: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
