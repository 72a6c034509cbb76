// Package validation holds the input rules shared by every payouts surface.
//
// Validators never return errors and never panic: a failed rule is an
// ordinary Result with a user-facing message (in Spanish, as shown in the
// dashboard next to the offending field).
package validation

// Result is the outcome of a single rule.
type Result struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func ok() Result { return Result{Valid: true} }

func fail(msg string) Result { return Result{Valid: false, Error: msg} }

const (
	MsgIBANFormat        = "Formato IBAN español inválido. Debe ser ES seguido de 22 dígitos"
	MsgIBANChecksum      = "El código de control del IBAN no es válido"
	MsgEmail             = "El formato del email no es válido"
	MsgPhone             = "El teléfono debe tener 9 dígitos y empezar por 6, 7, 8 o 9"
	MsgAmountNotPositive = "El importe debe ser mayor que 0"
	MsgAmountTooHigh     = "El importe es demasiado alto (máximo 1.000.000 €)"
	MsgRequired          = "Este campo es obligatorio"
	MsgPercentage        = "El porcentaje debe estar entre 0 y 100"
	MsgDateFormat        = "Formato de fecha inválido (AAAA-MM-DD)"
	MsgDateInvalid       = "La fecha no es válida"
	MsgDateRange         = "La fecha de fin debe ser posterior a la fecha de inicio"
)
