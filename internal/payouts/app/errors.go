package app

import "errors"

var ErrNotFound = errors.New("payment request not found")

const MsgNamesRequired = "Nombre y apellidos son obligatorios"

// ValidationError carries the first failed rule of a Draft. Error returns
// the rule's message unchanged so it can be shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
