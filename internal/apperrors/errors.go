package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind agrupa los errores por origen. El handler HTTP decide el status a partir de Kind.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindBusinessRule Kind = "business_rule"
	KindStorage      Kind = "storage"
	KindDownstream   Kind = "downstream"
)

// Code es el código legible por máquina que viaja hasta el cliente.
type Code string

const (
	CodeValidation           Code = "VALIDATION_ERROR"
	CodeSubscriptionRequired Code = "SUBSCRIPTION_REQUIRED"
	CodeSubscriptionExpired  Code = "SUBSCRIPTION_EXPIRED"
	CodeSubscriptionInvalid  Code = "SUBSCRIPTION_INVALID"
	CodePetLimitExceeded     Code = "PET_LIMIT_EXCEEDED"
	CodeDatabase             Code = "DATABASE_ERROR"

	CodeProfileNotFound        Code = "PROFILE_NOT_FOUND"
	CodePlanNotFound           Code = "PLAN_NOT_FOUND"
	CodePetNotFound            Code = "PET_NOT_FOUND"
	CodePetAmbiguous           Code = "PET_AMBIGUOUS"
	CodeAlertAlreadyActive     Code = "ALERT_ALREADY_ACTIVE"
	CodeAlertNotFound          Code = "ALERT_NOT_FOUND"
	CodeAlertNotActive         Code = "ALERT_NOT_ACTIVE"
	CodeSightingNotFound       Code = "SIGHTING_NOT_FOUND"
	CodeSightingAlreadyMatched Code = "SIGHTING_ALREADY_MATCHED"
	CodePhotoRequired          Code = "PHOTO_REQUIRED"
	CodeInvalidID              Code = "INVALID_ID"
	CodeSearchUnavailable      Code = "SEARCH_UNAVAILABLE"
	CodeNotificationFailed     Code = "NOTIFICATION_FAILED"
)

// Error es el resultado tipado que cruza la frontera core/glue.
// Fields enumera campos faltantes o inválidos; Candidates lista opciones
// cuando la operación necesita que el usuario desambigüe.
type Error struct {
	Kind       Kind
	Code       Code
	Message    string
	Fields     []string
	Candidates []string
	Err        error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(string(e.Code))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Fields) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(e.Fields, ", "))
		b.WriteString("]")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por Code, así errors.Is(err, &Error{Code: X}) funciona como sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

func New(kind Kind, code Code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind Kind, code Code, msg string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Err: err}
}

// Validation arma un VALIDATION_ERROR enumerando los campos.
func Validation(msg string, fields ...string) *Error {
	return &Error{Kind: KindValidation, Code: CodeValidation, Message: msg, Fields: fields}
}

// Storage envuelve una falla de persistencia (la única clase que el caller puede reintentar).
func Storage(op string, err error) *Error {
	return &Error{Kind: KindStorage, Code: CodeDatabase, Message: op, Err: err}
}

func NotFound(code Code, msg string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: msg}
}

func Conflict(code Code, msg string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: msg}
}

func Rule(code Code, msg string) *Error {
	return &Error{Kind: KindBusinessRule, Code: code, Message: msg}
}

// As devuelve el *Error de la cadena, si existe.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf devuelve el Code del error o "" si no es un *Error.
func CodeOf(err error) Code {
	if e, ok := As(err); ok {
		return e.Code
	}
	return ""
}

// KindOf devuelve el Kind; errores desconocidos se tratan como storage.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindStorage
}

func (e *Error) WithCandidates(c []string) *Error {
	e.Candidates = c
	return e
}

func Errorf(kind Kind, code Code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}
