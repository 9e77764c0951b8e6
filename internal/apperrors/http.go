package apperrors

import "net/http"

// HTTPBody es el cuerpo de error que devuelve la API.
type HTTPBody struct {
	Error      Code     `json:"error"`
	Message    string   `json:"message,omitempty"`
	Fields     []string `json:"fields,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
}

// HTTPStatus traduce Kind (y algunos Code puntuales) a status HTTP.
func HTTPStatus(err error) int {
	e, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch e.Code {
	case CodeSubscriptionRequired, CodeSubscriptionExpired, CodeSubscriptionInvalid:
		return http.StatusPaymentRequired
	case CodePetLimitExceeded:
		return http.StatusForbidden
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindBusinessRule:
		return http.StatusUnprocessableEntity
	case KindStorage:
		return http.StatusServiceUnavailable
	case KindDownstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Body arma el HTTPBody; errores sin tipo no filtran detalles internos.
func Body(err error) HTTPBody {
	e, ok := As(err)
	if !ok {
		return HTTPBody{Error: "INTERNAL_ERROR", Message: "internal error"}
	}
	b := HTTPBody{Error: e.Code, Message: e.Message, Fields: e.Fields, Candidates: e.Candidates}
	if e.Kind == KindStorage {
		// la causa queda en logs, no en la respuesta
		b.Message = "storage unavailable"
	}
	return b
}
