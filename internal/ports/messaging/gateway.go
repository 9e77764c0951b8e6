package messaging

import "context"

// TemplateMessage es un mensaje basado en plantilla aprobada del proveedor.
// Variables usa claves numéricas ("1", "2", ...) como las plantillas de WhatsApp.
type TemplateMessage struct {
	To         string
	From       string
	TemplateID string
	Variables  map[string]string
}

// Gateway envía mensajes salientes. Devuelve el id del mensaje del proveedor.
// El core no interpreta callbacks de entrega.
type Gateway interface {
	SendTemplate(ctx context.Context, msg TemplateMessage) (string, error)
}
