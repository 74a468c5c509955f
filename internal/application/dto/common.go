package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset están fuera de rango.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"` // total de registros, no solo los de esta página
}

// ErrorBody cuerpo del error: código estable, mensaje traducido y errores por campo.
type ErrorBody struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

// ErrorResponse sobre de error HTTP: {"error": {"code", "message", "fields"}}.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Códigos de error de la API.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeConversion        = "PPU_CONVERSION_ERROR"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInvalidBody       = "INVALID_BODY"
	CodeInternal          = "INTERNAL_SERVER_ERROR"
)
