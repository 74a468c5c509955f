package uom

import (
	"crypto/rand"
	"io"
	mrand "math/rand/v2"

	"github.com/google/uuid"
)

// GenerateIdempotencyKey genera una llave UUID v4 para un envío de movimiento.
// Se genera una vez por sesión de formulario y se reutiliza en los reintentos del mismo envío.
func GenerateIdempotencyKey() string {
	return newIdempotencyKey(rand.Reader)
}

// newIdempotencyKey usa r como fuente criptográfica; si falla recurre a un generador
// pseudoaleatorio que igual respeta los bits de versión y variante de UUID v4.
func newIdempotencyKey(r io.Reader) string {
	id, err := uuid.NewRandomFromReader(r)
	if err == nil {
		return id.String()
	}
	return fallbackKey()
}

func fallbackKey() string {
	var id uuid.UUID
	for i := range id {
		id[i] = byte(mrand.IntN(256))
	}
	id[6] = (id[6] & 0x0f) | 0x40 // versión 4
	id[8] = (id[8] & 0x3f) | 0x80 // variante RFC 4122
	return id.String()
}
