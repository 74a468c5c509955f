package uom

import (
	"strconv"
	"strings"
)

// FormatQuantity agrupa dígitos de a tres desde la derecha con apóstrofo (estilo suizo): 1234 → "1'234".
func FormatQuantity(qty int64) string {
	s := strconv.FormatInt(qty, 10)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	b.Grow(len(sign) + len(s) + len(s)/3)
	b.WriteString(sign)
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte('\'')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// ParseQuantity interpreta el texto del usuario como entero no negativo. Lee el prefijo numérico
// ("12abc" → 12) y devuelve 0 para vacío, solo espacios, texto no numérico o negativos; nunca falla.
// Valores por encima de MaxQty se saturan en MaxQty para que la conversión reporte el desborde.
func ParseQuantity(value string) int64 {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0
	}
	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || negative {
		return 0
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil || n > MaxQty {
		return MaxQty
	}
	return n
}
