// Package i18n traduce errores de validación y códigos de la API a texto para el usuario.
// El dominio solo produce (Kind, Params); aquí se arma el mensaje según el idioma negociado.
// Alemán es el idioma por defecto (clientes suizos).
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/depotix/depotix-api/internal/domain/uom"
)

// Idiomas soportados; el primero es el de respaldo.
var (
	German    = language.German
	English   = language.English
	supported = []language.Tag{German, English}
	matcher   = language.NewMatcher(supported)
)

var cat = newCatalog()

// Match negocia el idioma a partir de un header Accept-Language (o un tag suelto como "en").
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return German
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

// Parse interpreta un tag configurado ("de", "en"); vacío o desconocido → alemán.
func Parse(tag string) language.Tag {
	if strings.TrimSpace(tag) == "" {
		return German
	}
	return Match(tag)
}

func printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(cat))
}

// Text devuelve el mensaje de la llave en el idioma indicado.
func Text(tag language.Tag, key string, args ...any) string {
	return printer(tag).Sprintf(key, args...)
}

// Message arma el texto de una violación de validación.
func Message(tag language.Tag, e uom.ValidationError) string {
	p := printer(tag)
	switch e.Kind {
	case uom.KindQuantityInvalid:
		return p.Sprintf(keyFieldInvalid(e.Field))
	case uom.KindQuantityRequired:
		return p.Sprintf(KeyQuantityRequired)
	case uom.KindPalletFactorInvalid:
		return p.Sprintf(KeyPalletFactorInvalid)
	case uom.KindPackageFactorInvalid:
		return p.Sprintf(KeyPackageFactorInvalid)
	case uom.KindInsufficientStock:
		var available, requested int64
		if len(e.Params) == 2 {
			available, requested = e.Params[0], e.Params[1]
		}
		return p.Sprintf(KeyInsufficientStockDetail,
			uom.FormatQuantity(available), uom.FormatQuantity(requested))
	}
	return p.Sprintf(KeyValidationError)
}

// Fields agrupa los mensajes por campo, con la forma {campo: [mensajes]} del sobre de error.
func Fields(tag language.Tag, errs []uom.ValidationError) map[string][]string {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string][]string, len(errs))
	for _, e := range errs {
		out[e.Field] = append(out[e.Field], Message(tag, e))
	}
	return out
}

// Breakdown describe una cantidad PPU para vistas previas: "2 Paletten + 3 Pakete + 5 Stück".
// unitLabel vacío usa la etiqueta genérica de unidad del idioma.
func Breakdown(tag language.Tag, in uom.PPUInput, unitLabel string) string {
	p := printer(tag)
	if unitLabel == "" {
		unitLabel = p.Sprintf(KeyUnitLabel)
	}
	var parts []string
	if in.Pallets > 0 {
		parts = append(parts, p.Sprintf(KeyBreakdownPallets, uom.FormatQuantity(in.Pallets)))
	}
	if in.Packages > 0 {
		parts = append(parts, p.Sprintf(KeyBreakdownPackages, uom.FormatQuantity(in.Packages)))
	}
	if in.Singles > 0 {
		parts = append(parts, uom.FormatQuantity(in.Singles)+" "+unitLabel)
	}
	if len(parts) == 0 {
		return "0 " + unitLabel
	}
	return strings.Join(parts, " + ")
}

func keyFieldInvalid(field string) string {
	switch field {
	case uom.FieldPallets:
		return KeyPalletsInvalid
	case uom.FieldPackages:
		return KeyPackagesInvalid
	case uom.FieldQtyBase:
		return KeyQtyBaseInvalid
	default:
		return KeySinglesInvalid
	}
}
