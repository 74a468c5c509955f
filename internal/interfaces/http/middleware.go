package http

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"

	"github.com/depotix/depotix-api/internal/i18n"
)

// LocalLang key del idioma negociado en c.Locals.
const LocalLang = "lang"

// LangMiddleware negocia el idioma desde Accept-Language; sin header usa fallback.
func LangMiddleware(fallback language.Tag) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tag := fallback
		if h := c.Get(fiber.HeaderAcceptLanguage); h != "" {
			tag = i18n.Match(h)
		}
		c.Locals(LocalLang, tag)
		c.Set(fiber.HeaderContentLanguage, tag.String())
		return c.Next()
	}
}

// GetLang idioma de la petición (alemán si el middleware no corrió).
func GetLang(c *fiber.Ctx) language.Tag {
	if tag, ok := c.Locals(LocalLang).(language.Tag); ok {
		return tag
	}
	return i18n.German
}

// RequestLogger registra cada petición con método, ruta, estado y latencia.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error().Err(err)
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("company", GetCompanyID(c)).
			Msg("http")
		return err
	}
}

// Tracing abre un span por petición continuando el traceparent entrante; el contexto queda en
// c.UserContext() para que los casos de uso creen spans hijos.
func Tracing() fiber.Handler {
	tracer := otel.Tracer("github.com/depotix/depotix-api/internal/interfaces/http")
	return func(c *fiber.Ctx) error {
		hdr := make(http.Header)
		c.Request().Header.VisitAll(func(k, v []byte) {
			hdr.Add(string(k), string(v))
		})
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), propagation.HeaderCarrier(hdr))
		ctx, span := tracer.Start(ctx, c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Method()),
				attribute.String("http.target", c.OriginalURL()),
			),
		)
		defer span.End()
		c.SetUserContext(ctx)

		err := c.Next()
		status := c.Response().StatusCode()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if err != nil || status >= 500 {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
		return err
	}
}
