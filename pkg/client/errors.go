package client

import (
	"errors"
	"net"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/depotix/depotix-api/internal/application/dto"
	"github.com/depotix/depotix-api/internal/i18n"
)

// ParseAPIError convierte cualquier error del cliente en un texto para el usuario, en alemán.
func ParseAPIError(err any) string {
	return ParseAPIErrorIn(i18n.German, err)
}

// ParseAPIErrorIn igual que ParseAPIError en el idioma indicado.
func ParseAPIErrorIn(tag language.Tag, err any) string {
	if body, ok := envelope(err); ok {
		return describe(tag, body)
	}
	switch v := err.(type) {
	case string:
		return v
	case *ValidationErrors:
		parts := make([]string, 0, len(v.Errors))
		for _, e := range v.Errors {
			parts = append(parts, e.Field+": "+i18n.Message(tag, e))
		}
		return i18n.Text(tag, i18n.KeyValidationPrefix, strings.Join(parts, ", "))
	case error:
		if isNetworkError(v) {
			return i18n.Text(tag, i18n.KeyNetworkError)
		}
		return v.Error()
	}
	return i18n.Text(tag, i18n.KeyUnknownError)
}

func envelope(err any) (dto.ErrorBody, bool) {
	switch v := err.(type) {
	case dto.ErrorResponse:
		return v.Error, v.Error.Code != ""
	case *dto.ErrorResponse:
		if v != nil {
			return v.Error, v.Error.Code != ""
		}
	case error:
		var apiErr *APIError
		if errors.As(v, &apiErr) && apiErr.Body.Code != "" {
			return apiErr.Body, true
		}
	}
	return dto.ErrorBody{}, false
}

func describe(tag language.Tag, body dto.ErrorBody) string {
	switch body.Code {
	case dto.CodeInsufficientStock:
		if body.Message != "" {
			return body.Message
		}
		return i18n.Text(tag, i18n.KeyInsufficientStock)
	case dto.CodeConversion:
		return i18n.Text(tag, i18n.KeyConversionError)
	case dto.CodeValidation:
		if len(body.Fields) > 0 {
			fields := make([]string, 0, len(body.Fields))
			for f := range body.Fields {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			parts := make([]string, 0, len(fields))
			for _, f := range fields {
				parts = append(parts, f+": "+strings.Join(body.Fields[f], ", "))
			}
			return i18n.Text(tag, i18n.KeyValidationPrefix, strings.Join(parts, ", "))
		}
		if body.Message != "" {
			return body.Message
		}
		return i18n.Text(tag, i18n.KeyValidationError)
	}
	if body.Message != "" {
		return body.Message
	}
	return i18n.Text(tag, i18n.KeyGenericError)
}

func isNetworkError(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return strings.Contains(err.Error(), "fetch")
}
