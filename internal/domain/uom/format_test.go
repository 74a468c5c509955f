package uom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/depotix/depotix-api/internal/domain/uom"
)

func TestFormatQuantity(t *testing.T) {
	tests := map[int64]string{
		0:                   "0",
		7:                   "7",
		999:                 "999",
		1000:                "1'000",
		1234:                "1'234",
		123456:              "123'456",
		1234567:             "1'234'567",
		-1234:               "-1'234",
		-12:                 "-12",
		9223372036854775807: "9'223'372'036'854'775'807",
	}
	for in, want := range tests {
		assert.Equal(t, want, uom.FormatQuantity(in), "FormatQuantity(%d)", in)
	}
}

func TestParseQuantity(t *testing.T) {
	tests := map[string]int64{
		"":                        0,
		"   ":                     0,
		"abc":                     0,
		"-5":                      0,
		"-0":                      0,
		"42":                      42,
		" 42 ":                    42,
		"+7":                      7,
		"12abc":                   12,
		"3.9":                     3,
		"007":                     7,
		"99999999999999999999999": uom.MaxQty,
	}
	for in, want := range tests {
		assert.Equal(t, want, uom.ParseQuantity(in), "ParseQuantity(%q)", in)
	}
}
