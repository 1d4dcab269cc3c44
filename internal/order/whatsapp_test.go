package order

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		valid  bool
	}{
		{"Brazilian mobile with country code", "5511999999999", true},
		{"Ten digits", "1199999999", true},
		{"Fifteen digits", "551199999999999", true},
		{"Too short", "119999999", false},
		{"Too long", "5511999999999999", false},
		{"Contains plus sign", "+5511999999999", false},
		{"Contains spaces", "55 11 99999 9999", false},
		{"Contains letters", "55onze9999999", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidNumber(tt.number))
			if tt.valid {
				assert.NoError(t, ValidateNumber(tt.number))
			} else {
				assert.Error(t, ValidateNumber(tt.number))
			}
		})
	}
}

func TestLink(t *testing.T) {
	link := Link("5511999999999", "🛒 *NOVO PEDIDO*\nTotal: R$ 18,97")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/5511999999999?text="))

	// The message must round-trip through the encoding intact.
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "🛒 *NOVO PEDIDO*\nTotal: R$ 18,97", parsed.Query().Get("text"))
}

func TestLink_EncodesReservedCharacters(t *testing.T) {
	link := Link("5511999999999", "a&b=c?d")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "a&b=c?d", parsed.Query().Get("text"))
}
