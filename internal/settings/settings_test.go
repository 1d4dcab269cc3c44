package settings

import (
	"context"
	"testing"

	"github.com/masknetdesign/mercado-online/internal/kvstore"
	"github.com/masknetdesign/mercado-online/internal/model"
	"github.com/masknetdesign/mercado-online/internal/order"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, kvstore.Store) {
	t.Helper()

	kv, err := kvstore.NewFileStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return NewService(kv, zerolog.Nop()), kv
}

func TestService_SaveAndReadNumber(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveWhatsAppNumber(ctx, "5511888887777"))
	assert.Equal(t, "5511888887777", svc.WhatsAppNumber(ctx))
}

func TestService_DefaultWhenUnset(t *testing.T) {
	svc, _ := newTestService(t)
	assert.Equal(t, order.DefaultWhatsAppNumber, svc.WhatsAppNumber(context.Background()))
}

func TestService_RejectsInvalidNumber(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []string{"", "123", "+5511999999999", "onze dígitos"}
	for _, number := range tests {
		err := svc.SaveWhatsAppNumber(ctx, number)
		require.Error(t, err, "number %q", number)
		assert.True(t, model.IsValidation(err))
	}

	// The failed saves must not have replaced the default.
	assert.Equal(t, order.DefaultWhatsAppNumber, svc.WhatsAppNumber(ctx))
}

func TestService_CorruptValueFallsBackToDefault(t *testing.T) {
	svc, kv := newTestService(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, kvstore.KeyWhatsAppNumber, []byte("{{{")))
	assert.Equal(t, order.DefaultWhatsAppNumber, svc.WhatsAppNumber(ctx))
}

func TestService_StoredButInvalidFallsBackToDefault(t *testing.T) {
	svc, kv := newTestService(t)
	ctx := context.Background()

	// A value that parses but fails validation (written by hand, say).
	require.NoError(t, kv.Set(ctx, kvstore.KeyWhatsAppNumber, []byte(`"abc"`)))
	assert.Equal(t, order.DefaultWhatsAppNumber, svc.WhatsAppNumber(ctx))
}
