package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/masknetdesign/mercado-online/internal/kvstore"
	"github.com/masknetdesign/mercado-online/internal/order"

	"github.com/rs/zerolog"
)

// Service reads and writes merchant settings through the key-value store.
type Service struct {
	kv     kvstore.Store
	logger zerolog.Logger
}

// NewService creates the settings service.
func NewService(kv kvstore.Store, logger zerolog.Logger) *Service {
	return &Service{
		kv:     kv,
		logger: logger.With().Str("component", "settings").Logger(),
	}
}

// WhatsAppNumber returns the saved contact number, falling back to the
// default when nothing is saved or the stored value is corrupt.
func (s *Service) WhatsAppNumber(ctx context.Context) string {
	data, err := s.kv.Get(ctx, kvstore.KeyWhatsAppNumber)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			s.logger.Warn().Err(err).Msg("failed to read whatsapp number, using default")
		}
		return order.DefaultWhatsAppNumber
	}

	var number string
	if err := json.Unmarshal(data, &number); err != nil {
		s.logger.Warn().Err(err).Msg("corrupt whatsapp number setting, using default")
		return order.DefaultWhatsAppNumber
	}

	if !order.ValidNumber(number) {
		s.logger.Warn().Str("number", number).Msg("stored whatsapp number is invalid, using default")
		return order.DefaultWhatsAppNumber
	}

	return number
}

// SaveWhatsAppNumber validates and persists the contact number.
func (s *Service) SaveWhatsAppNumber(ctx context.Context, number string) error {
	if err := order.ValidateNumber(number); err != nil {
		return err
	}

	data, err := json.Marshal(number)
	if err != nil {
		return fmt.Errorf("failed to serialize whatsapp number: %w", err)
	}
	if err := s.kv.Set(ctx, kvstore.KeyWhatsAppNumber, data); err != nil {
		return fmt.Errorf("failed to persist whatsapp number: %w", err)
	}

	s.logger.Info().Str("number", number).Msg("whatsapp number saved")
	return nil
}
