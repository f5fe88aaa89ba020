package reader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alovak/cardflow-swipe/internal/cardgen"
	"github.com/alovak/cardflow-swipe/internal/display"
	"github.com/alovak/cardflow-swipe/internal/expiry"
	"github.com/alovak/cardflow-swipe/internal/security"
	"github.com/alovak/cardflow-swipe/internal/track2"
	"github.com/alovak/cardflow-swipe/reader/iso8583"
	"github.com/alovak/cardflow-swipe/reader/models"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Authorizer sends an accepted swipe to the acquirer and returns DE39.
type Authorizer interface {
	Authorize(a iso8583.Authorization) (string, error)
}

// Service decodes swipes and enriches accepted cards. It holds no
// per-swipe state; each Process call starts from scratch.
type Service struct {
	cfg     *Config
	logger  *slog.Logger
	hashKey []byte
	cvv     security.CVVProvider
	auth    Authorizer
	now     func() time.Time
}

func NewService(logger *slog.Logger, cfg *Config) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Service{
		cfg:     cfg,
		logger:  logger,
		hashKey: []byte(cfg.PANHashKey),
		now:     time.Now,
	}
	if cfg.CVVKey != "" {
		s.cvv = security.NewDemoProvider([]byte(cfg.CVVKey))
	}
	return s
}

// SetAuthorizer enables forwarding of accepted swipes.
func (s *Service) SetAuthorizer(a Authorizer) {
	s.auth = a
}

// Process decodes one raw reader message.
func (s *Service) Process(raw string) models.Result {
	res := models.Result{ID: uuid.New().String()}
	logger := s.logger.With(slog.String("swipe_id", res.ID))

	card, err := track2.Decode(strings.TrimSpace(raw))
	res.Display = display.For(card, err)
	if err != nil {
		kind, _ := track2.KindOf(err)
		res.Error = &models.Error{Kind: kind.String(), Message: display.Message(err)}
		logger.Info("swipe rejected", slog.String("kind", kind.String()), slog.Any("err", err))
		return res
	}

	res.Card = s.describe(logger, card)
	logger.Info("swipe decoded",
		slog.String("pan", res.Card.MaskedNumber),
		slog.String("pan_fp", res.Card.Fingerprint),
		slog.Bool("luhn_valid", res.Card.LuhnValid),
		slog.Bool("expired", res.Card.Expired),
		slog.String("cvv", res.Card.CVV),
	)
	return res
}

func (s *Service) describe(logger *slog.Logger, card *track2.Card) *models.Card {
	out := &models.Card{
		Number:          card.DisplayNumber(),
		MaskedNumber:    cardgen.MaskPAN(card.Number),
		Fingerprint:     cardgen.Fingerprint(card.Number, s.hashKey),
		ExpirationMonth: card.ExpirationMonth,
		ExpirationYear:  card.ExpirationYear,
		ServiceCode:     card.ServiceCode,
		Discretionary:   card.Discretionary,
		LuhnValid:       cardgen.ValidatePAN(card.Number) == nil,
	}

	if expired, err := expiry.IsExpired(card.ExpiryYYMM(), s.now(), nil); err == nil {
		out.ExpiryValid = true
		out.Expired = expired
	}

	outcome, err := security.Check(s.cvv, card, security.Placement{Offset: s.cfg.CVVOffset, Width: s.cfg.CVVWidth})
	if err != nil {
		logger.Info("cvv check skipped", slog.Any("err", err))
	}
	out.CVV = string(outcome)

	if s.auth != nil && s.cfg.Amount > 0 {
		code, err := s.auth.Authorize(iso8583.Authorization{
			Card:     card,
			Amount:   s.cfg.Amount,
			Currency: s.cfg.Currency,
		})
		if err != nil {
			logger.Error("authorizing swipe", "err", err)
		} else {
			out.ResponseCode = code
		}
	}
	return out
}

// Run feeds messages from src through Process, one at a time, and hands
// every result to sink. It returns nil when src is exhausted.
func (s *Service) Run(ctx context.Context, src Source, sink Sink) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading swipe: %w", err)
		}
		if err := sink.Show(s.Process(raw)); err != nil {
			return fmt.Errorf("showing swipe: %w", err)
		}
	}
}
