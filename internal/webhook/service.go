package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fleetgrid/ownerconsole/internal/clock"
	"github.com/fleetgrid/ownerconsole/internal/config"
	"github.com/fleetgrid/ownerconsole/internal/webhook/domain"
	"github.com/fleetgrid/ownerconsole/pkg/db"
)

const (
	eventOrganizationCreated = "organization.created"
	eventOrganizationUpdated = "organization.updated"
	eventOrganizationDeleted = "organization.deleted"
)

type service struct {
	db    *gorm.DB
	cfg   config.Config
	node  *snowflake.Node
	clock clock.Clock
	log   *zap.Logger
}

func NewService(
	gdb *gorm.DB,
	cfg config.Config,
	node *snowflake.Node,
	clk clock.Clock,
	logger *zap.Logger,
) domain.Service {
	return &service{
		db:    gdb,
		cfg:   cfg,
		node:  node,
		clock: clk,
		log:   logger,
	}
}

func (s *service) Ingest(ctx context.Context, payload []byte, headers domain.Headers) (*domain.Result, error) {
	if s.cfg.IdentityWebhookSecret == "" {
		s.log.Warn("identity webhook secret not configured, skipping signature verification")
	} else if err := verifySignature(payload, headers, s.cfg.IdentityWebhookSecret); err != nil {
		return nil, err
	}

	var envelope eventEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	switch envelope.Type {
	case eventOrganizationCreated, eventOrganizationUpdated, eventOrganizationDeleted:
	default:
		// Unrecognized or absent event types are acknowledged without
		// side effects so the provider does not retry them forever.
		s.log.Info("ignoring identity event", zap.String("type", envelope.Type))
		return &domain.Result{Received: false}, nil
	}

	if envelope.Data.ID == "" {
		return nil, fmt.Errorf("%w: missing organization id", domain.ErrInvalidPayload)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.recordEvent(tx, envelope, payload, headers); err != nil {
			return err
		}
		return s.apply(tx, envelope)
	})
	if err != nil {
		if errors.Is(err, domain.ErrEventAlreadyProcessed) {
			s.log.Info("identity event already processed",
				zap.String("provider_event_id", headers.EventID),
				zap.String("type", envelope.Type),
			)
			return &domain.Result{Received: true}, nil
		}
		return nil, err
	}

	return &domain.Result{Received: true}, nil
}

// recordEvent inserts the idempotency log row. A duplicate provider event
// id means a redelivery and aborts the transaction before any mutation.
func (s *service) recordEvent(tx *gorm.DB, envelope eventEnvelope, payload []byte, headers domain.Headers) error {
	event := domain.IdentityEvent{
		ID:              s.node.Generate().Int64(),
		ProviderEventID: headers.EventID,
		EventType:       envelope.Type,
		Payload:         string(payload),
		ReceivedAt:      s.clock.Now(),
	}
	if err := tx.Create(&event).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.ErrEventAlreadyProcessed
		}
		return err
	}
	return nil
}

func (s *service) apply(tx *gorm.DB, envelope eventEnvelope) error {
	now := s.clock.Now()
	updates := extractOrganizationData(envelope.Data, now)

	switch envelope.Type {
	case eventOrganizationCreated:
		updates["active"] = true
		row := map[string]any{"id": envelope.Data.ID, "created_at": now}
		for column, value := range updates {
			row[column] = value
		}
		return tx.Table("organizations").
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.Assignments(updates),
			}).
			Create(row).Error
	case eventOrganizationUpdated:
		return tx.Table("organizations").
			Where("id = ?", envelope.Data.ID).
			Updates(updates).Error
	case eventOrganizationDeleted:
		return tx.Table("organizations").
			Where("id = ?", envelope.Data.ID).
			Updates(map[string]any{"active": false, "updated_at": now}).Error
	default:
		return nil
	}
}
