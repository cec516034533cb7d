package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/mockapi"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/sdk"
	"github.com/jackc/pgx/v5"
)

var _ mockapi.Store = (*PostgresStore)(nil)

func (s *PostgresStore) CreateInstall(ctx context.Context, in mockapi.Install, attribution map[string]string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO installs (id, app_key, environment, created_at)
		VALUES ($1, $2, $3, $4)
	`, in.ID, in.AppKey, in.Environment, in.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting install: %w", err)
	}

	if err := upsertAttribution(ctx, tx, in.ID, attribution); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) GetInstall(ctx context.Context, id string) (mockapi.Install, error) {
	var in mockapi.Install
	err := s.pool.QueryRow(ctx, `
		SELECT id::text, app_key, environment, created_at
		FROM installs WHERE id::text = $1
	`, id).Scan(&in.ID, &in.AppKey, &in.Environment, &in.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return mockapi.Install{}, mockapi.ErrNotFound
		}
		return mockapi.Install{}, fmt.Errorf("querying install: %w", err)
	}
	return in, nil
}

func (s *PostgresStore) RecordEvent(ctx context.Context, ev sdk.EventRequest) error {
	if err := s.requireInstall(ctx, ev.InstallID); err != nil {
		return err
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO sdk_events (install_id, event_id, payload)
		VALUES ($1, $2, $3)
	`, ev.InstallID, ev.EventID, payload)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

func (s *PostgresStore) SetUserField(ctx context.Context, installID, field, value string) error {
	if err := s.requireInstall(ctx, installID); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_fields (install_id, field, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (install_id, field) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, installID, field, value)
	if err != nil {
		return fmt.Errorf("upserting user field: %w", err)
	}
	return nil
}

func (s *PostgresStore) Attribution(ctx context.Context, installID string) (map[string]string, error) {
	if err := s.requireInstall(ctx, installID); err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `SELECT field, value FROM attribution WHERE install_id = $1`, installID)
	if err != nil {
		return nil, fmt.Errorf("querying attribution: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return nil, fmt.Errorf("scanning attribution: %w", err)
		}
		out[field] = value
	}
	return out, rows.Err()
}

func (s *PostgresStore) MergeAttribution(ctx context.Context, installID string, fields map[string]string) error {
	if err := s.requireInstall(ctx, installID); err != nil {
		return err
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := upsertAttribution(ctx, tx, installID, fields); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) SaveLink(ctx context.Context, code string, cfg domain.DynamicLinkConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding link config: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO dynamic_links (code, config) VALUES ($1, $2)
		ON CONFLICT (code) DO UPDATE SET config = EXCLUDED.config
	`, code, data)
	if err != nil {
		return fmt.Errorf("inserting link: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetLink(ctx context.Context, code string) (domain.DynamicLinkConfig, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT config FROM dynamic_links WHERE code = $1`, code).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DynamicLinkConfig{}, mockapi.ErrNotFound
		}
		return domain.DynamicLinkConfig{}, fmt.Errorf("querying link: %w", err)
	}

	var cfg domain.DynamicLinkConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return domain.DynamicLinkConfig{}, fmt.Errorf("decoding link config: %w", err)
	}
	return cfg, nil
}

func (s *PostgresStore) requireInstall(ctx context.Context, id string) error {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM installs WHERE id::text = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking install: %w", err)
	}
	if !exists {
		return mockapi.ErrNotFound
	}
	return nil
}

func upsertAttribution(ctx context.Context, tx pgx.Tx, installID string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for field, value := range fields {
		batch.Queue(`
			INSERT INTO attribution (install_id, field, value) VALUES ($1, $2, $3)
			ON CONFLICT (install_id, field) DO UPDATE SET value = EXCLUDED.value
		`, installID, field, value)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upserting attribution: %w", err)
	}
	return nil
}
