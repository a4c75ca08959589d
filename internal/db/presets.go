package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/bobarin/vocalforge/internal/models"
)

// CreatePreset stores a named snapshot of voice settings. Settings go into
// a jsonb column so new tuning fields never need a migration.
func (db *DB) CreatePreset(ctx context.Context, preset *models.Preset) error {
	settings, err := json.Marshal(preset.Settings)
	if err != nil {
		return fmt.Errorf("failed to encode preset settings: %w", err)
	}

	query := `
		INSERT INTO presets (id, name, settings)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	return db.QueryRowContext(ctx, query, preset.ID, preset.Name, settings).
		Scan(&preset.CreatedAt)
}

// GetPreset retrieves a preset by id.
func (db *DB) GetPreset(ctx context.Context, id uuid.UUID) (*models.Preset, error) {
	query := `
		SELECT id, name, settings, created_at
		FROM presets
		WHERE id = $1
	`

	preset := &models.Preset{}
	var settings []byte
	err := db.QueryRowContext(ctx, query, id).Scan(
		&preset.ID, &preset.Name, &settings, &preset.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("preset not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preset: %w", err)
	}

	if err := json.Unmarshal(settings, &preset.Settings); err != nil {
		return nil, fmt.Errorf("failed to decode preset settings: %w", err)
	}

	return preset, nil
}

// ListPresets returns all saved presets, newest first. A row whose settings
// blob no longer decodes is skipped with a log line rather than failing the
// whole listing.
func (db *DB) ListPresets(ctx context.Context) ([]models.Preset, error) {
	query := `
		SELECT id, name, settings, created_at
		FROM presets
		ORDER BY created_at DESC
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	defer rows.Close()

	var presets []models.Preset
	for rows.Next() {
		var p models.Preset
		var settings []byte
		if err := rows.Scan(&p.ID, &p.Name, &settings, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan preset: %w", err)
		}
		if err := json.Unmarshal(settings, &p.Settings); err != nil {
			log.Printf("[DB] Skipping preset %s with corrupt settings: %v", p.ID, err)
			continue
		}
		presets = append(presets, p)
	}

	return presets, rows.Err()
}

// DeletePreset removes a preset by id.
func (db *DB) DeletePreset(ctx context.Context, id uuid.UUID) error {
	result, err := db.ExecContext(ctx, `DELETE FROM presets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("preset not found")
	}

	return nil
}
