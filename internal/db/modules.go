package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/bobarin/vocalforge/internal/models"
)

// CreateModule stores a user-imported voice module. Built-in modules never
// touch the database; they live in the catalog.
func (db *DB) CreateModule(ctx context.Context, module *models.VoiceModule) error {
	settings, err := json.Marshal(module.Settings)
	if err != nil {
		return fmt.Errorf("failed to encode module settings: %w", err)
	}

	var source []byte
	if module.Source != nil {
		source, err = json.Marshal(module.Source)
		if err != nil {
			return fmt.Errorf("failed to encode module source: %w", err)
		}
	}

	query := `
		INSERT INTO voice_modules (id, name, description, color_tag, settings, source)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	return db.QueryRowContext(
		ctx, query,
		module.ID, module.Name, module.Description, module.ColorTag, settings, source,
	).Scan(&module.CreatedAt)
}

// GetModule retrieves an imported module by id.
func (db *DB) GetModule(ctx context.Context, id string) (*models.VoiceModule, error) {
	query := `
		SELECT id, name, description, color_tag, settings, source, created_at
		FROM voice_modules
		WHERE id = $1
	`

	module := &models.VoiceModule{}
	var settings, source []byte
	err := db.QueryRowContext(ctx, query, id).Scan(
		&module.ID, &module.Name, &module.Description, &module.ColorTag,
		&settings, &source, &module.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("voice module not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get voice module: %w", err)
	}

	if err := decodeModuleBlobs(module, settings, source); err != nil {
		return nil, err
	}

	return module, nil
}

// ListModules returns imported modules, newest first. Corrupt rows are
// skipped with a log line.
func (db *DB) ListModules(ctx context.Context) ([]models.VoiceModule, error) {
	query := `
		SELECT id, name, description, color_tag, settings, source, created_at
		FROM voice_modules
		ORDER BY created_at DESC
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list voice modules: %w", err)
	}
	defer rows.Close()

	var modules []models.VoiceModule
	for rows.Next() {
		var m models.VoiceModule
		var settings, source []byte
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Description, &m.ColorTag,
			&settings, &source, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan voice module: %w", err)
		}
		if err := decodeModuleBlobs(&m, settings, source); err != nil {
			log.Printf("[DB] Skipping voice module %s with corrupt data: %v", m.ID, err)
			continue
		}
		modules = append(modules, m)
	}

	return modules, rows.Err()
}

// DeleteModule removes an imported module by id.
func (db *DB) DeleteModule(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM voice_modules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete voice module: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("voice module not found")
	}

	return nil
}

func decodeModuleBlobs(m *models.VoiceModule, settings, source []byte) error {
	if err := json.Unmarshal(settings, &m.Settings); err != nil {
		return fmt.Errorf("failed to decode module settings: %w", err)
	}
	if len(source) > 0 {
		m.Source = &models.ModuleSource{}
		if err := json.Unmarshal(source, m.Source); err != nil {
			return fmt.Errorf("failed to decode module source: %w", err)
		}
	}
	return nil
}
