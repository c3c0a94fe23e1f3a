package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"punchline/internal/db"
	"punchline/internal/game"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormRepository stores each game as one jsonb document row.
type GormRepository struct {
	conn *gorm.DB
}

func NewGormRepository(conn *gorm.DB) *GormRepository {
	return &GormRepository{conn: conn}
}

func (r *GormRepository) Create(ctx context.Context, g *game.Game) error {
	data, err := encodeGame(g)
	if err != nil {
		return err
	}
	record := db.GameDocument{
		GameCode: g.Code,
		State:    string(g.State),
		Version:  1,
		Document: datatypes.JSON(data),
	}
	if err := r.conn.WithContext(ctx).Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrCodeTaken
		}
		return fmt.Errorf("create game %s: %w", g.Code, err)
	}
	g.Version = record.Version
	return nil
}

func (r *GormRepository) Load(ctx context.Context, code string) (*game.Game, error) {
	var record db.GameDocument
	if err := r.conn.WithContext(ctx).Where("game_code = ?", code).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load game %s: %w", code, err)
	}
	return decodeGame(record.Document, record.Version)
}

func (r *GormRepository) Save(ctx context.Context, g *game.Game) error {
	data, err := encodeGame(g)
	if err != nil {
		return err
	}
	result := r.conn.WithContext(ctx).Model(&db.GameDocument{}).
		Where("game_code = ? AND version = ?", g.Code, g.Version).
		Updates(map[string]any{
			"document": datatypes.JSON(data),
			"state":    string(g.State),
			"version":  gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return fmt.Errorf("save game %s: %w", g.Code, result.Error)
	}
	if result.RowsAffected == 0 {
		exists, err := r.Exists(ctx, g.Code)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrConflict
	}
	g.Version++
	return nil
}

func (r *GormRepository) Exists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.conn.WithContext(ctx).Model(&db.GameDocument{}).Where("game_code = ?", code).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check game %s: %w", code, err)
	}
	return count > 0, nil
}

func (r *GormRepository) AppendEvent(ctx context.Context, event Event) error {
	data, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}
	record := db.Event{
		GameCode: event.GameCode,
		Round:    event.Round,
		Type:     event.Type,
		Payload:  datatypes.JSON(data),
	}
	if event.PlayerID != "" {
		playerID := event.PlayerID
		record.PlayerID = &playerID
	}
	return r.conn.WithContext(ctx).Create(&record).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
