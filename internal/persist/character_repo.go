package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhgo/server/internal/world"
	"go.uber.org/zap"
)

// CharacterRepo stores characters as one JSONB record per account. The
// record format is owned by world.EncodeCharacter/DecodeCharacter; the
// relational columns are denormalized copies for queries and rankings.
type CharacterRepo struct {
	db *DB
}

func NewCharacterRepo(db *DB) *CharacterRepo {
	return &CharacterRepo{db: db}
}

// Load returns the account's character, or nil when none was created yet.
func (r *CharacterRepo) Load(ctx context.Context, accountName string) (*world.Character, error) {
	var raw []byte
	err := r.db.Pool.QueryRow(ctx,
		`SELECT record FROM characters WHERE account_name = $1`, accountName,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load character for %s: %w", accountName, err)
	}
	c, err := world.DecodeCharacter(raw)
	if err != nil {
		return nil, fmt.Errorf("character for %s: %w", accountName, err)
	}
	return c, nil
}

// Save upserts the character record for an account.
func (r *CharacterRepo) Save(ctx context.Context, accountName string, c *world.Character) error {
	raw, err := world.EncodeCharacter(c)
	if err != nil {
		return err
	}
	_, err = r.db.Pool.Exec(ctx,
		`INSERT INTO characters (account_name, name, class, level, record, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 ON CONFLICT (account_name)
		 DO UPDATE SET name = $2, class = $3, level = $4, record = $5, updated_at = NOW()`,
		accountName, c.Name, c.Class, c.Level, raw,
	)
	if err != nil {
		return fmt.Errorf("save character %s: %w", c.Name, err)
	}
	r.db.log.Debug("角色存檔", zap.String("player", c.Name))
	return nil
}

// UpdateRecord rewrites an existing character's record by character name.
// Used when the acting code knows the character but not the owning account
// (PK settlement touches both sides).
func (r *CharacterRepo) UpdateRecord(ctx context.Context, c *world.Character) error {
	raw, err := world.EncodeCharacter(c)
	if err != nil {
		return err
	}
	_, err = r.db.Pool.Exec(ctx,
		`UPDATE characters SET class = $2, level = $3, record = $4, updated_at = NOW()
		 WHERE name = $1`,
		c.Name, c.Class, c.Level, raw,
	)
	if err != nil {
		return fmt.Errorf("update character %s: %w", c.Name, err)
	}
	return nil
}

// NameTaken reports whether a character name is already in use.
func (r *CharacterRepo) NameTaken(ctx context.Context, name string) (bool, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM characters WHERE name = $1`, name,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// TopByLevel returns character names ordered by level for the ranking board.
func (r *CharacterRepo) TopByLevel(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT name FROM characters ORDER BY level DESC, name ASC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
