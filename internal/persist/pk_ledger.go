package persist

import (
	"context"
	"fmt"
)

// PKLedgerEntry 是一筆 PK 結算的流水帳，寫入後不再修改。
type PKLedgerEntry struct {
	Winner      string
	Loser       string
	MoneyStolen int64
	EquipmentID string
}

type PKLedgerRepo struct {
	db *DB
}

func NewPKLedgerRepo(db *DB) *PKLedgerRepo {
	return &PKLedgerRepo{db: db}
}

// Append 寫入一筆結算紀錄。失敗時呼叫端僅記錄錯誤，不回滾遊戲內狀態。
func (r *PKLedgerRepo) Append(ctx context.Context, e PKLedgerEntry) error {
	var equipID *string
	if e.EquipmentID != "" {
		equipID = &e.EquipmentID
	}
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO pk_ledger (winner, loser, money_stolen, equipment_id)
		 VALUES ($1, $2, $3, $4)`,
		e.Winner, e.Loser, e.MoneyStolen, equipID,
	)
	if err != nil {
		return fmt.Errorf("pk ledger insert: %w", err)
	}
	return nil
}

// WinCount 回傳一名角色的 PK 勝場數。
func (r *PKLedgerRepo) WinCount(ctx context.Context, name string) (int64, error) {
	var n int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM pk_ledger WHERE winner = $1`, name,
	).Scan(&n)
	return n, err
}
