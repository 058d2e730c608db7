package models

import (
	"time"

	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
)

// Change describes a committed write to one of the tables.
type Change struct {
	Table    string         `json:"table"`
	Op       types.ChangeOp `json:"op"`
	RecordID int64          `json:"record_id"`
	Record   any            `json:"record,omitempty"`
	At       time.Time      `json:"at"`
}

// NewChange stamps a change with the current time.
func NewChange(table string, op types.ChangeOp, id int64, record any) Change {
	return Change{
		Table:    table,
		Op:       op,
		RecordID: id,
		Record:   record,
		At:       time.Now().UTC(),
	}
}
