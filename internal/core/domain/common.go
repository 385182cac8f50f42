package domain

import "time"

// AuditFields holds bookkeeping timestamps for domain entities.
// They are informational only and take no part in ledger invariants.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

func newAuditFields() AuditFields {
	now := time.Now().UTC()
	return AuditFields{CreatedAt: now, LastUpdatedAt: now}
}

func (a *AuditFields) touch() {
	a.LastUpdatedAt = time.Now().UTC()
}
