package entities

import "time"

// VerificationRecord is one immutable ledger entry. Sequence is the 1-based
// position within the fingerprint's history.
type VerificationRecord struct {
	RecordID    string
	Fingerprint Fingerprint
	BatchID     uint64
	Caller      Address
	Authentic   bool
	Sequence    int
	VerifiedAt  time.Time
}

type Statistics struct {
	Owner              Address
	Paused             bool
	TotalProducts      uint64
	TotalVerifications uint64
	TotalManufacturers int
}

// HistoryPage bounds a history read. A zero Limit means no bound.
type HistoryPage struct {
	Offset int
	Limit  int
}

// Window returns the [start, end) slice bounds of the page over total items.
func (p HistoryPage) Window(total int) (int, int) {
	start := p.Offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := total
	if p.Limit > 0 && start+p.Limit < total {
		end = start + p.Limit
	}
	return start, end
}
