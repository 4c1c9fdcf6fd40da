package entity

import "time"

// ZeroAddress is reported as the submitter of hashes absent from the registry.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// RegistryEntry mirrors the on-chain record for a hash. Absent hashes have Exists=false,
// Submitter=ZeroAddress and Timestamp=0.
type RegistryEntry struct {
	Hash      string `json:"hash"`
	Exists    bool   `json:"exists"`
	Submitter string `json:"submitter"`
	Timestamp int64  `json:"timestamp"`
}

func AbsentEntry(hash string) *RegistryEntry {
	return &RegistryEntry{
		Hash:      hash,
		Exists:    false,
		Submitter: ZeroAddress,
		Timestamp: 0,
	}
}

func (e *RegistryEntry) SubmittedAt() *time.Time {
	if !e.Exists || e.Timestamp == 0 {
		return nil
	}
	t := time.Unix(e.Timestamp, 0).UTC()
	return &t
}

type SubmissionReceipt struct {
	Hash            string `json:"hash"`
	TransactionHash string `json:"transactionHash"`
	BlockNumber     uint64 `json:"blockNumber"`
	Submitter       string `json:"submitter"`
}
