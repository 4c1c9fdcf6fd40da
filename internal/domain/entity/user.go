package entity

import (
	"time"
)

// User is a registered identity. The wallet is generated once, at account creation,
// and never rotated.
type User struct {
	ID              string `json:"uid" firestore:"uid"`
	Name            string `json:"name" firestore:"name"`
	Email           string `json:"email" firestore:"email"`
	WalletAddress   string `json:"walletAddress" firestore:"walletAddress"`
	EncryptedWallet string `json:"-" firestore:"encryptedWallet"`
	Provider        string `json:"provider,omitempty" firestore:"provider,omitempty"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}
