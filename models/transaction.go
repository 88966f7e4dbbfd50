package models

import (
	"time"
)

// Transaction types.
const (
	TransactionTypeTransfer = 1
	TransactionTypePurchase = 2
	TransactionTypeRefund   = 3
)

// Transaction is a money transfer between two users. Creating one moves the
// amount from the sender's wallet to the receiver's in the same DB transaction.
type Transaction struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"sender_id" gorm:"not null;index"`
	ReceiverID uint      `json:"receiver_id" gorm:"not null;index"`
	Type       int       `json:"type" gorm:"default:1"`
	Amount     float64   `json:"amount" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}
