package model

import "time"

// Direction of money movement on a feed item.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// FeedItemStatus represents the lifecycle state of a feed item.
type FeedItemStatus string

const (
	StatusSettled  FeedItemStatus = "SETTLED"
	StatusPending  FeedItemStatus = "PENDING"
	StatusDeclined FeedItemStatus = "DECLINED"
	StatusReversed FeedItemStatus = "REVERSED"
	StatusRefunded FeedItemStatus = "REFUNDED"
)

// Transaction is one feed item from the Starling transaction feed.
type Transaction struct {
	FeedItemUid      string         `json:"feedItemUid"`
	CategoryUid      string         `json:"categoryUid"`
	Amount           Amount         `json:"amount"`
	SourceAmount     Amount         `json:"sourceAmount"`
	Direction        Direction      `json:"direction"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	TransactionTime  time.Time      `json:"transactionTime"`
	SettlementTime   time.Time      `json:"settlementTime,omitempty"`
	Source           string         `json:"source"` // payment rail (MASTER_CARD, DIRECT_DEBIT, ...)
	Status           FeedItemStatus `json:"status"`
	CounterPartyName string         `json:"counterPartyName,omitempty"`
	CounterPartyType string         `json:"counterPartyType,omitempty"`
	Reference        string         `json:"reference,omitempty"`
	Country          string         `json:"country,omitempty"`
	SpendingCategory string         `json:"spendingCategory,omitempty"`
	UserNote         string         `json:"userNote,omitempty"`
}
