package entity

import (
	"time"
)

type InventoryItem struct {
	ID           string     `json:"id" firestore:"id"`
	UserID       string     `json:"user_id" firestore:"userId"`
	RewardItemID string     `json:"reward_item_id" firestore:"rewardItemId"`
	Quantity     int        `json:"quantity" firestore:"quantity"`
	Source       string     `json:"source" firestore:"source"`
	AcquiredAt   time.Time  `json:"acquired_at" firestore:"acquiredAt"`
	IsUsed       bool       `json:"is_used" firestore:"isUsed"`
	UsedAt       *time.Time `json:"used_at,omitempty" firestore:"usedAt"`

	// Item is joined from the reward catalog on read; never stored.
	Item *RewardItem `json:"item,omitempty" firestore:"-"`
}

type InventoryFilter struct {
	Rarity   Rarity
	Type     ItemType
	ShowUsed bool
}

// Matches applies the filter to an item whose catalog entry has been joined.
func (f InventoryFilter) Matches(it InventoryItem) bool {
	if !f.ShowUsed && it.IsUsed {
		return false
	}
	if f.Rarity != "" && (it.Item == nil || it.Item.Rarity != f.Rarity) {
		return false
	}
	if f.Type != "" && (it.Item == nil || it.Item.Type != f.Type) {
		return false
	}
	return true
}

type InventoryStats struct {
	TotalItems int              `json:"total_items"`
	UsedItems  int              `json:"used_items"`
	ByRarity   map[Rarity]int   `json:"by_rarity"`
	ByType     map[ItemType]int `json:"by_type"`
}

// Inventory sources.
const (
	SourceLoginBonus = "login_bonus"
	SourceRoulette   = "roulette"
	SourceMiniGame   = "mini_game"
	SourceLevelUp    = "level_up"
)
