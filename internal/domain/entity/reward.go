package entity

import (
	"time"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// RewardDefinition is one slot of the roulette wheel.
type RewardDefinition struct {
	ID                string  `json:"id" firestore:"id"`
	Name              string  `json:"name" firestore:"name"`
	Rarity            Rarity  `json:"rarity" firestore:"rarity"`
	ProbabilityWeight float64 `json:"probability_weight" firestore:"probabilityWeight"`
	Coins             int     `json:"coins,omitempty" firestore:"coins,omitempty"`
	Exp               int     `json:"exp,omitempty" firestore:"exp,omitempty"`
	ItemID            string  `json:"item_id,omitempty" firestore:"itemId,omitempty"`
}

type ItemType string

const (
	ItemTypeCoin     ItemType = "coin"
	ItemTypeGem      ItemType = "gem"
	ItemTypeBoost    ItemType = "boost"
	ItemTypeCosmetic ItemType = "cosmetic"
)

var ItemTypes = []ItemType{ItemTypeCoin, ItemTypeGem, ItemTypeBoost, ItemTypeCosmetic}

func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeCoin, ItemTypeGem, ItemTypeBoost, ItemTypeCosmetic:
		return true
	}
	return false
}

// RewardItem is a catalog entry that can be held in a user's inventory.
type RewardItem struct {
	ID          string    `json:"id" firestore:"id"`
	Name        string    `json:"name" firestore:"name"`
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	Rarity      Rarity    `json:"rarity" firestore:"rarity"`
	Type        ItemType  `json:"type" firestore:"type"`
	IconURL     string    `json:"icon_url,omitempty" firestore:"iconUrl,omitempty"`
	IsActive    bool      `json:"is_active" firestore:"isActive"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}
