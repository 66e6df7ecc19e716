package entity

type GameRank string

const (
	RankS GameRank = "S"
	RankA GameRank = "A"
	RankB GameRank = "B"
	RankC GameRank = "C"
	RankD GameRank = "D"
	RankF GameRank = "F"
)

// MiniGameRewards is the payout for one reaction-game run.
type MiniGameRewards struct {
	Coins     int            `json:"coins"`
	Exp       int            `json:"exp"`
	BonusItem *SpecialReward `json:"bonus_item,omitempty"`
}
