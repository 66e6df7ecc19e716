package entity

type RankingType string

const (
	RankingLevel         RankingType = "level"
	RankingLoginStreak   RankingType = "login_streak"
	RankingMiniGameScore RankingType = "mini_game_score"
)

var RankingTypes = []RankingType{RankingLevel, RankingLoginStreak, RankingMiniGameScore}

func (t RankingType) Valid() bool {
	switch t {
	case RankingLevel, RankingLoginStreak, RankingMiniGameScore:
		return true
	}
	return false
}

type RankingEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Value       int    `json:"value"`
	// Secondary breaks ties, e.g. total exp on the level ranking.
	Secondary int `json:"secondary,omitempty"`
}
