package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"dailyrewards/internal/adapter/api/middleware"
	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/usecase"
)

type ProfileSyncer interface {
	SyncProfile(ctx context.Context, userID string, input usecase.SyncProfileInput) (*entity.User, error)
	GetUserProfile(ctx context.Context, userID string) (*entity.User, error)
}

type DailyLoginService interface {
	ProcessLogin(ctx context.Context, userID string) (*usecase.LoginResult, error)
	GetLoginStatus(ctx context.Context, userID string) (*usecase.LoginStatus, error)
}

type RouletteService interface {
	Rewards() []entity.RewardDefinition
	Spin(ctx context.Context, userID string) (*usecase.RouletteResult, error)
	Status(ctx context.Context, userID string) (*usecase.RouletteStatus, error)
}

type MiniGameService interface {
	Start() usecase.MiniGameSession
	Submit(ctx context.Context, userID string, reactionTimes []int) (*usecase.MiniGameResult, error)
	Status(ctx context.Context, userID string) (*usecase.MiniGameStatus, error)
}

type LevelService interface {
	GetLevel(ctx context.Context, userID string) (*usecase.LevelOverview, error)
}

type InventoryService interface {
	List(ctx context.Context, userID string, filter entity.InventoryFilter, page, pageSize int) ([]entity.InventoryItem, int64, error)
	Stats(ctx context.Context, userID string) (*entity.InventoryStats, error)
	UseItem(ctx context.Context, userID, itemID string) (*entity.InventoryItem, error)
	DeleteItem(ctx context.Context, userID, itemID string) error
}

type RankingService interface {
	Get(ctx context.Context, rankingType entity.RankingType, limit int) ([]entity.RankingEntry, error)
}

// Compile-time checks against the concrete usecases.
var (
	_ ProfileSyncer     = (*usecase.UserUseCase)(nil)
	_ DailyLoginService = (*usecase.DailyLoginUseCase)(nil)
	_ RouletteService   = (*usecase.RouletteUseCase)(nil)
	_ MiniGameService   = (*usecase.MiniGameUseCase)(nil)
	_ LevelService      = (*usecase.ExperienceService)(nil)
	_ InventoryService  = (*usecase.InventoryUseCase)(nil)
	_ RankingService    = (*usecase.RankingUseCase)(nil)
)

type Dependencies struct {
	Users        ProfileSyncer
	DailyLogin   DailyLoginService
	Roulette     RouletteService
	MiniGame     MiniGameService
	Levels       LevelService
	Achievements usecase.AchievementUseCase
	Inventory    InventoryService
	Rankings     RankingService
	WebSocket    *WebSocketHandler
	Storage      string
}

var (
	healthHandler      *HealthHandler
	userHandler        *UserHandler
	loginHandler       *LoginHandler
	rouletteHandler    *RouletteHandler
	miniGameHandler    *MiniGameHandler
	levelHandler       *LevelHandler
	achievementHandler *AchievementHandler
	inventoryHandler   *InventoryHandler
	rankingHandler     *RankingHandler
	websocketHandler   *WebSocketHandler
)

func Setup(deps Dependencies) {
	healthHandler = NewHealthHandler(deps.Storage)
	userHandler = NewUserHandler(deps.Users)
	loginHandler = NewLoginHandler(deps.Users, deps.DailyLogin)
	rouletteHandler = NewRouletteHandler(deps.Roulette)
	miniGameHandler = NewMiniGameHandler(deps.MiniGame)
	levelHandler = NewLevelHandler(deps.Levels)
	achievementHandler = NewAchievementHandler(deps.Achievements)
	inventoryHandler = NewInventoryHandler(deps.Inventory)
	rankingHandler = NewRankingHandler(deps.Rankings)
	websocketHandler = deps.WebSocket
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetLoginHandler() *LoginHandler {
	return loginHandler
}

func GetRouletteHandler() *RouletteHandler {
	return rouletteHandler
}

func GetMiniGameHandler() *MiniGameHandler {
	return miniGameHandler
}

func GetLevelHandler() *LevelHandler {
	return levelHandler
}

func GetAchievementHandler() *AchievementHandler {
	return achievementHandler
}

func GetInventoryHandler() *InventoryHandler {
	return inventoryHandler
}

func GetRankingHandler() *RankingHandler {
	return rankingHandler
}

func GetWebSocketHandler() *WebSocketHandler {
	return websocketHandler
}

func currentUser(c echo.Context) string {
	uid, _ := c.Get(middleware.ContextUID).(string)
	return uid
}

func contextString(c echo.Context, key string) string {
	v, _ := c.Get(key).(string)
	return v
}
