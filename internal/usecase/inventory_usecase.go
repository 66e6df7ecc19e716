package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
	"dailyrewards/pkg/errors"
	"dailyrewards/pkg/logger"
)

type InventoryUseCase struct {
	inventoryRepo repository.InventoryRepository
	itemRepo      repository.RewardItemRepository
	notifier      Notifier
	clock         Clock
	logger        logger.Logger
}

func NewInventoryUseCase(
	inventoryRepo repository.InventoryRepository,
	itemRepo repository.RewardItemRepository,
	notifier Notifier,
	clock Clock,
	log logger.Logger,
) *InventoryUseCase {
	if clock == nil {
		clock = time.Now
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &InventoryUseCase{
		inventoryRepo: inventoryRepo,
		itemRepo:      itemRepo,
		notifier:      notifier,
		clock:         clock,
		logger:        log,
	}
}

// GrantItem puts one unit of a catalog item into the user's inventory.
func (uc *InventoryUseCase) GrantItem(ctx context.Context, userID, rewardItemID, source string) (*entity.InventoryItem, error) {
	catalogItem, err := uc.itemRepo.GetByID(ctx, rewardItemID)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Reward item", err)
		}
		return nil, errors.Internal("Failed to get reward item", err)
	}

	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		UserID:       userID,
		RewardItemID: rewardItemID,
		Quantity:     1,
		Source:       source,
		AcquiredAt:   uc.clock(),
	}
	if err := uc.inventoryRepo.Add(ctx, item); err != nil {
		return nil, errors.Internal("Failed to add inventory item", err)
	}
	item.Item = catalogItem

	uc.notifier.Notify(ctx, userID, entity.Notification{
		Kind:      entity.NotificationItem,
		Message:   fmt.Sprintf("You received %s", catalogItem.Name),
		Sound:     entity.SoundReward,
		Data:      map[string]interface{}{"item_id": item.ID, "rarity": catalogItem.Rarity, "source": source},
		CreatedAt: item.AcquiredAt,
	})

	return item, nil
}

// List returns one page of the user's inventory, newest first, with catalog
// details joined in.
func (uc *InventoryUseCase) List(ctx context.Context, userID string, filter entity.InventoryFilter, page, pageSize int) ([]entity.InventoryItem, int64, error) {
	items, err := uc.joined(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	filtered := make([]entity.InventoryItem, 0, len(items))
	for _, it := range items {
		if filter.Matches(it) {
			filtered = append(filtered, it)
		}
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	total := int64(len(filtered))
	start := (page - 1) * pageSize
	if start >= len(filtered) {
		return []entity.InventoryItem{}, total, nil
	}
	end := min(start+pageSize, len(filtered))

	return filtered[start:end], total, nil
}

func (uc *InventoryUseCase) Stats(ctx context.Context, userID string) (*entity.InventoryStats, error) {
	items, err := uc.joined(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &entity.InventoryStats{
		ByRarity: make(map[entity.Rarity]int, len(entity.Rarities)),
		ByType:   make(map[entity.ItemType]int, len(entity.ItemTypes)),
	}
	for _, r := range entity.Rarities {
		stats.ByRarity[r] = 0
	}
	for _, t := range entity.ItemTypes {
		stats.ByType[t] = 0
	}

	for _, it := range items {
		stats.TotalItems += it.Quantity
		if it.IsUsed {
			stats.UsedItems += it.Quantity
		}
		if it.Item == nil {
			continue
		}
		stats.ByRarity[it.Item.Rarity] += it.Quantity
		stats.ByType[it.Item.Type] += it.Quantity
	}

	return stats, nil
}

func (uc *InventoryUseCase) UseItem(ctx context.Context, userID, itemID string) (*entity.InventoryItem, error) {
	item, err := uc.owned(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if item.IsUsed {
		return nil, errors.Conflict("Item has already been used")
	}

	now := uc.clock()
	if err := uc.inventoryRepo.MarkUsed(ctx, itemID, now); err != nil {
		if stderrors.Is(err, entity.ErrItemAlreadyUsed) {
			return nil, errors.Conflict("Item has already been used")
		}
		return nil, errors.Internal("Failed to use item", err)
	}

	item.IsUsed = true
	item.UsedAt = &now
	if catalogItem, err := uc.itemRepo.GetByID(ctx, item.RewardItemID); err == nil {
		item.Item = catalogItem
	}

	uc.logger.Info("inventory item used", "userID", userID, "itemID", itemID, "rewardItemID", item.RewardItemID)
	return item, nil
}

func (uc *InventoryUseCase) DeleteItem(ctx context.Context, userID, itemID string) error {
	if _, err := uc.owned(ctx, userID, itemID); err != nil {
		return err
	}
	if err := uc.inventoryRepo.Delete(ctx, itemID); err != nil {
		if isNotFound(err) {
			return errors.NotFound("Inventory item", err)
		}
		return errors.Internal("Failed to delete item", err)
	}
	return nil
}

func (uc *InventoryUseCase) owned(ctx context.Context, userID, itemID string) (*entity.InventoryItem, error) {
	item, err := uc.inventoryRepo.GetByID(ctx, itemID)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Inventory item", err)
		}
		return nil, errors.Internal("Failed to get inventory item", err)
	}
	if item.UserID != userID {
		return nil, errors.Forbidden("You do not own this item", nil)
	}
	return item, nil
}

func (uc *InventoryUseCase) joined(ctx context.Context, userID string) ([]entity.InventoryItem, error) {
	items, err := uc.inventoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to list inventory", err)
	}

	ids := make([]string, 0, len(items))
	seen := make(map[string]bool)
	for _, it := range items {
		if !seen[it.RewardItemID] {
			seen[it.RewardItemID] = true
			ids = append(ids, it.RewardItemID)
		}
	}

	catalog, err := uc.itemRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Internal("Failed to load reward items", err)
	}
	for i := range items {
		items[i].Item = catalog[items[i].RewardItemID]
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].AcquiredAt.After(items[j].AcquiredAt)
	})
	return items, nil
}
