package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
)

type firestoreRewardItemRepository struct {
	client *firestore.Client
}

func NewFirestoreRewardItemRepository(client *firestore.Client) repository.RewardItemRepository {
	return &firestoreRewardItemRepository{
		client: client,
	}
}

func (r *firestoreRewardItemRepository) GetByID(ctx context.Context, id string) (*entity.RewardItem, error) {
	doc, err := r.client.Collection(rewardItemsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, translate(err, "get reward item")
	}

	var item entity.RewardItem
	if err := doc.DataTo(&item); err != nil {
		return nil, err
	}
	item.ID = doc.Ref.ID

	return &item, nil
}

func (r *firestoreRewardItemRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.RewardItem, error) {
	items := make(map[string]*entity.RewardItem, len(ids))
	refs := uniqueRefs(r.client.Collection(rewardItemsCollection), ids)
	if len(refs) == 0 {
		return items, nil
	}

	docs, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, translate(err, "get reward items")
	}

	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var item entity.RewardItem
		if err := doc.DataTo(&item); err != nil {
			return nil, err
		}
		item.ID = doc.Ref.ID
		items[item.ID] = &item
	}

	return items, nil
}

func (r *firestoreRewardItemRepository) ListActive(ctx context.Context) ([]entity.RewardItem, error) {
	iter := r.client.Collection(rewardItemsCollection).Where("isActive", "==", true).Documents(ctx)
	defer iter.Stop()

	var items []entity.RewardItem
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, translate(err, "list reward items")
		}

		var item entity.RewardItem
		if err := doc.DataTo(&item); err != nil {
			return nil, err
		}
		item.ID = doc.Ref.ID
		items = append(items, item)
	}

	return items, nil
}

func (r *firestoreRewardItemRepository) SaveAll(ctx context.Context, items []entity.RewardItem) error {
	col := r.client.Collection(rewardItemsCollection)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for i := range items {
			if err := tx.Set(col.Doc(items[i].ID), items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err, "save reward items")
}
