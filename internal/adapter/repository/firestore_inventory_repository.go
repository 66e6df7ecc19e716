package repository

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
)

type firestoreInventoryRepository struct {
	client *firestore.Client
}

func NewFirestoreInventoryRepository(client *firestore.Client) repository.InventoryRepository {
	return &firestoreInventoryRepository{
		client: client,
	}
}

func (r *firestoreInventoryRepository) Add(ctx context.Context, item *entity.InventoryItem) error {
	_, err := r.client.Collection(inventoryCollection).Doc(item.ID).Set(ctx, item)
	return translate(err, "add inventory item")
}

func (r *firestoreInventoryRepository) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	doc, err := r.client.Collection(inventoryCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, translate(err, "get inventory item")
	}

	var item entity.InventoryItem
	if err := doc.DataTo(&item); err != nil {
		return nil, err
	}
	item.ID = doc.Ref.ID

	return &item, nil
}

func (r *firestoreInventoryRepository) ListByUser(ctx context.Context, userID string) ([]entity.InventoryItem, error) {
	iter := r.client.Collection(inventoryCollection).Where("userId", "==", userID).Documents(ctx)
	defer iter.Stop()

	var items []entity.InventoryItem
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, translate(err, "list inventory")
		}

		var item entity.InventoryItem
		if err := doc.DataTo(&item); err != nil {
			return nil, err
		}
		item.ID = doc.Ref.ID
		items = append(items, item)
	}

	return items, nil
}

func (r *firestoreInventoryRepository) MarkUsed(ctx context.Context, id string, usedAt time.Time) error {
	docRef := r.client.Collection(inventoryCollection).Doc(id)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			return err
		}

		var item entity.InventoryItem
		if err := doc.DataTo(&item); err != nil {
			return err
		}
		if item.IsUsed {
			return entity.ErrItemAlreadyUsed
		}

		return tx.Update(docRef, []firestore.Update{
			{Path: "isUsed", Value: true},
			{Path: "usedAt", Value: usedAt},
		})
	})
	if errors.Is(err, entity.ErrItemAlreadyUsed) {
		return err
	}
	return translate(err, "mark inventory item used")
}

func (r *firestoreInventoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(inventoryCollection).Doc(id).Delete(ctx, firestore.Exists)
	return translate(err, "delete inventory item")
}
