package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
)

type firestoreUserLevelRepository struct {
	client *firestore.Client
}

func NewFirestoreUserLevelRepository(client *firestore.Client) repository.UserLevelRepository {
	return &firestoreUserLevelRepository{
		client: client,
	}
}

func (r *firestoreUserLevelRepository) GetByUserID(ctx context.Context, userID string) (*entity.UserLevel, error) {
	doc, err := r.client.Collection(userLevelsCollection).Doc(userID).Get(ctx)
	if err != nil {
		return nil, translate(err, "get user level")
	}

	var level entity.UserLevel
	if err := doc.DataTo(&level); err != nil {
		return nil, err
	}

	return &level, nil
}

func (r *firestoreUserLevelRepository) Update(ctx context.Context, userID string, mutate repository.LevelMutator) (*entity.UserLevel, error) {
	docRef := r.client.Collection(userLevelsCollection).Doc(userID)

	var updated *entity.UserLevel
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var current *entity.UserLevel

		doc, err := tx.Get(docRef)
		switch {
		case err == nil:
			var level entity.UserLevel
			if err := doc.DataTo(&level); err != nil {
				return err
			}
			current = &level
		case !isFirestoreNotFound(err):
			return err
		}

		next, err := mutate(current)
		if err != nil {
			return err
		}
		next.UserID = userID
		updated = next

		return tx.Set(docRef, next)
	})
	if err != nil {
		return nil, translate(err, "update user level")
	}

	return updated, nil
}

// TopByLevel needs a composite index on (currentLevel desc, totalExp desc).
func (r *firestoreUserLevelRepository) TopByLevel(ctx context.Context, limit int) ([]entity.UserLevel, error) {
	iter := r.client.Collection(userLevelsCollection).
		OrderBy("currentLevel", firestore.Desc).
		OrderBy("totalExp", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var levels []entity.UserLevel
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, translate(err, "list user levels")
		}

		var level entity.UserLevel
		if err := doc.DataTo(&level); err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}

	return levels, nil
}
