package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
)

type firestoreLoginStreakRepository struct {
	client *firestore.Client
}

func NewFirestoreLoginStreakRepository(client *firestore.Client) repository.LoginStreakRepository {
	return &firestoreLoginStreakRepository{
		client: client,
	}
}

func (r *firestoreLoginStreakRepository) GetByUserID(ctx context.Context, userID string) (*entity.LoginStreak, error) {
	doc, err := r.client.Collection(loginStreaksCollection).Doc(userID).Get(ctx)
	if err != nil {
		return nil, translate(err, "get login streak")
	}

	var streak entity.LoginStreak
	if err := doc.DataTo(&streak); err != nil {
		return nil, err
	}

	return &streak, nil
}

// Update runs mutate inside a transaction. Firestore retries on contention,
// so the callback sees the latest committed record each time.
func (r *firestoreLoginStreakRepository) Update(ctx context.Context, userID string, mutate repository.StreakMutator) (*entity.LoginStreak, error) {
	docRef := r.client.Collection(loginStreaksCollection).Doc(userID)

	var updated *entity.LoginStreak
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var current *entity.LoginStreak

		doc, err := tx.Get(docRef)
		switch {
		case err == nil:
			var streak entity.LoginStreak
			if err := doc.DataTo(&streak); err != nil {
				return err
			}
			current = &streak
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
		return nil, translate(err, "update login streak")
	}

	return updated, nil
}

func (r *firestoreLoginStreakRepository) TopByCurrentStreak(ctx context.Context, limit int) ([]entity.LoginStreak, error) {
	iter := r.client.Collection(loginStreaksCollection).
		OrderBy("currentStreak", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var streaks []entity.LoginStreak
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, translate(err, "list login streaks")
		}

		var streak entity.LoginStreak
		if err := doc.DataTo(&streak); err != nil {
			return nil, err
		}
		streaks = append(streaks, streak)
	}

	return streaks, nil
}
