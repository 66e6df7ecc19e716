package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
)

type firestoreAchievementRepository struct {
	client *firestore.Client
}

func NewFirestoreAchievementRepository(client *firestore.Client) repository.AchievementRepository {
	return &firestoreAchievementRepository{
		client: client,
	}
}

func (r *firestoreAchievementRepository) ListActive(ctx context.Context) ([]entity.AchievementDefinition, error) {
	iter := r.client.Collection(achievementsCollection).Where("isActive", "==", true).Documents(ctx)
	defer iter.Stop()

	var defs []entity.AchievementDefinition
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, translate(err, "list achievements")
		}

		var def entity.AchievementDefinition
		if err := doc.DataTo(&def); err != nil {
			return nil, err
		}
		def.ID = doc.Ref.ID
		defs = append(defs, def)
	}

	return defs, nil
}

func (r *firestoreAchievementRepository) SaveDefinitions(ctx context.Context, defs []entity.AchievementDefinition) error {
	col := r.client.Collection(achievementsCollection)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for i := range defs {
			if err := tx.Set(col.Doc(defs[i].ID), defs[i]); err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err, "save achievements")
}

func (r *firestoreAchievementRepository) ListUnlocked(ctx context.Context, userID string) ([]entity.UserAchievement, error) {
	iter := r.client.Collection(userAchievementsCollection).Where("userId", "==", userID).Documents(ctx)
	defer iter.Stop()

	var unlocked []entity.UserAchievement
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, translate(err, "list user achievements")
		}

		var ua entity.UserAchievement
		if err := doc.DataTo(&ua); err != nil {
			return nil, err
		}
		unlocked = append(unlocked, ua)
	}

	return unlocked, nil
}

// Unlock uses Create so that a concurrent unlock of the same achievement
// fails with AlreadyExists instead of overwriting the first one.
func (r *firestoreAchievementRepository) Unlock(ctx context.Context, unlocks []entity.UserAchievement) ([]string, error) {
	col := r.client.Collection(userAchievementsCollection)

	var inserted []string
	for _, ua := range unlocks {
		_, err := col.Doc(ua.UserID+"_"+ua.AchievementID).Create(ctx, ua)
		if status.Code(err) == codes.AlreadyExists {
			continue
		}
		if err != nil {
			return inserted, translate(err, "unlock achievement")
		}
		inserted = append(inserted, ua.AchievementID)
	}

	return inserted, nil
}
