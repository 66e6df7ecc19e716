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

// Daily activities are keyed "<userID>_<YYYY-MM-DD>", which makes the
// one-row-per-user-per-day rule a property of the document id.
type firestoreDailyActivityRepository struct {
	client *firestore.Client
}

func NewFirestoreDailyActivityRepository(client *firestore.Client) repository.DailyActivityRepository {
	return &firestoreDailyActivityRepository{
		client: client,
	}
}

func (r *firestoreDailyActivityRepository) Get(ctx context.Context, userID string, date time.Time) (*entity.DailyActivity, error) {
	doc, err := r.client.Collection(dailyActivitiesCollection).Doc(activityDocID(userID, date)).Get(ctx)
	if err != nil {
		return nil, translate(err, "get daily activity")
	}

	var activity entity.DailyActivity
	if err := doc.DataTo(&activity); err != nil {
		return nil, err
	}

	return &activity, nil
}

func (r *firestoreDailyActivityRepository) ListByUser(ctx context.Context, userID string) ([]entity.DailyActivity, error) {
	iter := r.client.Collection(dailyActivitiesCollection).Where("userId", "==", userID).Documents(ctx)
	defer iter.Stop()

	var activities []entity.DailyActivity
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, translate(err, "list daily activities")
		}

		var activity entity.DailyActivity
		if err := doc.DataTo(&activity); err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}

	return activities, nil
}

func (r *firestoreDailyActivityRepository) RecordLogin(ctx context.Context, userID string, date time.Time) error {
	docRef := r.client.Collection(dailyActivitiesCollection).Doc(activityDocID(userID, date))
	_, err := docRef.Set(ctx, map[string]interface{}{
		"userId":       userID,
		"activityDate": date,
		"loginCount":   firestore.Increment(1),
		"updatedAt":    time.Now(),
	}, firestore.MergeAll)
	return translate(err, "record login")
}

func (r *firestoreDailyActivityRepository) CompleteActivity(ctx context.Context, userID string, date time.Time, kind entity.ActivityKind, score int) error {
	docRef := r.client.Collection(dailyActivitiesCollection).Doc(activityDocID(userID, date))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var activity entity.DailyActivity

		doc, err := tx.Get(docRef)
		switch {
		case err == nil:
			if err := doc.DataTo(&activity); err != nil {
				return err
			}
		case !isFirestoreNotFound(err):
			return err
		}

		if activity.Completed(kind) {
			return entity.ErrActivityAlreadyCompleted
		}

		updateData := map[string]interface{}{
			"userId":       userID,
			"activityDate": date,
			"updatedAt":    time.Now(),
		}
		switch kind {
		case entity.ActivityRoulette:
			updateData["rouletteCompleted"] = true
		case entity.ActivityMiniGame:
			updateData["miniGameCompleted"] = true
			updateData["miniGameScore"] = score
		}

		return tx.Set(docRef, updateData, firestore.MergeAll)
	})
	if errors.Is(err, entity.ErrActivityAlreadyCompleted) {
		return err
	}
	return translate(err, "complete daily activity")
}

// TopMiniGameScores walks scores from the top and keeps each user's best day.
func (r *firestoreDailyActivityRepository) TopMiniGameScores(ctx context.Context, limit int) ([]entity.DailyActivity, error) {
	iter := r.client.Collection(dailyActivitiesCollection).
		Where("miniGameCompleted", "==", true).
		OrderBy("miniGameScore", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	seen := make(map[string]bool)
	var activities []entity.DailyActivity
	for len(activities) < limit {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, translate(err, "list mini-game scores")
		}

		var activity entity.DailyActivity
		if err := doc.DataTo(&activity); err != nil {
			return nil, err
		}
		if seen[activity.UserID] {
			continue
		}
		seen[activity.UserID] = true
		activities = append(activities, activity)
	}

	return activities, nil
}
