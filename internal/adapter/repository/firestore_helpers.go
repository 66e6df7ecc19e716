package repository

import (
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/service"
)

// Collection names shared by the Firestore repositories.
const (
	usersCollection            = "users"
	loginStreaksCollection     = "login_streaks"
	userLevelsCollection       = "user_levels"
	dailyActivitiesCollection  = "daily_activities"
	achievementsCollection     = "achievements"
	userAchievementsCollection = "user_achievements"
	rewardItemsCollection      = "reward_items"
	inventoryCollection        = "user_inventory"
)

func isFirestoreNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// translate maps a Firestore NotFound onto the domain sentinel.
func translate(err error, action string) error {
	if err == nil {
		return nil
	}
	if isFirestoreNotFound(err) {
		return entity.ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

func activityDocID(userID string, date time.Time) string {
	return userID + "_" + service.FormatDate(date)
}

func uniqueRefs(col *firestore.CollectionRef, ids []string) []*firestore.DocumentRef {
	seen := make(map[string]bool, len(ids))
	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		refs = append(refs, col.Doc(id))
	}
	return refs
}
