package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, translate(err, "get user")
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

func (r *firestoreUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	users := make(map[string]*entity.User, len(ids))
	refs := uniqueRefs(r.client.Collection(usersCollection), ids)
	if len(refs) == 0 {
		return users, nil
	}

	docs, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, translate(err, "get users")
	}

	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			return nil, err
		}
		user.ID = doc.Ref.ID
		users[user.ID] = &user
	}

	return users, nil
}

func (r *firestoreUserRepository) Upsert(ctx context.Context, user *entity.User) error {
	updateData := map[string]interface{}{
		"id":        user.ID,
		"createdAt": user.CreatedAt,
		"updatedAt": user.UpdatedAt,
	}
	// Empty strings never overwrite stored profile fields.
	if user.Email != "" {
		updateData["email"] = user.Email
	}
	if user.DisplayName != "" {
		updateData["displayName"] = user.DisplayName
	}
	if user.AvatarURL != "" {
		updateData["avatarURL"] = user.AvatarURL
	}

	_, err := r.client.Collection(usersCollection).Doc(user.ID).Set(ctx, updateData, firestore.MergeAll)
	return translate(err, "upsert user")
}
