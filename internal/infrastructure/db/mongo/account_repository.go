package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ppk205/comicreader/internal/core/domain"
)

const accountCollection = "gateway_accounts"

// MongoAccountRepository persists the gateway's own user records. This
// replaces the original in-memory mock storage with real database calls.
type MongoAccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *MongoAccountRepository {
	return &MongoAccountRepository{coll: db.Collection(accountCollection)}
}

type mongoAccount struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	PasswordHash   string             `bson:"password_hash"`
	Email          string             `bson:"email"`
	DisplayName    string             `bson:"display_name"`
	Role           string             `bson:"role"`
	Bio            string             `bson:"bio,omitempty"`
	SeriesCount    int                `bson:"series_count"`
	FollowersCount int                `bson:"followers_count"`
	ViewerCount    int                `bson:"viewer_count"`
	AvatarURL      string             `bson:"avatar_url,omitempty"`
	SocialLinks    map[string]string  `bson:"social_links,omitempty"`
	QuickNote      *domain.QuickNote  `bson:"quick_note,omitempty"`
}

func toDomain(ma mongoAccount) *domain.Account {
	return &domain.Account{
		ID:             ma.ID.Hex(),
		Username:       ma.Username,
		PasswordHash:   ma.PasswordHash,
		Email:          ma.Email,
		DisplayName:    ma.DisplayName,
		Role:           ma.Role,
		Bio:            ma.Bio,
		SeriesCount:    ma.SeriesCount,
		FollowersCount: ma.FollowersCount,
		ViewerCount:    ma.ViewerCount,
		AvatarURL:      ma.AvatarURL,
		SocialLinks:    ma.SocialLinks,
		QuickNote:      ma.QuickNote,
	}
}

func fromDomain(a *domain.Account) mongoAccount {
	return mongoAccount{
		Username:       a.Username,
		PasswordHash:   a.PasswordHash,
		Email:          a.Email,
		DisplayName:    a.DisplayName,
		Role:           a.Role,
		Bio:            a.Bio,
		SeriesCount:    a.SeriesCount,
		FollowersCount: a.FollowersCount,
		ViewerCount:    a.ViewerCount,
		AvatarURL:      a.AvatarURL,
		SocialLinks:    a.SocialLinks,
		QuickNote:      a.QuickNote,
	}
}

func (r *MongoAccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	res, err := r.coll.InsertOne(ctx, fromDomain(account))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *account
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoAccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var ma mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return toDomain(ma), nil
}

func (r *MongoAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	var ma mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return toDomain(ma), nil
}

func (r *MongoAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	oid, err := primitive.ObjectIDFromHex(account.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": fromDomain(account)})
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoAccountRepository) AdjustFollowers(ctx context.Context, id string, delta int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$inc": bson.M{"followers_count": delta}})
	if err != nil {
		return fmt.Errorf("adjust followers: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
