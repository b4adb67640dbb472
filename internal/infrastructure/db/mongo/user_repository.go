package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/users-service/internal/core/domain"
)

const usersCollection = "users"

// UserRepository implements ports.UserRepository on the users collection.
// Documents are keyed by the application id field, not by _id.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type userDoc struct {
	ID         string    `bson:"id"`
	FirstName  string    `bson:"first_name"`
	LastName   string    `bson:"last_name"`
	Role       string    `bson:"role"`
	IsActive   bool      `bson:"is_active"`
	CreatedAt  time.Time `bson:"created_at"`
	LastLogin  time.Time `bson:"last_login"`
	HashedPass string    `bson:"hashed_pass"`
}

func (d userDoc) toUser() *domain.User {
	return &domain.User{
		ID:        d.ID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Role:      domain.Role(d.Role),
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt.UTC(),
		LastLogin: d.LastLogin.UTC(),
	}
}

// publicProjection keeps the hash off every generic read path.
var publicProjection = bson.M{"_id": 0, "hashed_pass": 0}

// EnsureIndexes creates the unique index on id.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("id_unique"),
	})
	return err
}

func (r *UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d userDoc
	err := r.coll.FindOne(ctx, bson.M{"id": id}, options.FindOne().SetProjection(publicProjection)).Decode(&d)
	if err != nil {
		return nil, notFoundOr(err, "find user")
	}
	return d.toUser(), nil
}

func (r *UserRepository) GetWithHash(ctx context.Context, id string) (*domain.UserWithHash, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d userDoc
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&d); err != nil {
		return nil, notFoundOr(err, "find user")
	}
	return &domain.UserWithHash{User: *d.toUser(), HashedPass: d.HashedPass}, nil
}

func (r *UserRepository) GetMulti(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(publicProjection).
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, unavailable(err, "list users")
	}
	defer cur.Close(ctx)

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, unavailable(err, "decode users")
	}

	users := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toUser())
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.UserWithHash) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDoc{
		ID:         user.ID,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Role:       string(user.Role),
		IsActive:   user.IsActive,
		CreatedAt:  user.CreatedAt.UTC(),
		LastLogin:  user.LastLogin.UTC(),
		HashedPass: user.HashedPass,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, unavailable(err, "insert user")
	}
	return doc.toUser(), nil
}

// Update applies the non-nil fields of upd and returns the updated user.
func (r *UserRepository) Update(ctx context.Context, id string, upd domain.UserUpdate) (*domain.User, error) {
	if upd.Empty() {
		return r.Get(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(publicProjection)

	var d userDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": setFields(upd)}, opts).Decode(&d)
	if err != nil {
		return nil, notFoundOr(err, "update user")
	}
	return d.toUser(), nil
}

func (r *UserRepository) Remove(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d userDoc
	opts := options.FindOneAndDelete().SetProjection(publicProjection)
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"id": id}, opts).Decode(&d); err != nil {
		return nil, notFoundOr(err, "delete user")
	}
	return d.toUser(), nil
}

func setFields(upd domain.UserUpdate) bson.M {
	set := bson.M{}
	if upd.FirstName != nil {
		set["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		set["last_name"] = *upd.LastName
	}
	if upd.Role != nil {
		set["role"] = string(*upd.Role)
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}
	if upd.HashedPass != nil {
		set["hashed_pass"] = *upd.HashedPass
	}
	if upd.LastLogin != nil {
		set["last_login"] = upd.LastLogin.UTC()
	}
	return set
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrUserNotFound
	}
	return unavailable(err, op)
}

func unavailable(err error, op string) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrRepositoryUnavailable, op, err)
}
