package adapters

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	authusecase "around_backend/internal/feature/auth/usecase"
	"around_backend/internal/feature/users/domain"
	"around_backend/internal/feature/users/domain/entity"
	"around_backend/internal/feature/users/usecase"
)

// UsersCollection is the collection holding user documents.
const UsersCollection = "users"

// UserDocument is the stored form of a user.
type UserDocument struct {
	ID       bson.ObjectID `bson:"_id"`
	Name     string        `bson:"name"`
	About    string        `bson:"about"`
	Avatar   string        `bson:"avatar"`
	Email    string        `bson:"email"`
	Password string        `bson:"password,omitempty"`
}

// ToEntity converts the document to a domain user.
func (d *UserDocument) ToEntity() entity.User {
	return entity.User{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		About:    d.About,
		Avatar:   d.Avatar,
		Email:    d.Email,
		Password: d.Password,
	}
}

// PublicProjection hides the password hash.
var PublicProjection = bson.D{{Key: "password", Value: 0}}

// userMongo implements the user repositories on MongoDB.
type userMongo struct {
	coll *mongo.Collection
}

var (
	_ usecase.UserRepository     = (*userMongo)(nil)
	_ authusecase.UserRepository = (*userMongo)(nil)
)

// NewUserMongo creates a new userMongo on the given database.
func NewUserMongo(database *mongo.Database) *userMongo {
	return &userMongo{coll: database.Collection(UsersCollection)}
}

// EnsureIndexes creates the unique email index.
func (r *userMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}
	return nil
}

// Create inserts the user and sets its id.
func (r *userMongo) Create(ctx context.Context, u *entity.User) error {
	doc := UserDocument{
		ID:       bson.NewObjectID(),
		Name:     u.Name,
		About:    u.About,
		Avatar:   u.Avatar,
		Email:    u.Email,
		Password: u.Password,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = doc.ID.Hex()
	return nil
}

// FindByEmail returns the user including the password hash.
func (r *userMongo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}}, options.FindOne())
}

// FindByID returns the user without the password hash.
func (r *userMongo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidUserID
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}}, options.FindOne().SetProjection(PublicProjection))
}

// List returns all users in insertion order.
func (r *userMongo) List(ctx context.Context) ([]entity.User, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().
		SetProjection(PublicProjection).
		SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var docs []UserDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	out := make([]entity.User, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].ToEntity())
	}
	return out, nil
}

// UpdateProfile sets name and about and returns the updated user.
func (r *userMongo) UpdateProfile(ctx context.Context, id, name, about string) (*entity.User, error) {
	return r.update(ctx, id, bson.D{{Key: "name", Value: name}, {Key: "about", Value: about}})
}

// UpdateAvatar sets the avatar and returns the updated user.
func (r *userMongo) UpdateAvatar(ctx context.Context, id, avatar string) (*entity.User, error) {
	return r.update(ctx, id, bson.D{{Key: "avatar", Value: avatar}})
}

func (r *userMongo) update(ctx context.Context, id string, set bson.D) (*entity.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidUserID
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(PublicProjection)

	var doc UserDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	u := doc.ToEntity()
	return &u, nil
}

func (r *userMongo) findOne(ctx context.Context, filter bson.D, opts *options.FindOneOptionsBuilder) (*entity.User, error) {
	var doc UserDocument
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u := doc.ToEntity()
	return &u, nil
}
