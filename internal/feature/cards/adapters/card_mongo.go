package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"around_backend/internal/feature/cards/domain"
	"around_backend/internal/feature/cards/domain/entity"
	"around_backend/internal/feature/cards/usecase"
	useradapters "around_backend/internal/feature/users/adapters"
	usersdomain "around_backend/internal/feature/users/domain"
	userentity "around_backend/internal/feature/users/domain/entity"
)

// CardsCollection is the collection holding card documents.
const CardsCollection = "cards"

// CardDocument is the stored form of a card. Owner and likes are user ObjectIDs.
type CardDocument struct {
	ID        bson.ObjectID   `bson:"_id"`
	Name      string          `bson:"name"`
	Link      string          `bson:"link"`
	Owner     bson.ObjectID   `bson:"owner"`
	Likes     []bson.ObjectID `bson:"likes"`
	CreatedAt time.Time       `bson:"createdAt"`
}

// cardMongo implements CardRepository on MongoDB.
type cardMongo struct {
	cards *mongo.Collection
	users *mongo.Collection
}

var _ usecase.CardRepository = (*cardMongo)(nil)

// NewCardMongo creates a new cardMongo on the given database.
func NewCardMongo(database *mongo.Database) *cardMongo {
	return &cardMongo{
		cards: database.Collection(CardsCollection),
		users: database.Collection(useradapters.UsersCollection),
	}
}

// EnsureIndexes creates the creation-order index used by List.
func (r *cardMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.cards.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create cards createdAt index: %w", err)
	}
	return nil
}

// List returns all cards ordered by creation time.
func (r *cardMongo) List(ctx context.Context) ([]entity.Card, error) {
	cur, err := r.cards.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find cards: %w", err)
	}
	var docs []CardDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode cards: %w", err)
	}
	return r.populate(ctx, docs)
}

// Create inserts the card with an empty likes set. The owner must exist.
func (r *cardMongo) Create(ctx context.Context, card *entity.Card) error {
	owner, err := bson.ObjectIDFromHex(card.Owner.ID)
	if err != nil {
		return usersdomain.ErrInvalidUserID
	}
	n, err := r.users.CountDocuments(ctx, bson.D{{Key: "_id", Value: owner}}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("count card owner: %w", err)
	}
	if n == 0 {
		return usersdomain.ErrUserNotFound
	}
	doc := CardDocument{
		ID:        bson.NewObjectID(),
		Name:      card.Name,
		Link:      card.Link,
		Owner:     owner,
		Likes:     []bson.ObjectID{},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := r.cards.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert card: %w", err)
	}
	card.ID = doc.ID.Hex()
	card.CreatedAt = doc.CreatedAt
	return nil
}

// FindByID returns the card with the owner populated.
func (r *cardMongo) FindByID(ctx context.Context, id string) (*entity.Card, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidCardID
	}
	var doc CardDocument
	if err := r.cards.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("find card: %w", err)
	}
	return r.populateOne(ctx, doc)
}

// Delete removes the card document.
func (r *cardMongo) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidCardID
	}
	res, err := r.cards.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

// AddLike adds userID to likes with $addToSet.
func (r *cardMongo) AddLike(ctx context.Context, cardID, userID string) (*entity.Card, error) {
	return r.updateLikes(ctx, cardID, userID, "$addToSet")
}

// RemoveLike removes userID from likes with $pull.
func (r *cardMongo) RemoveLike(ctx context.Context, cardID, userID string) (*entity.Card, error) {
	return r.updateLikes(ctx, cardID, userID, "$pull")
}

func (r *cardMongo) updateLikes(ctx context.Context, cardID, userID, op string) (*entity.Card, error) {
	cid, err := bson.ObjectIDFromHex(cardID)
	if err != nil {
		return nil, domain.ErrInvalidCardID
	}
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, usersdomain.ErrInvalidUserID
	}

	update := bson.D{{Key: op, Value: bson.D{{Key: "likes", Value: uid}}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc CardDocument
	if err := r.cards.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: cid}}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("update card likes: %w", err)
	}
	return r.populateOne(ctx, doc)
}

func (r *cardMongo) populateOne(ctx context.Context, doc CardDocument) (*entity.Card, error) {
	cards, err := r.populate(ctx, []CardDocument{doc})
	if err != nil {
		return nil, err
	}
	return &cards[0], nil
}

// populate loads the public profiles of all owners in one query.
func (r *cardMongo) populate(ctx context.Context, docs []CardDocument) ([]entity.Card, error) {
	out := make([]entity.Card, 0, len(docs))
	if len(docs) == 0 {
		return out, nil
	}

	seen := make(map[bson.ObjectID]struct{}, len(docs))
	ids := make([]bson.ObjectID, 0, len(docs))
	for _, d := range docs {
		if _, ok := seen[d.Owner]; !ok {
			seen[d.Owner] = struct{}{}
			ids = append(ids, d.Owner)
		}
	}

	cur, err := r.users.Find(ctx,
		bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}},
		options.Find().SetProjection(useradapters.PublicProjection))
	if err != nil {
		return nil, fmt.Errorf("find card owners: %w", err)
	}
	var owners []useradapters.UserDocument
	if err := cur.All(ctx, &owners); err != nil {
		return nil, fmt.Errorf("decode card owners: %w", err)
	}
	byID := make(map[bson.ObjectID]userentity.User, len(owners))
	for i := range owners {
		byID[owners[i].ID] = owners[i].ToEntity()
	}

	for _, d := range docs {
		owner, ok := byID[d.Owner]
		if !ok {
			owner = userentity.User{ID: d.Owner.Hex()}
		}
		likes := make([]string, 0, len(d.Likes))
		for _, l := range d.Likes {
			likes = append(likes, l.Hex())
		}
		out = append(out, entity.Card{
			ID:        d.ID.Hex(),
			Name:      d.Name,
			Link:      d.Link,
			Owner:     owner,
			Likes:     likes,
			CreatedAt: d.CreatedAt,
		})
	}
	return out, nil
}
