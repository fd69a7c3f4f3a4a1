package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"personnel-api/internal/domain"
)

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	Surname      string             `bson:"surname"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	PhoneNumber  string             `bson:"phoneNumber,omitempty"`
	BirthDate    string             `bson:"birthDate,omitempty"`
	Contract     *domain.Contract   `bson:"contract,omitempty"`
	Notes        string             `bson:"notes,omitempty"`
	IsAdmin      bool               `bson:"isAdmin"`
	IsActivated  bool               `bson:"isActivated"`
	LastUpdated  time.Time          `bson:"lastUpdated"`
}

func toDoc(u *domain.User) (userDoc, error) {
	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return userDoc{}, domain.ErrInvalidID
	}
	return userDoc{
		ID:           oid,
		Name:         u.Name,
		Surname:      u.Surname,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		PhoneNumber:  u.PhoneNumber,
		BirthDate:    u.BirthDate,
		Contract:     u.Contract,
		Notes:        u.Notes,
		IsAdmin:      u.IsAdmin,
		IsActivated:  u.IsActivated,
		LastUpdated:  u.LastUpdated,
	}, nil
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Surname:      d.Surname,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		PhoneNumber:  d.PhoneNumber,
		BirthDate:    d.BirthDate,
		Contract:     d.Contract,
		Notes:        d.Notes,
		IsAdmin:      d.IsAdmin,
		IsActivated:  d.IsActivated,
		LastUpdated:  d.LastUpdated.UTC(),
	}
}

type MongoUserRepo struct {
	coll *mongo.Collection
	log  *zap.Logger
}

var _ domain.UserRepository = (*MongoUserRepo)(nil)

func NewMongoUserRepo(db *mongo.Database, log *zap.Logger) *MongoUserRepo {
	return &MongoUserRepo{coll: db.Collection("users"), log: log}
}

// EnsureIndexes email 唯一索引，并发创建同 email 时只有一个能成功
func (r *MongoUserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoUserRepo) Create(ctx context.Context, u *domain.User) error {
	u.ID = domain.NewID()
	u.LastUpdated = domain.NextStamp(u.LastUpdated)
	doc, err := toDoc(u)
	if err != nil {
		return err
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		r.log.Error("mongo insert user", zap.Error(err))
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *MongoUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return r.findOne(ctx, bson.M{"_id": oid}, domain.ErrNotFound)
}

func (r *MongoUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, nil)
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M, notFound error) (*domain.User, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	u := doc.toDomain()
	return &u, nil
}

func (r *MongoUserRepo) List(ctx context.Context) ([]domain.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	out := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *MongoUserRepo) Update(ctx context.Context, u *domain.User) error {
	u.LastUpdated = domain.NextStamp(u.LastUpdated)
	doc, err := toDoc(u)
	if err != nil {
		return err
	}
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		r.log.Error("mongo replace user", zap.String("id", u.ID), zap.Error(err))
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoUserRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
