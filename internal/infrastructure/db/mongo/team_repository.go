package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

const collectionTeams = "teams"

type TeamRepository struct {
	col *mongo.Collection
}

func NewTeamRepository(db *mongo.Database) *TeamRepository {
	return &TeamRepository{col: db.Collection(collectionTeams)}
}

type mongoMember struct {
	User primitive.ObjectID `bson:"user"`
	Role string             `bson:"role"`
}

type mongoTeam struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Members   []mongoMember      `bson:"members"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (mt mongoTeam) toDomain() *domain.Team {
	t := &domain.Team{
		ID:        mt.ID.Hex(),
		Name:      mt.Name,
		Members:   make([]domain.TeamMember, len(mt.Members)),
		CreatedAt: mt.CreatedAt.UTC(),
	}
	for i, m := range mt.Members {
		t.Members[i] = domain.TeamMember{UserID: m.User.Hex(), Role: m.Role}
	}
	return t
}

func (r *TeamRepository) Create(ctx context.Context, t *domain.Team) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTeam{
		ID:        primitive.NewObjectID(),
		Name:      t.Name,
		Members:   make([]mongoMember, 0, len(t.Members)),
		CreatedAt: storedTime(t.CreatedAt),
	}
	for _, m := range t.Members {
		if uid, ok := objectID(m.UserID); ok {
			doc.Members = append(doc.Members, mongoMember{User: uid, Role: m.Role})
		}
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert team: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id string) (*domain.Team, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrTeamNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoTeam
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("find team: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TeamRepository) List(ctx context.Context) ([]*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find teams: %w", err)
	}
	var docs []mongoTeam
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode teams: %w", err)
	}

	out := make([]*domain.Team, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

// Update sets the name only; members change through AddMember and RemoveMember.
func (r *TeamRepository) Update(ctx context.Context, t *domain.Team) error {
	oid, ok := objectID(t.ID)
	if !ok {
		return domain.ErrTeamNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"name": t.Name}})
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrTeamNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}

// AddMember pushes the member only when no entry for the user exists, so two
// concurrent adds of the same user cannot both succeed.
func (r *TeamRepository) AddMember(ctx context.Context, teamID string, member domain.TeamMember) (*domain.Team, error) {
	oid, ok := objectID(teamID)
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	uid, ok := objectID(member.UserID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "members.user": bson.M{"$ne": uid}}
	update := bson.M{"$push": bson.M{"members": mongoMember{User: uid, Role: member.Role}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoTeam
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("add team member: %w", err)
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("count team: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrTeamNotFound
	}
	return nil, domain.ErrAlreadyMember
}

// RemoveMember pulls every entry for the user. A user id that cannot be
// parsed matches no member and leaves the team unchanged.
func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID string) (*domain.Team, error) {
	oid, ok := objectID(teamID)
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	uid, ok := objectID(userID)
	if !ok {
		return r.FindByID(ctx, teamID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$pull": bson.M{"members": bson.M{"user": uid}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoTeam
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("remove team member: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TeamRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "members.user", Value: 1}}})
	return err
}
