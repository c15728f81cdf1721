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

const collectionProjects = "projects"

type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects)}
}

type mongoProject struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Status      string             `bson:"status"`
	Priority    string             `bson:"priority"`
	StartDate   time.Time          `bson:"startDate"`
	EndDate     *time.Time         `bson:"endDate,omitempty"`
	TeamMembers []string           `bson:"teamMembers"`
	CreatedBy   primitive.ObjectID `bson:"createdBy"`
}

func toMongoProject(p *domain.Project) mongoProject {
	oid, _ := objectID(p.ID)
	createdBy, _ := objectID(p.CreatedBy)
	doc := mongoProject{
		ID:          oid,
		Title:       p.Title,
		Description: p.Description,
		Status:      string(p.Status),
		Priority:    string(p.Priority),
		StartDate:   storedTime(p.StartDate),
		TeamMembers: p.TeamMembers,
		CreatedBy:   createdBy,
	}
	if doc.TeamMembers == nil {
		doc.TeamMembers = []string{}
	}
	if p.EndDate != nil {
		end := storedTime(*p.EndDate)
		doc.EndDate = &end
	}
	return doc
}

func (mp mongoProject) toDomain() *domain.Project {
	p := &domain.Project{
		ID:          mp.ID.Hex(),
		Title:       mp.Title,
		Description: mp.Description,
		Status:      domain.ProjectStatus(mp.Status),
		Priority:    domain.Priority(mp.Priority),
		StartDate:   mp.StartDate.UTC(),
		TeamMembers: mp.TeamMembers,
		CreatedBy:   mp.CreatedBy.Hex(),
	}
	if p.TeamMembers == nil {
		p.TeamMembers = []string{}
	}
	if mp.EndDate != nil {
		end := mp.EndDate.UTC()
		p.EndDate = &end
	}
	return p
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoProject(p)
	doc.ID = primitive.NewObjectID()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoProject
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find projects: %w", err)
	}
	var docs []mongoProject
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	out := make([]*domain.Project, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

// Update replaces the whole document; concurrent writers race with last write wins.
func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	oid, ok := objectID(p.ID)
	if !ok {
		return domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, toMongoProject(p))
	if err != nil {
		return fmt.Errorf("replace project: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// AddMember pushes userID only when it is not already listed, in one write.
func (r *ProjectRepository) AddMember(ctx context.Context, projectID, userID string) (*domain.Project, error) {
	oid, ok := objectID(projectID)
	if !ok {
		return nil, domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "teamMembers": bson.M{"$ne": userID}}
	update := bson.M{"$push": bson.M{"teamMembers": userID}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoProject
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("add project member: %w", err)
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("count project: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrProjectNotFound
	}
	return nil, domain.ErrAlreadyMember
}

func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID string) (*domain.Project, error) {
	oid, ok := objectID(projectID)
	if !ok {
		return nil, domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$pull": bson.M{"teamMembers": userID}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoProject
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("remove project member: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "createdBy", Value: 1}}})
	return err
}
