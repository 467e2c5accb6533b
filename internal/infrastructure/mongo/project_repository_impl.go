package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/planify/internal/domain/entity"
	repo "github.com/oksasatya/planify/internal/domain/repository"
)

type projectDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Owner       primitive.ObjectID `bson:"owner"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	StartDate   *time.Time         `bson:"startDate"`
	EndDate     *time.Time         `bson:"endDate"`
	TechStack   []string           `bson:"techStack"`
	Pinned      bool               `bson:"pinned"`
	EmailAlerts bool               `bson:"emailAlerts"`
	Notes       string             `bson:"notes"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d projectDoc) entity() entity.Project {
	stack := d.TechStack
	if stack == nil {
		stack = []string{}
	}
	return entity.Project{
		ID:          d.ID.Hex(),
		Owner:       d.Owner.Hex(),
		Title:       d.Title,
		Description: d.Description,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		TechStack:   stack,
		Pinned:      d.Pinned,
		EmailAlerts: d.EmailAlerts,
		Notes:       d.Notes,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func projectDocFrom(p *entity.Project) (projectDoc, error) {
	owner, err := objectID(p.Owner)
	if err != nil {
		return projectDoc{}, err
	}
	stack := p.TechStack
	if stack == nil {
		stack = []string{}
	}
	return projectDoc{
		Owner:       owner,
		Title:       p.Title,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		TechStack:   stack,
		Pinned:      p.Pinned,
		EmailAlerts: p.EmailAlerts,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

type ProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(projectsCollection)}
}

func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	ts := now()
	p.CreatedAt, p.UpdatedAt = ts, ts
	d, err := projectDocFrom(p)
	if err != nil {
		return err
	}
	d.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return translate(err)
	}
	p.ID = d.ID.Hex()
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var d projectDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, translate(err)
	}
	p := d.entity()
	return &p, nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Project, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return []entity.Project{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "pinned", Value: -1}, {Key: "updatedAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, err
	}
	var docs []projectDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entity.Project, len(docs))
	for i, d := range docs {
		out[i] = d.entity()
	}
	return out, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	oid, err := objectID(p.ID)
	if err != nil {
		return err
	}
	p.UpdatedAt = now()
	d, err := projectDocFrom(p)
	if err != nil {
		return err
	}
	d.ID = oid
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, d)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

var _ repo.ProjectRepository = (*ProjectRepository)(nil)
