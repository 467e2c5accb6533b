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

type taskDoc struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	ProjectID   primitive.ObjectID  `bson:"projectId"`
	Title       string              `bson:"title"`
	Description string              `bson:"description"`
	Status      string              `bson:"status"`
	Priority    string              `bson:"priority"`
	StartDate   *time.Time          `bson:"startDate"`
	EndDate     *time.Time          `bson:"endDate"`
	AssignedTo  *primitive.ObjectID `bson:"assignedTo,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt"`
}

func (d taskDoc) entity() entity.Task {
	t := entity.Task{
		ID:          d.ID.Hex(),
		ProjectID:   d.ProjectID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Status:      entity.TaskStatus(d.Status),
		Priority:    entity.TaskPriority(d.Priority),
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.AssignedTo != nil {
		t.AssignedTo = d.AssignedTo.Hex()
	}
	return t
}

func taskDocFrom(t *entity.Task) (taskDoc, error) {
	pid, err := objectID(t.ProjectID)
	if err != nil {
		return taskDoc{}, err
	}
	d := taskDoc{
		ProjectID:   pid,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.AssignedTo != "" {
		aid, err := objectID(t.AssignedTo)
		if err != nil {
			return taskDoc{}, err
		}
		d.AssignedTo = &aid
	}
	return d, nil
}

type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(tasksCollection)}
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	ts := now()
	t.CreatedAt, t.UpdatedAt = ts, ts
	d, err := taskDocFrom(t)
	if err != nil {
		return err
	}
	d.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return translate(err)
	}
	t.ID = d.ID.Hex()
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var d taskDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, translate(err)
	}
	t := d.entity()
	return &t, nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]entity.Task, error) {
	pid, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return []entity.Task{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"projectId": pid}, opts)
	if err != nil {
		return nil, err
	}
	var docs []taskDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entity.Task, len(docs))
	for i, d := range docs {
		out[i] = d.entity()
	}
	return out, nil
}

func (r *TaskRepository) StatusesByProjects(ctx context.Context, projectIDs []string) (map[string][]entity.TaskStatus, error) {
	out := make(map[string][]entity.TaskStatus, len(projectIDs))
	oids := make([]primitive.ObjectID, 0, len(projectIDs))
	for _, id := range projectIDs {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return out, nil
	}
	opts := options.Find().SetProjection(bson.M{"projectId": 1, "status": 1})
	cur, err := r.coll.Find(ctx, bson.M{"projectId": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()
	for cur.Next(ctx) {
		var row struct {
			ProjectID primitive.ObjectID `bson:"projectId"`
			Status    string             `bson:"status"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		key := row.ProjectID.Hex()
		out[key] = append(out[key], entity.TaskStatus(row.Status))
	}
	return out, cur.Err()
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	oid, err := objectID(t.ID)
	if err != nil {
		return err
	}
	t.UpdatedAt = now()
	d, err := taskDocFrom(t)
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

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
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

func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	pid, err := objectID(projectID)
	if err != nil {
		return 0, nil
	}
	res, err := r.coll.DeleteMany(ctx, bson.M{"projectId": pid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

var _ repo.TaskRepository = (*TaskRepository)(nil)
