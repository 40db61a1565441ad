package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mtcleaning/account-service/internal/core/domain"
	"github.com/mtcleaning/account-service/internal/core/ports"
)

const auditCollection = "account_audit"

// AuditRepository implements ports.AuditRepository on MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEntry struct {
	ID        string    `bson:"_id"`
	Operation string    `bson:"operation"`
	Outcome   string    `bson:"outcome"`
	CallerID  string    `bson:"caller_id,omitempty"`
	TargetID  string    `bson:"target_id,omitempty"`
	Email     string    `bson:"email,omitempty"`
	Message   string    `bson:"message,omitempty"`
	RequestID string    `bson:"request_id,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

// Insert stores one audit entry.
func (r *AuditRepository) Insert(ctx context.Context, e *domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAuditEntry{
		ID:        e.ID,
		Operation: string(e.Operation),
		Outcome:   string(e.Outcome),
		CallerID:  e.CallerID,
		TargetID:  e.TargetID,
		Email:     e.Email,
		Message:   e.Message,
		RequestID: e.RequestID,
		CreatedAt: e.CreatedAt.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// List returns entries newest first, optionally filtered by outcome.
func (r *AuditRepository) List(ctx context.Context, f ports.AuditFilter) ([]*domain.AuditEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, auditQuery(f), auditFindOptions(f))
	if err != nil {
		return nil, fmt.Errorf("find audit entries: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoAuditEntry
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode audit entries: %w", err)
	}

	out := make([]*domain.AuditEntry, len(docs))
	for i, d := range docs {
		out[i] = &domain.AuditEntry{
			ID:        d.ID,
			Operation: domain.Operation(d.Operation),
			Outcome:   domain.Outcome(d.Outcome),
			CallerID:  d.CallerID,
			TargetID:  d.TargetID,
			Email:     d.Email,
			Message:   d.Message,
			RequestID: d.RequestID,
			CreatedAt: d.CreatedAt.UTC(),
		}
	}
	return out, nil
}

// EnsureIndexes creates the indexes used by List.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "outcome", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "target_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func auditQuery(f ports.AuditFilter) bson.M {
	filter := bson.M{}
	if f.Outcome != "" {
		filter["outcome"] = string(f.Outcome)
	}
	return filter
}

func auditFindOptions(f ports.AuditFilter) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	return opts
}
