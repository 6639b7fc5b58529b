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

	"github.com/interviewme/backend/internal/core/domain"
)

type SessionRepository struct {
	col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{col: db.Collection(collectionSessions)}
}

// Create inserts a new session document and sets s.ID. The partial unique
// index on host_id for active sessions reports a second active session as a
// duplicate key.
func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toSessionDoc(s)
	if err != nil {
		return fmt.Errorf("insert session: host id: %w", err)
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if index, ok := duplicateKeyIndex(err); ok && index == indexUniqActiveHost {
			return domain.ErrActiveSessionExists
		}
		return fmt.Errorf("insert session: %w", err)
	}
	s.ID = doc.ID.Hex()
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSessionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// FindByID treats a malformed id like an unknown one.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *SessionRepository) FindByCallID(ctx context.Context, callID string) (*domain.Session, error) {
	return r.findOne(ctx, bson.M{"call_id": callID})
}

func (r *SessionRepository) FindActiveByHost(ctx context.Context, hostID string) (*domain.Session, error) {
	oid, err := primitive.ObjectIDFromHex(hostID)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}
	return r.findOne(ctx, bson.M{"host_id": oid, "status": string(domain.StatusActive)})
}

func (r *SessionRepository) findOne(ctx context.Context, filter bson.M) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc sessionDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return doc.toDomain(), nil
}

// AssignParticipant claims the participant slot in a single conditional
// update, so two concurrent joiners cannot both succeed.
func (r *SessionRepository) AssignParticipant(ctx context.Context, id, participantID string, startedAt time.Time) (*domain.Session, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}
	pid, err := primitive.ObjectIDFromHex(participantID)
	if err != nil {
		return nil, fmt.Errorf("assign participant: participant id: %w", err)
	}

	filter, update := assignParticipantQuery(oid, pid, startedAt)
	return r.conditionalUpdate(ctx, filter, update)
}

// assignParticipantQuery matches only an active session with an empty slot
// that pid does not host.
func assignParticipantQuery(oid, pid primitive.ObjectID, startedAt time.Time) (filter, update bson.M) {
	filter = bson.M{
		"_id":            oid,
		"status":         string(domain.StatusActive),
		"participant_id": nil,
		"host_id":        bson.M{"$ne": pid},
	}
	update = bson.M{"$set": bson.M{
		"participant_id": pid,
		"started_at":     startedAt,
		"updated_at":     startedAt,
	}}
	return filter, update
}

// Complete moves an active session to completed.
func (r *SessionRepository) Complete(ctx context.Context, id string, endedAt time.Time, duration *int) (*domain.Session, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	filter, update := completeQuery(oid, endedAt, duration)
	return r.conditionalUpdate(ctx, filter, update)
}

func completeQuery(oid primitive.ObjectID, endedAt time.Time, duration *int) (filter, update bson.M) {
	set := bson.M{
		"status":     string(domain.StatusCompleted),
		"ended_at":   endedAt,
		"updated_at": endedAt,
	}
	if duration != nil {
		set["duration"] = *duration
	}
	return bson.M{"_id": oid, "status": string(domain.StatusActive)}, bson.M{"$set": set}
}

func (r *SessionRepository) conditionalUpdate(ctx context.Context, filter, update bson.M) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc sessionDoc
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidTransition
		}
		return nil, fmt.Errorf("update session: %w", err)
	}
	return doc.toDomain(), nil
}

// ListActive returns active sessions, newest first.
func (r *SessionRepository) ListActive(ctx context.Context, limit int) ([]*domain.Session, error) {
	return r.list(ctx, bson.M{"status": string(domain.StatusActive)}, limit)
}

// ListCompletedByUser returns completed sessions userID hosted or joined.
func (r *SessionRepository) ListCompletedByUser(ctx context.Context, userID string, limit int) ([]*domain.Session, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []*domain.Session{}, nil
	}
	return r.list(ctx, completedByUserFilter(oid), limit)
}

func completedByUserFilter(oid primitive.ObjectID) bson.M {
	return bson.M{
		"status": string(domain.StatusCompleted),
		"$or": bson.A{
			bson.M{"host_id": oid},
			bson.M{"participant_id": oid},
		},
	}
}

func (r *SessionRepository) list(ctx context.Context, filter bson.M, limit int) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer cur.Close(ctx)

	var docs []sessionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}

	out := make([]*domain.Session, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
