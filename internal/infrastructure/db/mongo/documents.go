package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/interviewme/backend/internal/core/domain"
)

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ExternalID   string             `bson:"external_id"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	ProfileImage string             `bson:"profile_image"`
	Role         string             `bson:"role"`
	Bio          string             `bson:"bio"`
	IsActive     bool               `bson:"is_active"`
	LastLogin    *time.Time         `bson:"last_login,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toUserDoc(u *domain.User) userDoc {
	doc := userDoc{
		ExternalID:   u.ExternalID,
		Name:         u.Name,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
		Role:         u.Role,
		Bio:          u.Bio,
		IsActive:     u.IsActive,
		LastLogin:    u.LastLogin,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if id, err := primitive.ObjectIDFromHex(u.ID); err == nil {
		doc.ID = id
	}
	return doc
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		ExternalID:   d.ExternalID,
		Name:         d.Name,
		Email:        d.Email,
		ProfileImage: d.ProfileImage,
		Role:         d.Role,
		Bio:          d.Bio,
		IsActive:     d.IsActive,
		LastLogin:    d.LastLogin,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// sessionDoc stores user references as ObjectIDs. participant_id is written
// as null rather than omitted so the join filter can match on it.
type sessionDoc struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	Problem       string              `bson:"problem"`
	Difficulty    string              `bson:"difficulty"`
	HostID        primitive.ObjectID  `bson:"host_id"`
	ParticipantID *primitive.ObjectID `bson:"participant_id"`
	Status        string              `bson:"status"`
	CallID        string              `bson:"call_id"`
	StartedAt     *time.Time          `bson:"started_at,omitempty"`
	EndedAt       *time.Time          `bson:"ended_at,omitempty"`
	Duration      *int                `bson:"duration,omitempty"`
	Feedback      string              `bson:"feedback"`
	Rating        *int                `bson:"rating,omitempty"`
	CancelledBy   *primitive.ObjectID `bson:"cancelled_by,omitempty"`
	CreatedAt     time.Time           `bson:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at"`
}

func toSessionDoc(s *domain.Session) (sessionDoc, error) {
	hostID, err := primitive.ObjectIDFromHex(s.HostID)
	if err != nil {
		return sessionDoc{}, err
	}
	doc := sessionDoc{
		Problem:       s.Problem,
		Difficulty:    string(s.Difficulty),
		HostID:        hostID,
		ParticipantID: optionalObjectID(s.ParticipantID),
		Status:        string(s.Status),
		CallID:        s.CallID,
		StartedAt:     s.StartedAt,
		EndedAt:       s.EndedAt,
		Duration:      s.Duration,
		Feedback:      s.Feedback,
		Rating:        s.Rating,
		CancelledBy:   optionalObjectID(s.CancelledBy),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if id, err := primitive.ObjectIDFromHex(s.ID); err == nil {
		doc.ID = id
	}
	return doc, nil
}

func (d sessionDoc) toDomain() *domain.Session {
	return &domain.Session{
		ID:            d.ID.Hex(),
		Problem:       d.Problem,
		Difficulty:    domain.Difficulty(d.Difficulty),
		HostID:        d.HostID.Hex(),
		ParticipantID: hexOrEmpty(d.ParticipantID),
		Status:        domain.SessionStatus(d.Status),
		CallID:        d.CallID,
		StartedAt:     utcPtr(d.StartedAt),
		EndedAt:       utcPtr(d.EndedAt),
		Duration:      d.Duration,
		Feedback:      d.Feedback,
		Rating:        d.Rating,
		CancelledBy:   hexOrEmpty(d.CancelledBy),
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}

func optionalObjectID(hex string) *primitive.ObjectID {
	if hex == "" {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil
	}
	return &id
}

func hexOrEmpty(id *primitive.ObjectID) string {
	if id == nil || id.IsZero() {
		return ""
	}
	return id.Hex()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
