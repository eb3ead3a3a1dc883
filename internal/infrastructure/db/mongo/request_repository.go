package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/domain"
)

const requestsCollection = "role_requests"

type RequestRepository struct {
	coll *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{coll: db.Collection(requestsCollection)}
}

type mongoRequest struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	RequestedRole string             `bson:"requested_role"`
	Status        string             `bson:"status"`
	RequestedAt   int64              `bson:"requested_at"`
}

func (r *RequestRepository) Insert(ctx context.Context, req *domain.RoleRequest) (*domain.RoleRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoRequest{
		Email:         req.Email,
		RequestedRole: string(req.RequestedRole),
		Status:        string(req.Status),
		RequestedAt:   req.RequestedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert role request: %w", err)
	}

	created := *req
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (*domain.RoleRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *RequestRepository) FindPending(ctx context.Context, email string, role domain.Role) (*domain.RoleRequest, error) {
	return r.findOne(ctx, bson.M{
		"email":          email,
		"requested_role": string(role),
		"status":         string(domain.RequestPending),
	})
}

func (r *RequestRepository) findOne(ctx context.Context, filter bson.M) (*domain.RoleRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoRequest
	if err := r.coll.FindOne(ctx, filter).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find role request: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRequestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

// ListNewestFirst returns every request sorted by submission time descending.
// The sort is part of the review-queue contract.
func (r *RequestRepository) ListNewestFirst(ctx context.Context) ([]*domain.RoleRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "requested_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list role requests: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoRequest
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode role requests: %w", err)
	}

	requests := make([]*domain.RoleRequest, 0, len(docs))
	for i := range docs {
		requests = append(requests, docs[i].toDomain())
	}
	return requests, nil
}

func (mr *mongoRequest) toDomain() *domain.RoleRequest {
	return &domain.RoleRequest{
		ID:            mr.ID.Hex(),
		Email:         mr.Email,
		RequestedRole: domain.Role(mr.RequestedRole),
		Status:        domain.RequestStatus(mr.Status),
		RequestedAt:   unixToTime(mr.RequestedAt),
	}
}
