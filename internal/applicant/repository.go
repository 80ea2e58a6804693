package applicant

import (
	"context"
	"errors"
	"time"

	"github.com/dustin/go-humanize"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/enshire/job-board/internal/apperr"
	"github.com/enshire/job-board/internal/database"
	"github.com/enshire/job-board/internal/validate"
)

const collectionName = "jobApplications"

var sortable = map[string]bool{
	"_id":          true,
	"fullName":     true,
	"email":        true,
	"jobListingId": true,
	"createdAt":    true,
}

type Repository struct {
	col *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{col: db.Collection(collectionName)}
}

// Create validates the payload, applies defaults and persists a new
// application. userID may be empty: anonymous submissions are allowed.
// The referenced listing is not checked for existence.
func (r *Repository) Create(ctx context.Context, rq Rq, userID string) (Application, error) {
	if err := validate.Struct(rq); err != nil {
		return Application{}, err
	}
	a := Application{
		ID:                primitive.NewObjectID(),
		FullName:          rq.FullName,
		Email:             rq.Email,
		Contact:           rq.Contact,
		CurrentLocation:   rq.CurrentLocation,
		WillingToRelocate: rq.WillingToRelocate,
		VisaStatus:        rq.VisaStatus,
		JobListingID:      rq.JobListingID,
		ResumeKey:         rq.ResumeKey,
		UserID:            userID,
		IsRejected:        false,
		StatusHistory:     []StatusEntry{},
		CreatedAt:         time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, a); err != nil {
		return Application{}, apperr.Store("insert application", err)
	}
	a.CreatedAtHumanized = humanize.Time(a.CreatedAt)
	return a, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (Application, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Application{}, apperr.ErrNotFound
	}
	var a Application
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Application{}, apperr.ErrNotFound
		}
		return Application{}, apperr.Store("find application", err)
	}
	a.CreatedAtHumanized = humanize.Time(a.CreatedAt)
	return a, nil
}

// PagedFind returns one page of applications. The count runs before the
// data query, so totals may lag writes landing between the two reads.
func (r *Repository) PagedFind(ctx context.Context, sort string, page, limit int) (database.Paged[Application], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return database.Paged[Application]{}, apperr.Store("count applications", err)
	}
	opts := options.Find().
		SetSort(database.SortAdapter(sort, sortable)).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return database.Paged[Application]{}, apperr.Store("find applications", err)
	}
	defer cursor.Close(ctx)
	var results []Application
	if err := cursor.All(ctx, &results); err != nil {
		return database.Paged[Application]{}, apperr.Store("decode applications", err)
	}
	for i := range results {
		results[i].CreatedAtHumanized = humanize.Time(results[i].CreatedAt)
	}
	return database.NewPaged(results, page, limit, int(total)), nil
}

// Update replaces the identity and contact fields only. StatusHistory,
// CreatedAt and ID are never touched here.
func (r *Repository) Update(ctx context.Context, id string, rq RqUpdate) (Application, error) {
	if err := validate.Struct(rq); err != nil {
		return Application{}, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Application{}, apperr.ErrNotFound
	}
	res := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"fullName":          rq.FullName,
			"email":             rq.Email,
			"contact":           rq.Contact,
			"currentLocation":   rq.CurrentLocation,
			"willingToRelocate": rq.WillingToRelocate,
			"visaStatus":        rq.VisaStatus,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var a Application
	if err := res.Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Application{}, apperr.ErrNotFound
		}
		return Application{}, apperr.Store("update application", err)
	}
	a.CreatedAtHumanized = humanize.Time(a.CreatedAt)
	return a, nil
}

func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, apperr.Store("delete application", err)
	}
	return res.DeletedCount > 0, nil
}

// AppendStatus appends {status, now} to the application's status history
// in a single atomic $push. No read-modify-write: concurrent appends to
// the same application both survive. Prior entries are never replaced,
// removed or reordered, and the label itself is opaque to the core.
func (r *Repository) AppendStatus(ctx context.Context, id, status string) (Application, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Application{}, apperr.ErrNotFound
	}
	entry := StatusEntry{Status: status, Timestamp: time.Now().UTC()}
	res := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"statusHistory": entry}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var a Application
	if err := res.Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Application{}, apperr.ErrNotFound
		}
		return Application{}, apperr.Store("append status", err)
	}
	a.CreatedAtHumanized = humanize.Time(a.CreatedAt)
	return a, nil
}
