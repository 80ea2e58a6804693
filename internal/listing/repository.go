package listing

import (
	"context"
	"errors"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/segmentio/ksuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/enshire/job-board/internal/apperr"
	"github.com/enshire/job-board/internal/database"
	"github.com/enshire/job-board/internal/validate"
)

const collectionName = "jobListings"

var sortable = map[string]bool{
	"_id":        true,
	"externalId": true,
	"jobTitle":   true,
	"location":   true,
	"experience": true,
	"createdAt":  true,
}

type Repository struct {
	col *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{col: db.Collection(collectionName)}
}

// Create validates the payload, applies defaults and persists a new
// listing. The external ID is a fresh KSUID, unique and never reused.
func (r *Repository) Create(ctx context.Context, rq Rq, ownerID string) (Listing, error) {
	if err := validate.Struct(rq); err != nil {
		return Listing{}, err
	}
	externalID, err := ksuid.NewRandom()
	if err != nil {
		return Listing{}, err
	}
	l := Listing{
		ID:          primitive.NewObjectID(),
		ExternalID:  externalID.String(),
		JobTitle:    rq.JobTitle,
		Location:    rq.Location,
		Description: rq.Description,
		Experience:  rq.Experience,
		OwnerID:     ownerID,
		IsClosed:    false,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, l); err != nil {
		return Listing{}, apperr.Store("insert listing", err)
	}
	l.CreatedAtHumanized = humanize.Time(l.CreatedAt)
	return l, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// a malformed id can never match a record
		return Listing{}, apperr.ErrNotFound
	}
	var l Listing
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Listing{}, apperr.ErrNotFound
		}
		return Listing{}, apperr.Store("find listing", err)
	}
	l.CreatedAtHumanized = humanize.Time(l.CreatedAt)
	return l, nil
}

// PagedFind returns one page of listings matching the filter. The count
// runs before the data query, so totals may lag writes that land between
// the two reads.
func (r *Repository) PagedFind(ctx context.Context, f Filter, sort string, page, limit int) (database.Paged[Listing], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	query := f.Query()
	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return database.Paged[Listing]{}, apperr.Store("count listings", err)
	}
	opts := options.Find().
		SetSort(database.SortAdapter(sort, sortable)).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return database.Paged[Listing]{}, apperr.Store("find listings", err)
	}
	defer cursor.Close(ctx)
	var results []Listing
	if err := cursor.All(ctx, &results); err != nil {
		return database.Paged[Listing]{}, apperr.Store("decode listings", err)
	}
	for i := range results {
		results[i].CreatedAtHumanized = humanize.Time(results[i].CreatedAt)
	}
	return database.NewPaged(results, page, limit, int(total)), nil
}

// Update replaces the editable fields only. ID, ExternalID and CreatedAt
// are never touched. Closing is one-way: once closed, an update carrying
// isClosed=false does not reopen the listing.
func (r *Repository) Update(ctx context.Context, id string, rq RqUpdate) (Listing, error) {
	if err := validate.Struct(rq); err != nil {
		return Listing{}, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Listing{}, apperr.ErrNotFound
	}
	fields := bson.M{
		"jobTitle":    rq.JobTitle,
		"location":    rq.Location,
		"description": rq.Description,
		"experience":  rq.Experience,
	}
	if rq.IsClosed {
		fields["isClosed"] = true
	}
	res := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var l Listing
	if err := res.Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Listing{}, apperr.ErrNotFound
		}
		return Listing{}, apperr.Store("update listing", err)
	}
	l.CreatedAtHumanized = humanize.Time(l.CreatedAt)
	return l, nil
}

// Delete removes a listing permanently. Returns false when no record
// matched, which is not an error: double deletes are idempotent.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, apperr.Store("delete listing", err)
	}
	return res.DeletedCount > 0, nil
}

// OpenLocations returns the de-duplicated locations of all open listings.
// Order is unspecified.
func (r *Repository) OpenLocations(ctx context.Context) ([]string, error) {
	values, err := r.col.Distinct(ctx, "location", bson.M{"isClosed": false})
	if err != nil {
		return nil, apperr.Store("distinct locations", err)
	}
	locations := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			locations = append(locations, s)
		}
	}
	return locations, nil
}

// OpenJobTitles returns the external id and title of every open listing.
func (r *Repository) OpenJobTitles(ctx context.Context) ([]TitleRef, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 0, "externalId": 1, "jobTitle": 1})
	cursor, err := r.col.Find(ctx, bson.M{"isClosed": false}, opts)
	if err != nil {
		return nil, apperr.Store("find job titles", err)
	}
	defer cursor.Close(ctx)
	titles := []TitleRef{}
	if err := cursor.All(ctx, &titles); err != nil {
		return nil, apperr.Store("decode job titles", err)
	}
	return titles, nil
}
