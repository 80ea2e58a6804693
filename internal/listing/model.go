package listing

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing is a published job opening as stored in the jobListings
// collection. ExternalID is assigned once at creation and never reused.
type Listing struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExternalID         string             `bson:"externalId" json:"externalId"`
	JobTitle           string             `bson:"jobTitle" json:"jobTitle"`
	Location           string             `bson:"location" json:"location"`
	Description        string             `bson:"description" json:"description"`
	Experience         int                `bson:"experience" json:"experience"`
	OwnerID            string             `bson:"ownerId,omitempty" json:"ownerId,omitempty"`
	IsClosed           bool               `bson:"isClosed" json:"isClosed"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	CreatedAtHumanized string             `bson:"-" json:"createdAtHumanized,omitempty"`
}

type Rq struct {
	JobTitle    string `json:"jobTitle" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Description string `json:"description" validate:"required"`
	Experience  int    `json:"experience" validate:"min=0"`
}

type RqUpdate struct {
	JobTitle    string `json:"jobTitle" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Description string `json:"description" validate:"required"`
	Experience  int    `json:"experience" validate:"min=0"`
	IsClosed    bool   `json:"isClosed"`
}

// TitleRef is the projected shape served by the job-titles aggregate.
type TitleRef struct {
	ExternalID string `bson:"externalId" json:"externalId"`
	JobTitle   string `bson:"jobTitle" json:"jobTitle"`
}

// Filter narrows a listing query. MinimumExperience keeps listings whose
// experience requirement does not exceed the candidate's years; Locations
// keeps listings in any of the given places. Absent fields impose no
// constraint, present ones combine with logical AND.
type Filter struct {
	MinimumExperience *int
	Locations         []string
}

func (f Filter) Query() bson.M {
	q := bson.M{}
	if f.MinimumExperience != nil {
		q["experience"] = bson.M{"$lte": *f.MinimumExperience}
	}
	if len(f.Locations) > 0 {
		q["location"] = bson.M{"$in": f.Locations}
	}
	return q
}
