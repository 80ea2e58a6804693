package applicant

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusEntry is one step of an application's review trail. Timestamps
// are server-assigned, never taken from the client.
type StatusEntry struct {
	Status    string    `bson:"status" json:"status"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// Application is a candidate's submission against a listing. JobListingID
// is an unenforced reference: the core accepts applications for listings
// it has never seen, referential integrity is the caller's concern.
// StatusHistory is append-only and keeps insertion order for audit.
type Application struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName           string             `bson:"fullName" json:"fullName"`
	Email              string             `bson:"email" json:"email"`
	Contact            string             `bson:"contact" json:"contact"`
	CurrentLocation    string             `bson:"currentLocation" json:"currentLocation"`
	WillingToRelocate  bool               `bson:"willingToRelocate" json:"willingToRelocate"`
	VisaStatus         string             `bson:"visaStatus" json:"visaStatus"`
	JobListingID       string             `bson:"jobListingId" json:"jobListingId"`
	ResumeKey          string             `bson:"resumeKey" json:"resumeKey"`
	UserID             string             `bson:"userId,omitempty" json:"userId,omitempty"`
	IsRejected         bool               `bson:"isRejected" json:"isRejected"`
	StatusHistory      []StatusEntry      `bson:"statusHistory" json:"statusHistory"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	CreatedAtHumanized string             `bson:"-" json:"createdAtHumanized,omitempty"`
}

type Rq struct {
	FullName          string `json:"fullName" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	Contact           string `json:"contact" validate:"required"`
	CurrentLocation   string `json:"currentLocation" validate:"required"`
	WillingToRelocate bool   `json:"willingToRelocate"`
	VisaStatus        string `json:"visaStatus" validate:"required"`
	JobListingID      string `json:"jobListingId" validate:"required"`
	ResumeKey         string `json:"resumeKey" validate:"required"`
}

// RqUpdate carries the identity and contact fields only. Workflow state
// travels through the status append path, never through here.
type RqUpdate struct {
	FullName          string `json:"fullName" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	Contact           string `json:"contact" validate:"required"`
	CurrentLocation   string `json:"currentLocation" validate:"required"`
	WillingToRelocate bool   `json:"willingToRelocate"`
	VisaStatus        string `json:"visaStatus" validate:"required"`
}

type StatusRq struct {
	Status string `json:"status" validate:"required"`
}
