// Package service is the facade the HTTP surface calls. Every operation
// resolves the caller first, consults the access policy, then delegates to
// a repository. A denial returns before storage is touched; a success
// returns exactly what the repository returned.
package service

import (
	"context"
	"log"

	"github.com/enshire/job-board/internal/apperr"
	"github.com/enshire/job-board/internal/applicant"
	"github.com/enshire/job-board/internal/database"
	"github.com/enshire/job-board/internal/listing"
	"github.com/enshire/job-board/internal/policy"
)

type ListingRepository interface {
	Create(ctx context.Context, rq listing.Rq, ownerID string) (listing.Listing, error)
	FindByID(ctx context.Context, id string) (listing.Listing, error)
	PagedFind(ctx context.Context, f listing.Filter, sort string, page, limit int) (database.Paged[listing.Listing], error)
	Update(ctx context.Context, id string, rq listing.RqUpdate) (listing.Listing, error)
	Delete(ctx context.Context, id string) (bool, error)
	OpenLocations(ctx context.Context) ([]string, error)
	OpenJobTitles(ctx context.Context) ([]listing.TitleRef, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, rq applicant.Rq, userID string) (applicant.Application, error)
	FindByID(ctx context.Context, id string) (applicant.Application, error)
	PagedFind(ctx context.Context, sort string, page, limit int) (database.Paged[applicant.Application], error)
	Update(ctx context.Context, id string, rq applicant.RqUpdate) (applicant.Application, error)
	Delete(ctx context.Context, id string) (bool, error)
	AppendStatus(ctx context.Context, id, status string) (applicant.Application, error)
}

type Notifier interface {
	NotifyNewApplication(a applicant.Application) error
}

type Service struct {
	listings     ListingRepository
	applications ApplicationRepository
	notifier     Notifier
}

func NewService(listings ListingRepository, applications ApplicationRepository, notifier Notifier) *Service {
	return &Service{
		listings:     listings,
		applications: applications,
		notifier:     notifier,
	}
}

// PageQuery carries client-supplied paging and sorting. Sort is a token
// like "-createdAt"; page and limit are 1-based and positive.
type PageQuery struct {
	Sort  string
	Page  int
	Limit int
}

func (s *Service) ListListings(ctx context.Context, actor policy.Actor, f listing.Filter, pq PageQuery) (database.Paged[listing.Listing], error) {
	if err := policy.Authorize(actor, policy.ResourceListing, policy.OpList); err != nil {
		return database.Paged[listing.Listing]{}, err
	}
	return s.listings.PagedFind(ctx, f, pq.Sort, pq.Page, pq.Limit)
}

func (s *Service) GetListing(ctx context.Context, actor policy.Actor, id string) (listing.Listing, error) {
	if err := policy.Authorize(actor, policy.ResourceListing, policy.OpRead); err != nil {
		return listing.Listing{}, err
	}
	return s.listings.FindByID(ctx, id)
}

func (s *Service) CreateListing(ctx context.Context, actor policy.Actor, rq listing.Rq) (listing.Listing, error) {
	if err := policy.Authorize(actor, policy.ResourceListing, policy.OpCreate); err != nil {
		return listing.Listing{}, err
	}
	return s.listings.Create(ctx, rq, actor.AccountID)
}

func (s *Service) UpdateListing(ctx context.Context, actor policy.Actor, id string, rq listing.RqUpdate) (listing.Listing, error) {
	if err := policy.Authorize(actor, policy.ResourceListing, policy.OpUpdate); err != nil {
		return listing.Listing{}, err
	}
	return s.listings.Update(ctx, id, rq)
}

func (s *Service) DeleteListing(ctx context.Context, actor policy.Actor, id string) error {
	if err := policy.Authorize(actor, policy.ResourceListing, policy.OpDelete); err != nil {
		return err
	}
	deleted, err := s.listings.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *Service) OpenJobLocations(ctx context.Context, actor policy.Actor) ([]string, error) {
	if err := policy.Authorize(actor, policy.ResourceListing, policy.OpRead); err != nil {
		return nil, err
	}
	return s.listings.OpenLocations(ctx)
}

func (s *Service) OpenJobTitles(ctx context.Context, actor policy.Actor) ([]listing.TitleRef, error) {
	if err := policy.Authorize(actor, policy.ResourceListing, policy.OpRead); err != nil {
		return nil, err
	}
	return s.listings.OpenJobTitles(ctx)
}

func (s *Service) ListApplications(ctx context.Context, actor policy.Actor, pq PageQuery) (database.Paged[applicant.Application], error) {
	if err := policy.Authorize(actor, policy.ResourceApplication, policy.OpList); err != nil {
		return database.Paged[applicant.Application]{}, err
	}
	return s.applications.PagedFind(ctx, pq.Sort, pq.Page, pq.Limit)
}

// CreateApplication accepts submissions from anyone; the submitting
// account, when present, is recorded as the owner. The admin notification
// is best-effort and never fails the request.
func (s *Service) CreateApplication(ctx context.Context, actor policy.Actor, rq applicant.Rq) (applicant.Application, error) {
	if err := policy.Authorize(actor, policy.ResourceApplication, policy.OpCreate); err != nil {
		return applicant.Application{}, err
	}
	a, err := s.applications.Create(ctx, rq, actor.AccountID)
	if err != nil {
		return applicant.Application{}, err
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyNewApplication(a); err != nil {
			log.Printf("unable to notify admin of new application %s: %v", a.ID.Hex(), err)
		}
	}
	return a, nil
}

func (s *Service) GetApplication(ctx context.Context, actor policy.Actor, id string) (applicant.Application, error) {
	if err := policy.Authorize(actor, policy.ResourceApplication, policy.OpRead); err != nil {
		return applicant.Application{}, err
	}
	a, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return applicant.Application{}, err
	}
	if err := policy.AuthorizeOwner(actor, a.UserID); err != nil {
		return applicant.Application{}, err
	}
	return a, nil
}

func (s *Service) UpdateApplication(ctx context.Context, actor policy.Actor, id string, rq applicant.RqUpdate) (applicant.Application, error) {
	if err := policy.Authorize(actor, policy.ResourceApplication, policy.OpUpdate); err != nil {
		return applicant.Application{}, err
	}
	a, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return applicant.Application{}, err
	}
	if err := policy.AuthorizeOwner(actor, a.UserID); err != nil {
		return applicant.Application{}, err
	}
	return s.applications.Update(ctx, id, rq)
}

func (s *Service) DeleteApplication(ctx context.Context, actor policy.Actor, id string) error {
	if err := policy.Authorize(actor, policy.ResourceApplication, policy.OpDelete); err != nil {
		return err
	}
	a, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeOwner(actor, a.UserID); err != nil {
		return err
	}
	deleted, err := s.applications.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.ErrNotFound
	}
	return nil
}

// AppendApplicationStatus appends one timestamped entry to the status
// history. The label is opaque: no transition graph is enforced.
func (s *Service) AppendApplicationStatus(ctx context.Context, actor policy.Actor, id, status string) (applicant.Application, error) {
	if err := policy.Authorize(actor, policy.ResourceApplication, policy.OpAppendStatus); err != nil {
		return applicant.Application{}, err
	}
	return s.applications.AppendStatus(ctx, id, status)
}
