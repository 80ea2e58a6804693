package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/enshire/job-board/internal/apperr"
	"github.com/enshire/job-board/internal/applicant"
	"github.com/enshire/job-board/internal/listing"
	"github.com/enshire/job-board/internal/middleware"
	"github.com/enshire/job-board/internal/policy"
	"github.com/enshire/job-board/internal/server"
	"github.com/enshire/job-board/internal/service"
	"github.com/enshire/job-board/internal/storage"
	"github.com/enshire/job-board/internal/validate"
)

const maxResumeSize = 10 << 20 // 10MB

func actorFromRequest(svr server.Server, r *http.Request) policy.Actor {
	return middleware.ActorFromRequest(r, svr.SessionStore, svr.GetJWTSigningKey())
}

// writeError maps the core error taxonomy onto transport status codes.
// Anything outside the taxonomy is a store-level failure: logged and
// surfaced as a 500 without detail.
func writeError(svr server.Server, w http.ResponseWriter, err error, msg string) {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		svr.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "validation failed",
			"fields":  verr.Fields,
		})
	case errors.Is(err, apperr.ErrNotFound):
		svr.JSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
	case errors.Is(err, apperr.ErrForbidden):
		svr.JSON(w, http.StatusForbidden, map[string]string{"message": "insufficient scope"})
	default:
		svr.Log(err, msg)
		svr.JSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
	}
}

func pageQuery(r *http.Request, defaultLimit int) service.PageQuery {
	q := r.URL.Query()
	sort := q.Get("sort")
	if sort == "" {
		sort = "_id"
	}
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	return service.PageQuery{Sort: sort, Page: page, Limit: limit}
}

func listingFilter(r *http.Request) listing.Filter {
	q := r.URL.Query()
	f := listing.Filter{}
	if v := q.Get("minimumExperience"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.MinimumExperience = &n
		}
	}
	for _, raw := range q["locations"] {
		for _, loc := range strings.Split(raw, ",") {
			if loc = strings.TrimSpace(loc); loc != "" {
				f.Locations = append(f.Locations, loc)
			}
		}
	}
	return f
}

func ListJobListingsHandler(svr server.Server, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromRequest(svr, r)
		res, err := svc.ListListings(r.Context(), actor, listingFilter(r), pageQuery(r, svr.GetConfig().ListingsPerPage))
		if err != nil {
			writeError(svr, w, err, "unable to list job listings")
			return
		}
		svr.JSON(w, http.StatusOK, res)
	}
}

func CreateJobListingHandler(svr server.Server, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromRequest(svr, r)
		var rq listing.Rq
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"message": "invalid payload"})
			return
		}
		created, err := svc.CreateListing(r.Context(), actor, rq)
		if err != nil {
			writeError(svr, w, err, "unable to create job listing")
			return
		}
		svr.JSON(w, http.StatusCreated, created)
	}
}

func GetJobListingHandler(svr server.Server, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromRequest(svr, r)
		vars := mux.Vars(r)
		l, err := svc.GetListing(r.Context(), actor, vars["id"])
		if err != nil {
			writeError(svr, w, err, "unable to get job listing")
			return
		}
		svr.JSON(w, http.StatusOK, l)
	}
}

func UpdateJobListingHandler(svr server.Server, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromRequest(svr, r)
		vars := mux.Vars(r)
		var rq listing.RqUpdate
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"message": "invalid payload"})
			return
		}
		updated, err := svc.UpdateListing(r.Context(), actor, vars["id"], rq)
		if err != nil {
			writeError(svr, w, err, "unable to update job listing")
			return
		}
		svr.JSON(w, http.StatusOK, updated)
	}
}

func DeleteJobListingHandler(svr server.Server, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromRequest(svr, r)
		vars := mux.Vars(r)
		if err := svc.DeleteListing(r.Context(), actor, vars["id"]); err != nil {
			writeError(svr, w, err, "unable to delete job listing")
			return
		}
		svr.JSON(w, http.StatusOK, map[string]string{"message": "success"})
	}
}

func JobLocationsHandler(svr server.Server, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromRequest(svr, r)
		locations, err := svc.OpenJobLocations(r.Context(), actor)
		if err != nil {
			writeError(svr, w, err, "unable to get open job locations")
			return
		}
		svr.JSON(w, http.StatusOK, locations)
	}
}

func JobTitlesHandler(svr server.Server, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromRequest(svr, r)
		titles, err := svc.OpenJobTitles(r.Context(), actor)
		if err != nil {
			writeError(svr, w, err, "unable to get open job titles")
			return
		}
		svr.JSON(w, http.StatusOK, titles)
	}
}

func ListJobApplicationsHandler(svr server.Server, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromRequest(svr, r)
		res, err := svc.ListApplications(r.Context(), actor, pageQuery(r, svr.GetConfig().ListingsPerPage))
		if err != nil {
			writeError(svr, w, err, "unable to list job applications")
			return
		}
		svr.JSON(w, http.StatusOK, res)
	}
}

func CreateJobApplicationHandler(svr server.Server, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromRequest(svr, r)
		var rq applicant.Rq
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"message": "invalid payload"})
			return
		}
		created, err := svc.CreateApplication(r.Context(), actor, rq)
		if err != nil {
			writeError(svr, w, err, "unable to create job application")
			return
		}
		svr.JSON(w, http.StatusCreated, created)
	}
}

func GetJobApplicationHandler(svr server.Server, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromRequest(svr, r)
		vars := mux.Vars(r)
		a, err := svc.GetApplication(r.Context(), actor, vars["id"])
		if err != nil {
			writeError(svr, w, err, "unable to get job application")
			return
		}
		svr.JSON(w, http.StatusOK, a)
	}
}

func UpdateJobApplicationHandler(svr server.Server, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromRequest(svr, r)
		vars := mux.Vars(r)
		var rq applicant.RqUpdate
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"message": "invalid payload"})
			return
		}
		updated, err := svc.UpdateApplication(r.Context(), actor, vars["id"], rq)
		if err != nil {
			writeError(svr, w, err, "unable to update job application")
			return
		}
		svr.JSON(w, http.StatusOK, updated)
	}
}

func DeleteJobApplicationHandler(svr server.Server, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromRequest(svr, r)
		vars := mux.Vars(r)
		if err := svc.DeleteApplication(r.Context(), actor, vars["id"]); err != nil {
			writeError(svr, w, err, "unable to delete job application")
			return
		}
		svr.JSON(w, http.StatusOK, map[string]string{"message": "success"})
	}
}

func AppendApplicationStatusHandler(svr server.Server, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFromRequest(svr, r)
		vars := mux.Vars(r)
		var rq applicant.StatusRq
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"message": "invalid payload"})
			return
		}
		if err := validate.Struct(rq); err != nil {
			writeError(svr, w, err, "invalid status payload")
			return
		}
		updated, err := svc.AppendApplicationStatus(r.Context(), actor, vars["id"], rq.Status)
		if err != nil {
			writeError(svr, w, err, "unable to append application status")
			return
		}
		svr.JSON(w, http.StatusOK, updated)
	}
}

// UploadResumeHandler stores resume bytes with the external storage
// provider and returns the opaque key the application payload carries.
func UploadResumeHandler(svr server.Server, uploader storage.Uploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxResumeSize); err != nil {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"message": "invalid multipart payload"})
			return
		}
		file, header, err := r.FormFile("resume")
		if err != nil {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"message": "resume file is required"})
			return
		}
		defer file.Close()
		key, err := uploader.Upload(r.Context(), file, header.Filename)
		if err != nil {
			svr.Log(err, "unable to upload resume")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
			return
		}
		svr.JSON(w, http.StatusCreated, map[string]string{"resumeKey": key})
	}
}

func HealthHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svr.PingStore(r); err != nil {
			svr.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
		svr.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
