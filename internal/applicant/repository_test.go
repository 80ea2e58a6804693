package applicant

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/enshire/job-board/internal/apperr"
)

func testRepository(t *testing.T) *Repository {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	db := client.Database("enshire_test")
	if err := db.Collection(collectionName).Drop(context.Background()); err != nil {
		t.Fatalf("drop: %v", err)
	}
	return NewRepository(db)
}

func validRq() Rq {
	return Rq{
		FullName:        "Jane Doe",
		Email:           "jane@example.com",
		Contact:         "+49 555 0100",
		CurrentLocation: "Berlin",
		VisaStatus:      "citizen",
		JobListingID:    primitive.NewObjectID().Hex(),
		ResumeKey:       "resumes/2IgKk2example.pdf",
	}
}

func TestRepositoryCreate(t *testing.T) {
	repo := testRepository(t)

	a, err := repo.Create(context.Background(), validRq(), "")
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if a.UserID != "" {
		t.Errorf("UserID = %q, want empty for anonymous submission", a.UserID)
	}
	if a.StatusHistory == nil || len(a.StatusHistory) != 0 {
		t.Errorf("StatusHistory = %v, want empty non-nil history", a.StatusHistory)
	}
	if a.IsRejected {
		t.Error("new application created rejected")
	}
	if a.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestRepositoryCreate_Invalid(t *testing.T) {
	repo := testRepository(t)

	rq := validRq()
	rq.Email = "not-an-email"
	rq.ResumeKey = ""
	_, err := repo.Create(context.Background(), rq, "")
	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Create(invalid) = %v, want ValidationError", err)
	}
	if len(verr.Fields) != 2 {
		t.Errorf("got %d field errors, want 2: %v", len(verr.Fields), verr.Fields)
	}
}

func TestRepositoryFindByID(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	a, err := repo.Create(ctx, validRq(), "acc-1")
	if err != nil {
		t.Fatal(err)
	}
	got, err := repo.FindByID(ctx, a.ID.Hex())
	if err != nil {
		t.Fatalf("FindByID() = %v", err)
	}
	if got.UserID != "acc-1" {
		t.Errorf("UserID = %q, want acc-1", got.UserID)
	}
	if _, err := repo.FindByID(ctx, primitive.NewObjectID().Hex()); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("FindByID(missing) = %v, want ErrNotFound", err)
	}
	if _, err := repo.FindByID(ctx, "zzz"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("FindByID(malformed) = %v, want ErrNotFound", err)
	}
}

func TestRepositoryUpdate_KeepsHistory(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	a, err := repo.Create(ctx, validRq(), "acc-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.AppendStatus(ctx, a.ID.Hex(), "screening"); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Update(ctx, a.ID.Hex(), RqUpdate{
		FullName:        "Jane A. Doe",
		Email:           "jane@example.com",
		Contact:         "+49 555 0100",
		CurrentLocation: "Munich",
		VisaStatus:      "citizen",
	})
	if err != nil {
		t.Fatalf("Update() = %v", err)
	}
	if got.FullName != "Jane A. Doe" || got.CurrentLocation != "Munich" {
		t.Errorf("update not applied: %+v", got)
	}
	if len(got.StatusHistory) != 1 {
		t.Errorf("StatusHistory lost on contact update: %v", got.StatusHistory)
	}
	if got.JobListingID != a.JobListingID {
		t.Error("JobListingID changed on contact update")
	}
}

func TestRepositoryAppendStatus(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	a, err := repo.Create(ctx, validRq(), "")
	if err != nil {
		t.Fatal(err)
	}

	got, err := repo.AppendStatus(ctx, a.ID.Hex(), "screening")
	if err != nil {
		t.Fatalf("AppendStatus() = %v", err)
	}
	if len(got.StatusHistory) != 1 {
		t.Fatalf("history length = %d, want 1", len(got.StatusHistory))
	}
	if got.StatusHistory[0].Status != "screening" || got.StatusHistory[0].Timestamp.IsZero() {
		t.Errorf("entry = %+v", got.StatusHistory[0])
	}

	got, err = repo.AppendStatus(ctx, a.ID.Hex(), "interview")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.StatusHistory) != 2 || got.StatusHistory[0].Status != "screening" {
		t.Errorf("prior entries not preserved in order: %v", got.StatusHistory)
	}

	if _, err := repo.AppendStatus(ctx, primitive.NewObjectID().Hex(), "x"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("AppendStatus(missing) = %v, want ErrNotFound", err)
	}
}

// TestRepositoryAppendStatus_Concurrent races two appends against the
// same application: both must land, neither may clobber the other.
func TestRepositoryAppendStatus_Concurrent(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	a, err := repo.Create(ctx, validRq(), "")
	if err != nil {
		t.Fatal(err)
	}
	id := a.ID.Hex()

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, status := range []string{"screening", "interview"} {
		wg.Add(1)
		go func(s string) {
			defer wg.Done()
			if _, err := repo.AppendStatus(ctx, id, s); err != nil {
				errs <- err
			}
		}(status)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent AppendStatus() = %v", err)
	}

	got, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.StatusHistory) != 2 {
		t.Errorf("history length = %d after two concurrent appends, want 2", len(got.StatusHistory))
	}
}

func TestRepositoryPagedFind(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	names := []string{"Alice", "Bob", "Carol"}
	for _, n := range names {
		rq := validRq()
		rq.FullName = n
		if _, err := repo.Create(ctx, rq, ""); err != nil {
			t.Fatal(err)
		}
	}

	p, err := repo.PagedFind(ctx, "fullName", 1, 2)
	if err != nil {
		t.Fatalf("PagedFind() = %v", err)
	}
	if p.Items.Total != 3 || p.Pages.Total != 2 {
		t.Errorf("totals = %d/%d, want 3/2", p.Items.Total, p.Pages.Total)
	}
	if len(p.Data) != 2 || p.Data[0].FullName != "Alice" {
		t.Errorf("first page = %+v", p.Data)
	}

	p, err = repo.PagedFind(ctx, "-fullName", 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if p.Data[0].FullName != "Carol" {
		t.Errorf("descending sort first = %q, want Carol", p.Data[0].FullName)
	}
}

func TestRepositoryDelete(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	a, err := repo.Create(ctx, validRq(), "")
	if err != nil {
		t.Fatal(err)
	}
	deleted, err := repo.Delete(ctx, a.ID.Hex())
	if err != nil || !deleted {
		t.Fatalf("Delete() = %v, %v", deleted, err)
	}
	deleted, err = repo.Delete(ctx, a.ID.Hex())
	if err != nil || deleted {
		t.Fatalf("second Delete() = %v, %v, want false, nil", deleted, err)
	}
}
