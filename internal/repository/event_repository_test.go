package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/event-booking/internal/repository"
	"github.com/iliyamo/event-booking/internal/testutil"
)

func mustDate(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return &d
}

func TestEventRepoListPublished(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewEventRepo(db)
	ctx := context.Background()

	testutil.TruncateAll(t, db)
	org := testutil.InsertUser(t, db, "org@example.com", "ORGANIZER")
	music := testutil.InsertCategory(t, db, "Music")
	tech := testutil.InsertCategory(t, db, "Tech")

	nextMonth := time.Now().UTC().AddDate(0, 1, 0)
	monthAfter := time.Now().UTC().AddDate(0, 2, 0)
	a := testutil.InsertEvent(t, db, org, music, "Jazz Night", nextMonth.Format("2006-01-02"), "published", 50)
	b := testutil.InsertEvent(t, db, org, tech, "Go Meetup", monthAfter.Format("2006-01-02"), "published", 30)
	testutil.InsertEvent(t, db, org, tech, "Internal Rehearsal", nextMonth.Format("2006-01-02"), "draft", 10)
	testutil.InsertEvent(t, db, org, music, "Last Year Gala", "2020-01-01", "published", 10)

	t.Run("baseline hides drafts and past events", func(t *testing.T) {
		rows, err := repo.ListPublished(ctx, repository.EventFilter{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 events, got %d", len(rows))
		}
		if rows[0].ID != a || rows[1].ID != b {
			t.Fatalf("expected date order [%d %d], got [%d %d]", a, b, rows[0].ID, rows[1].ID)
		}
	})

	t.Run("filters are conjunctive", func(t *testing.T) {
		from := nextMonth.AddDate(0, 0, -7).Format("2006-01-02")
		to := nextMonth.AddDate(0, 0, 7).Format("2006-01-02")
		rows, err := repo.ListPublished(ctx, repository.EventFilter{
			Category: "music",
			From:     mustDate(t, from),
			To:       mustDate(t, to),
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(rows) != 1 || rows[0].ID != a {
			t.Fatalf("expected exactly the Jazz Night event, got %+v", rows)
		}
		if rows[0].CategoryName != "Music" {
			t.Fatalf("expected category join, got %q", rows[0].CategoryName)
		}
	})

	t.Run("title search is case-insensitive substring", func(t *testing.T) {
		rows, err := repo.ListPublished(ctx, repository.EventFilter{Search: "jAzZ"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(rows) != 1 || rows[0].ID != a {
			t.Fatalf("expected Jazz Night only, got %+v", rows)
		}
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		rows, err := repo.ListPublished(ctx, repository.EventFilter{Category: "Opera"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(rows) != 0 {
			t.Fatalf("expected no rows, got %d", len(rows))
		}
	})
}

func TestEventRepoGetPublishedByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewEventRepo(db)
	bookings := repository.NewBookingRepo(db)
	ctx := context.Background()

	testutil.TruncateAll(t, db)
	org := testutil.InsertUser(t, db, "org@example.com", "ORGANIZER")
	cat := testutil.InsertCategory(t, db, "Music")
	ev := testutil.InsertEvent(t, db, org, cat, "Jazz Night", time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02"), "published", 3)
	draft := testutil.InsertEvent(t, db, org, cat, "Secret", time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02"), "draft", 3)
	user := testutil.InsertUser(t, db, "alice@example.com", "ATTENDEE")

	if _, err := bookings.Create(ctx, user, ev); err != nil {
		t.Fatalf("booking: %v", err)
	}

	row, err := repo.GetPublishedByID(ctx, ev)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if row.Booked != 1 {
		t.Fatalf("expected booked=1, got %d", row.Booked)
	}
	if got := row.AvailableSeats(row.Booked); got != 2 {
		t.Fatalf("expected 2 seats left, got %d", got)
	}

	if _, err := repo.GetPublishedByID(ctx, 999999); !errors.Is(err, repository.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
	if _, err := repo.GetPublishedByID(ctx, draft); !errors.Is(err, repository.ErrEventNotFound) {
		t.Fatalf("draft must look missing, got %v", err)
	}
}

func TestCategoryRepoGetOrCreate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewCategoryRepo(db)
	ctx := context.Background()

	testutil.TruncateAll(t, db)

	first, err := repo.GetOrCreate(ctx, "Workshops")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	again, err := repo.GetOrCreate(ctx, "Workshops")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first.ID != again.ID {
		t.Fatalf("same name must map to one row: %d vs %d", first.ID, again.ID)
	}

	t.Run("concurrent creates collapse onto one row", func(t *testing.T) {
		testutil.TruncateAll(t, db)
		const n = 8
		ids := make([]uint64, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				c, err := repo.GetOrCreate(ctx, "Racing")
				if err == nil {
					ids[i] = c.ID
				}
			}(i)
		}
		wg.Wait()
		for _, id := range ids {
			if id != ids[0] || id == 0 {
				t.Fatalf("divergent category ids: %v", ids)
			}
		}
		var count int64
		if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected 1 category row, got %d", count)
		}
	})
}
