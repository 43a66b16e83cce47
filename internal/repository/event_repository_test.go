package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEventRepo_ListAvailableComputesRemaining(t *testing.T) {
	t.Parallel()
	db, mock := newMock(t)
	repo := NewEventRepo(db)

	today := date(2026, 10, 16)
	rows := sqlmock.NewRows([]string{"event_id", "event_name", "event_date", "age_restriction", "capacity", "sold"}).
		AddRow(1, "Jazz Night", date(2026, 10, 20), 18, 10, 0).
		AddRow(2, "Food Fair", date(2026, 11, 2), 0, 100, 64)
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN ticket_sales t ON e.event_id = t.event_id WHERE e.event_date > ?")).
		WithArgs("2026-10-16").
		WillReturnRows(rows)

	got, err := repo.ListAvailable(context.Background(), today)
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Remaining != got[0].Capacity {
		t.Fatalf("event without sales should have remaining == capacity, got %d", got[0].Remaining)
	}
	if got[1].Remaining != 36 {
		t.Fatalf("expected 36 remaining, got %d", got[1].Remaining)
	}
}

func TestEventRepo_GetByIDNotFound(t *testing.T) {
	t.Parallel()
	db, mock := newMock(t)
	repo := NewEventRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE event_id = ?")).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"event_id"}))

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventRepo_ListAllOrdersByDate(t *testing.T) {
	t.Parallel()
	db, mock := newMock(t)
	repo := NewEventRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM events ORDER BY event_date")).
		WillReturnRows(sqlmock.NewRows([]string{"event_id", "event_name", "event_date", "age_restriction", "capacity"}).
			AddRow(3, "Past Gig", date(2025, 1, 1), 0, 50))

	got, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Past Gig" || got[0].Capacity != 50 {
		t.Fatalf("unexpected events %+v", got)
	}
}

func TestEventRepo_ListUpcomingPassesToday(t *testing.T) {
	t.Parallel()
	db, mock := newMock(t)
	repo := NewEventRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE event_date > ?")).
		WithArgs("2026-10-16").
		WillReturnRows(sqlmock.NewRows([]string{"event_id", "event_name", "event_date"}).
			AddRow(1, "Jazz Night", date(2026, 10, 17)))

	got, err := repo.ListUpcoming(context.Background(), date(2026, 10, 16))
	if err != nil {
		t.Fatalf("ListUpcoming: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected events %+v", got)
	}
}
