package bookingsvc_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"fieldrental/model"
	"fieldrental/repository/webhook"
	bookingsvc "fieldrental/service/booking"

	"github.com/stretchr/testify/require"
)

// fake sql driver so BeginTx/Commit work without a database; every query
// goes through the mocked repo, never the driver.

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) { return &fakeConn{}, nil }

type fakeConn struct{}

func (*fakeConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("unexpected query") }
func (*fakeConn) Close() error                        { return nil }
func (*fakeConn) Begin() (driver.Tx, error)           { return fakeTx{}, nil }

type fakeTx struct{}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

var registerOnce sync.Once

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	registerOnce.Do(func() { sql.Register("fakedb", fakeDriver{}) })
	db, err := sql.Open("fakedb", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

type repoMock struct {
	fieldExistsFn func(ctx context.Context, fieldID int64) (bool, error)
	slotFn        func(ctx context.Context, tx *sql.Tx, slotID int64) (*model.TimeSlot, error)
	slotTakenFn   func(ctx context.Context, tx *sql.Tx, slotID int64) (bool, error)
	insertFn      func(ctx context.Context, tx *sql.Tx, userID, fieldID, slotID int64) (*model.Booking, error)
	forUpdateFn   func(ctx context.Context, tx *sql.Tx, bookingID int64) (*model.Booking, error)
	setStatusFn   func(ctx context.Context, tx *sql.Tx, bookingID int64, status model.BookingStatus) (*model.Booking, error)
	listAllFn     func(ctx context.Context) ([]bookingsvc.AdminRow, error)
	listByUserFn  func(ctx context.Context, userID int64) ([]model.Booking, error)
	expireFn      func(ctx context.Context, now time.Time) (int64, error)
}

var _ bookingsvc.Repo = (*repoMock)(nil)

func (m *repoMock) FieldExists(ctx context.Context, fieldID int64) (bool, error) {
	return m.fieldExistsFn(ctx, fieldID)
}
func (m *repoMock) SlotForUpdate(ctx context.Context, tx *sql.Tx, slotID int64) (*model.TimeSlot, error) {
	return m.slotFn(ctx, tx, slotID)
}
func (m *repoMock) SlotHasActiveBooking(ctx context.Context, tx *sql.Tx, slotID int64) (bool, error) {
	return m.slotTakenFn(ctx, tx, slotID)
}
func (m *repoMock) Insert(ctx context.Context, tx *sql.Tx, userID, fieldID, slotID int64) (*model.Booking, error) {
	return m.insertFn(ctx, tx, userID, fieldID, slotID)
}
func (m *repoMock) ForUpdate(ctx context.Context, tx *sql.Tx, bookingID int64) (*model.Booking, error) {
	return m.forUpdateFn(ctx, tx, bookingID)
}
func (m *repoMock) SetStatus(ctx context.Context, tx *sql.Tx, bookingID int64, status model.BookingStatus) (*model.Booking, error) {
	return m.setStatusFn(ctx, tx, bookingID, status)
}
func (m *repoMock) ListAll(ctx context.Context) ([]bookingsvc.AdminRow, error) {
	return m.listAllFn(ctx)
}
func (m *repoMock) ListByUser(ctx context.Context, userID int64) ([]model.Booking, error) {
	return m.listByUserFn(ctx, userID)
}
func (m *repoMock) CancelExpiredPending(ctx context.Context, now time.Time) (int64, error) {
	return m.expireFn(ctx, now)
}

func newService(t *testing.T, m *repoMock) bookingsvc.Service {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return bookingsvc.New(testDB(t), m, webhook.New(""), log)
}

func pendingBooking(id, userID int64) *model.Booking {
	return &model.Booking{ID: id, UserID: userID, FieldID: 1, SlotID: 5, Status: model.BookingPending}
}

func setStatusEcho(m *repoMock) {
	m.setStatusFn = func(ctx context.Context, tx *sql.Tx, bookingID int64, status model.BookingStatus) (*model.Booking, error) {
		b := pendingBooking(bookingID, 10)
		b.Status = status
		return b, nil
	}
}

// --- create ---

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		fieldExistsFn: func(ctx context.Context, fieldID int64) (bool, error) { return true, nil },
		slotFn: func(ctx context.Context, tx *sql.Tx, slotID int64) (*model.TimeSlot, error) {
			return &model.TimeSlot{ID: slotID, FieldID: 1}, nil
		},
		slotTakenFn: func(ctx context.Context, tx *sql.Tx, slotID int64) (bool, error) { return false, nil },
		insertFn: func(ctx context.Context, tx *sql.Tx, userID, fieldID, slotID int64) (*model.Booking, error) {
			return &model.Booking{ID: 77, UserID: userID, FieldID: fieldID, SlotID: slotID, Status: model.BookingPending}, nil
		},
	}
	svc := newService(t, m)

	b, err := svc.Create(context.Background(), 10, 1, 5)
	require.NoError(t, err)
	require.Equal(t, int64(77), b.ID)
	require.Equal(t, model.BookingPending, b.Status)
}

func TestCreate_FieldNotFound(t *testing.T) {
	m := &repoMock{
		fieldExistsFn: func(ctx context.Context, fieldID int64) (bool, error) { return false, nil },
	}
	svc := newService(t, m)

	_, err := svc.Create(context.Background(), 10, 99, 5)
	require.Equal(t, bookingsvc.ErrFieldNotFound, bookingsvc.Code(err))
}

func TestCreate_SlotNotFound(t *testing.T) {
	m := &repoMock{
		fieldExistsFn: func(ctx context.Context, fieldID int64) (bool, error) { return true, nil },
		slotFn: func(ctx context.Context, tx *sql.Tx, slotID int64) (*model.TimeSlot, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := newService(t, m)

	_, err := svc.Create(context.Background(), 10, 1, 99)
	require.Equal(t, bookingsvc.ErrSlotNotFound, bookingsvc.Code(err))
}

func TestCreate_SlotOfOtherField(t *testing.T) {
	m := &repoMock{
		fieldExistsFn: func(ctx context.Context, fieldID int64) (bool, error) { return true, nil },
		slotFn: func(ctx context.Context, tx *sql.Tx, slotID int64) (*model.TimeSlot, error) {
			return &model.TimeSlot{ID: slotID, FieldID: 2}, nil
		},
	}
	svc := newService(t, m)

	_, err := svc.Create(context.Background(), 10, 1, 5)
	require.Equal(t, bookingsvc.ErrSlotNotFound, bookingsvc.Code(err))
}

func TestCreate_SlotTaken(t *testing.T) {
	m := &repoMock{
		fieldExistsFn: func(ctx context.Context, fieldID int64) (bool, error) { return true, nil },
		slotFn: func(ctx context.Context, tx *sql.Tx, slotID int64) (*model.TimeSlot, error) {
			return &model.TimeSlot{ID: slotID, FieldID: 1}, nil
		},
		slotTakenFn: func(ctx context.Context, tx *sql.Tx, slotID int64) (bool, error) { return true, nil },
	}
	svc := newService(t, m)

	_, err := svc.Create(context.Background(), 10, 1, 5)
	require.Equal(t, bookingsvc.ErrSlotTaken, bookingsvc.Code(err))
}

// --- admin decisions ---

func TestApprove_PendingBecomesConfirmed(t *testing.T) {
	m := &repoMock{
		forUpdateFn: func(ctx context.Context, tx *sql.Tx, bookingID int64) (*model.Booking, error) {
			return pendingBooking(bookingID, 10), nil
		},
	}
	setStatusEcho(m)
	svc := newService(t, m)

	b, err := svc.Approve(context.Background(), 77)
	require.NoError(t, err)
	require.Equal(t, model.BookingConfirmed, b.Status)
}

func TestApprove_NotFound(t *testing.T) {
	mutated := false
	m := &repoMock{
		forUpdateFn: func(ctx context.Context, tx *sql.Tx, bookingID int64) (*model.Booking, error) {
			return nil, sql.ErrNoRows
		},
		setStatusFn: func(ctx context.Context, tx *sql.Tx, bookingID int64, status model.BookingStatus) (*model.Booking, error) {
			mutated = true
			return nil, nil
		},
	}
	svc := newService(t, m)

	_, err := svc.Approve(context.Background(), 404)
	require.Equal(t, bookingsvc.ErrBookingNotFound, bookingsvc.Code(err))
	require.False(t, mutated)
}

func TestReject_ConfirmedBecomesCancelled(t *testing.T) {
	m := &repoMock{
		forUpdateFn: func(ctx context.Context, tx *sql.Tx, bookingID int64) (*model.Booking, error) {
			b := pendingBooking(bookingID, 10)
			b.Status = model.BookingConfirmed
			return b, nil
		},
	}
	setStatusEcho(m)
	svc := newService(t, m)

	b, err := svc.Reject(context.Background(), 77)
	require.NoError(t, err)
	require.Equal(t, model.BookingCancelled, b.Status)
}

func TestReject_CancelledIsTerminal(t *testing.T) {
	m := &repoMock{
		forUpdateFn: func(ctx context.Context, tx *sql.Tx, bookingID int64) (*model.Booking, error) {
			b := pendingBooking(bookingID, 10)
			b.Status = model.BookingCancelled
			return b, nil
		},
	}
	svc := newService(t, m)

	_, err := svc.Reject(context.Background(), 77)
	require.Equal(t, bookingsvc.ErrAlreadyDecided, bookingsvc.Code(err))
}

// --- user cancel ---

func TestCancel_Success(t *testing.T) {
	m := &repoMock{
		forUpdateFn: func(ctx context.Context, tx *sql.Tx, bookingID int64) (*model.Booking, error) {
			return pendingBooking(bookingID, 10), nil
		},
	}
	setStatusEcho(m)
	svc := newService(t, m)

	b, err := svc.Cancel(context.Background(), 10, 77)
	require.NoError(t, err)
	require.Equal(t, model.BookingCancelled, b.Status)
}

func TestCancel_NotOwner(t *testing.T) {
	m := &repoMock{
		forUpdateFn: func(ctx context.Context, tx *sql.Tx, bookingID int64) (*model.Booking, error) {
			return pendingBooking(bookingID, 10), nil
		},
	}
	svc := newService(t, m)

	_, err := svc.Cancel(context.Background(), 11, 77)
	require.Equal(t, bookingsvc.ErrNotOwner, bookingsvc.Code(err))
}

func TestCancel_ConfirmedIsImmutable(t *testing.T) {
	m := &repoMock{
		forUpdateFn: func(ctx context.Context, tx *sql.Tx, bookingID int64) (*model.Booking, error) {
			b := pendingBooking(bookingID, 10)
			b.Status = model.BookingConfirmed
			return b, nil
		},
	}
	svc := newService(t, m)

	_, err := svc.Cancel(context.Background(), 10, 77)
	require.Equal(t, bookingsvc.ErrConfirmed, bookingsvc.Code(err))
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	mutated := false
	m := &repoMock{
		forUpdateFn: func(ctx context.Context, tx *sql.Tx, bookingID int64) (*model.Booking, error) {
			b := pendingBooking(bookingID, 10)
			b.Status = model.BookingCancelled
			return b, nil
		},
		setStatusFn: func(ctx context.Context, tx *sql.Tx, bookingID int64, status model.BookingStatus) (*model.Booking, error) {
			mutated = true
			return nil, nil
		},
	}
	svc := newService(t, m)

	_, err := svc.Cancel(context.Background(), 10, 77)
	require.Equal(t, bookingsvc.ErrAlreadyCancelled, bookingsvc.Code(err))
	require.False(t, mutated, "double cancel must leave state unchanged")
}

func TestCancel_NotFound(t *testing.T) {
	m := &repoMock{
		forUpdateFn: func(ctx context.Context, tx *sql.Tx, bookingID int64) (*model.Booking, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := newService(t, m)

	_, err := svc.Cancel(context.Background(), 10, 404)
	require.Equal(t, bookingsvc.ErrBookingNotFound, bookingsvc.Code(err))
}

// --- reads & cleanup ---

func TestListAll_PassThrough(t *testing.T) {
	m := &repoMock{
		listAllFn: func(ctx context.Context) ([]bookingsvc.AdminRow, error) {
			return []bookingsvc.AdminRow{{BookingID: 1}, {BookingID: 2}}, nil
		},
	}
	svc := newService(t, m)

	rows, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestCleaner_ReleaseExpired(t *testing.T) {
	m := &repoMock{
		expireFn: func(ctx context.Context, now time.Time) (int64, error) { return 3, nil },
	}
	c := bookingsvc.NewCleaner(m)

	n, err := c.ReleaseExpired(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
}
