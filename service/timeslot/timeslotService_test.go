package timeslotsvc

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"fieldrental/model"

	"github.com/stretchr/testify/require"
)

type slotRepoMock struct {
	bulkFn func(ctx context.Context, fieldID int64, date time.Time, starts []time.Time) ([]model.TimeSlot, error)
	listFn func(ctx context.Context, fieldID int64) ([]model.TimeSlot, error)
}

func (m *slotRepoMock) BulkInsert(ctx context.Context, fieldID int64, date time.Time, starts []time.Time) ([]model.TimeSlot, error) {
	return m.bulkFn(ctx, fieldID, date, starts)
}

func (m *slotRepoMock) ListByField(ctx context.Context, fieldID int64) ([]model.TimeSlot, error) {
	return m.listFn(ctx, fieldID)
}

type fieldRepoMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.Field, error)
}

func (m *fieldRepoMock) ByID(ctx context.Context, id int64) (*model.Field, error) {
	return m.byIDFn(ctx, id)
}

func existingField(id int64) *fieldRepoMock {
	return &fieldRepoMock{
		byIDFn: func(ctx context.Context, got int64) (*model.Field, error) {
			if got != id {
				return nil, sql.ErrNoRows
			}
			return &model.Field{ID: id, Name: "Court A", Price: 150000}, nil
		},
	}
}

func TestCreateSlots_HourRange(t *testing.T) {
	var gotStarts []time.Time
	slots := &slotRepoMock{
		bulkFn: func(ctx context.Context, fieldID int64, date time.Time, starts []time.Time) ([]model.TimeSlot, error) {
			gotStarts = starts
			out := make([]model.TimeSlot, len(starts))
			for i, s := range starts {
				out[i] = model.TimeSlot{
					ID:        int64(i + 1),
					FieldID:   fieldID,
					Date:      date,
					StartTime: s,
					EndTime:   s.Add(time.Hour),
				}
			}
			return out, nil
		},
	}
	svc := New(slots, existingField(1))

	date := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC) // time-of-day must be ignored
	out, err := svc.CreateSlots(context.Background(), 1, date, 9, 12)
	require.NoError(t, err)
	require.Len(t, out.Slots, 3)
	require.Len(t, gotStarts, 3)

	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	for i, h := range []int{9, 10, 11} {
		require.Equal(t, day.Add(time.Duration(h)*time.Hour), gotStarts[i])
		require.Equal(t, day.Add(time.Duration(h+1)*time.Hour), out.Slots[i].EndTime)
	}
	require.Equal(t, int64(1), out.ID)
	require.Equal(t, "Court A", out.Name)
}

func TestCreateSlots_BadRange(t *testing.T) {
	svc := New(&slotRepoMock{}, existingField(1))

	for _, tc := range []struct{ start, end int }{
		{12, 9},
		{9, 9},
		{-1, 5},
		{20, 25},
	} {
		_, err := svc.CreateSlots(context.Background(), 1, time.Now(), tc.start, tc.end)
		require.Equal(t, ErrBadRange, Code(err), "range %d-%d", tc.start, tc.end)
	}
}

func TestCreateSlots_FieldNotFound(t *testing.T) {
	svc := New(&slotRepoMock{}, existingField(1))

	_, err := svc.CreateSlots(context.Background(), 2, time.Now(), 9, 12)
	require.Equal(t, ErrFieldNotFound, Code(err))
}

func TestFieldSlots(t *testing.T) {
	slots := &slotRepoMock{
		listFn: func(ctx context.Context, fieldID int64) ([]model.TimeSlot, error) {
			return []model.TimeSlot{{ID: 1, FieldID: fieldID}, {ID: 2, FieldID: fieldID}, {ID: 3, FieldID: fieldID}}, nil
		},
	}
	svc := New(slots, existingField(1))

	out, err := svc.FieldSlots(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, out.Slots, 3)
	require.Equal(t, "Court A", out.Name)
}

func TestFieldSlots_FieldNotFound(t *testing.T) {
	svc := New(&slotRepoMock{}, existingField(1))

	_, err := svc.FieldSlots(context.Background(), 404)
	require.Equal(t, ErrFieldNotFound, Code(err))
}
