package entity

import (
	"sync"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func TestNewSuccessResult(t *testing.T) {
	t.Parallel()

	t.Run("lifts numeric fields from object payload", func(t *testing.T) {
		t.Parallel()
		payload := map[string]any{"total_points": 10.0, "last_24h_points": 1.5, "rank": "gold"}
		r := NewSuccessResult("addr", payload)

		require.True(t, r.OK())
		require.NotNil(t, r.TotalPoints)
		require.NotNil(t, r.Last24hPoints)
		assert.InDelta(t, 10.0, *r.TotalPoints, 0)
		assert.InDelta(t, 1.5, *r.Last24hPoints, 0)
		assert.Equal(t, payload, r.Payload)
	})

	t.Run("leaves fields nil when absent or not numeric", func(t *testing.T) {
		t.Parallel()
		r := NewSuccessResult("addr", map[string]any{"total_points": "ten"})
		assert.True(t, r.OK())
		assert.Nil(t, r.TotalPoints)
		assert.Nil(t, r.Last24hPoints)
	})

	t.Run("accepts non-object payloads", func(t *testing.T) {
		t.Parallel()
		r := NewSuccessResult("addr", []any{1.0, 2.0})
		assert.True(t, r.OK())
		assert.Nil(t, r.TotalPoints)
	})
}

func TestNewErrorResult(t *testing.T) {
	t.Parallel()
	r := NewErrorResult("addr", "Failed for addr")
	assert.False(t, r.OK())
	assert.Equal(t, "Failed for addr", r.Error)
	assert.Nil(t, r.Payload)
}

func TestFetchResultField(t *testing.T) {
	t.Parallel()
	r := NewSuccessResult("addr", map[string]any{"total_points": "ten", "rank": 3.0, "last_24h_points": nil})

	v, ok := r.Field(TotalPointsField)
	assert.True(t, ok)
	assert.Equal(t, "ten", v)

	v, ok = r.Field(Last24hPointsField)
	assert.True(t, ok, "null is present")
	assert.Nil(t, v)

	_, ok = r.Field("missing")
	assert.False(t, ok)
	_, ok = NewErrorResult("addr", "boom").Field(TotalPointsField)
	assert.False(t, ok)
	_, ok = NewSuccessResult("addr", "plain").Field(TotalPointsField)
	assert.False(t, ok)
}

func TestFetchResultStatusMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     FetchResult
		want   string
		wantOK bool
	}{
		{"success", NewSuccessResult("a", map[string]any{"total_points": 1.0}), "", true},
		{"request failed", NewErrorResult("a", "Failed for a"), "Failed for a", false},
		{"body error string", NewSuccessResult("a", map[string]any{"error": "not found"}), "not found", true},
		{"body error number", NewSuccessResult("a", map[string]any{"error": 404.0}), "404", true},
		{"body error empty", NewSuccessResult("a", map[string]any{"error": ""}), "", true},
		{"body error false", NewSuccessResult("a", map[string]any{"error": false}), "", true},
		{"body error null", NewSuccessResult("a", map[string]any{"error": nil}), "", true},
		{"non-object body", NewSuccessResult("a", []any{"error"}), "", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.in.StatusMessage())
			assert.Equal(t, tt.wantOK, tt.in.OK())
		})
	}
}

func TestFetchResultJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NewSuccessResult("a", map[string]any{"total_points": 5.0, "rank": 2.0}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"address":"a","data":{"total_points":5,"rank":2},"total_points":5}`, string(data))

	data, err = json.Marshal(NewErrorResult("b", "Failed for b"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"address":"b","error":"Failed for b"}`, string(data))
}

func TestResultSet(t *testing.T) {
	t.Parallel()

	t.Run("keeps insertion order", func(t *testing.T) {
		t.Parallel()
		s := NewResultSet()
		s.Set(NewErrorResult("c", "x"))
		s.Set(NewErrorResult("a", "x"))
		s.Set(NewErrorResult("b", "x"))

		assert.Equal(t, []string{"c", "a", "b"}, Addresses(walletsOf(s.Results())))
		assert.Equal(t, 3, s.Len())
	})

	t.Run("overwrites repeated address in place", func(t *testing.T) {
		t.Parallel()
		s := NewResultSet()
		s.Set(NewErrorResult("a", "first"))
		s.Set(NewErrorResult("b", "x"))
		s.Set(NewSuccessResult("a", map[string]any{"total_points": 3.0}))

		require.Equal(t, 2, s.Len())
		results := s.Results()
		assert.Equal(t, "a", results[0].Address)
		assert.True(t, results[0].OK())
		assert.Empty(t, results[0].Error)
	})

	t.Run("reports success", func(t *testing.T) {
		t.Parallel()
		s := NewResultSet()
		s.Set(NewErrorResult("a", "x"))
		assert.False(t, s.HasSuccess())
		s.Set(NewSuccessResult("b", map[string]any{}))
		assert.True(t, s.HasSuccess())
	})
}

func TestBatch(t *testing.T) {
	t.Parallel()

	t.Run("trims pending per resolved address", func(t *testing.T) {
		t.Parallel()
		b := NewBatch("b1", []Wallet{{Address: "a"}, {Address: "b"}, {Address: "a"}})

		snap := b.Snapshot()
		assert.Equal(t, []string{"a", "b", "a"}, snap.Pending)
		assert.True(t, snap.Running())
		assert.Empty(t, snap.Results)

		b.Resolve(NewErrorResult("a", "x"))
		assert.Equal(t, []string{"b", "a"}, b.Snapshot().Pending)
		assert.False(t, b.HasSuccess())

		b.Resolve(NewErrorResult("b", "x"))
		b.Resolve(NewSuccessResult("a", map[string]any{}))
		snap = b.Snapshot()
		assert.Empty(t, snap.Pending)
		require.Len(t, snap.Results, 2)
		assert.True(t, snap.Results[0].OK())
		assert.True(t, b.HasSuccess())
	})

	t.Run("finish is terminal", func(t *testing.T) {
		t.Parallel()
		b := NewBatch("b2", []Wallet{{Address: "a"}})
		b.Finish(BatchCancelled)
		b.Finish(BatchDone)

		snap := b.Snapshot()
		assert.Equal(t, BatchCancelled, snap.Status)
		assert.Empty(t, snap.Pending)
		assert.NotNil(t, snap.FinishedAt)
	})

	t.Run("snapshot is detached from later writes", func(t *testing.T) {
		t.Parallel()
		b := NewBatch("b3", []Wallet{{Address: "a"}, {Address: "b"}})
		before := b.Snapshot()
		b.Resolve(NewErrorResult("a", "x"))

		assert.Equal(t, []string{"a", "b"}, before.Pending)
		assert.Empty(t, before.Results)
	})

	t.Run("concurrent reads during writes", func(t *testing.T) {
		t.Parallel()
		wallets := make([]Wallet, 50)
		for i := range wallets {
			wallets[i] = Wallet{Address: string(rune('A' + i))}
		}
		b := NewBatch("b4", wallets)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, w := range wallets {
				b.Resolve(NewErrorResult(w.Address, "x"))
			}
			b.Finish(BatchDone)
		}()
		for b.Status() == BatchRunning {
			_ = b.Snapshot()
		}
		wg.Wait()
		assert.Len(t, b.Snapshot().Results, 50)
	})
}

func TestSessionLatch(t *testing.T) {
	t.Parallel()
	s := NewSession("s1")

	assert.False(t, s.HasFetchedOnce())
	assert.False(t, s.ModalVisible())

	assert.True(t, s.LatchFirstSuccess())
	assert.True(t, s.ModalVisible())

	s.DismissModal()
	assert.False(t, s.ModalVisible())

	assert.False(t, s.LatchFirstSuccess())
	assert.False(t, s.ModalVisible())
	assert.True(t, s.HasFetchedOnce())
}

func walletsOf(results []FetchResult) []Wallet {
	out := make([]Wallet, 0, len(results))
	for _, r := range results {
		out = append(out, Wallet{Address: r.Address})
	}
	return out
}
