package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewMemoryStore verifies that a new store is empty and usable.
func TestNewMemoryStore(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()

	require.NotNil(t, store)
	assert.Zero(t, store.Length())
	assert.Empty(t, store.GetAllKeys())
	assert.Empty(t, store.GetAllItems())
}

// TestMemoryStore_SetGet_Roundtrip validates that every value shape round-trips.
func TestMemoryStore_SetGet_Roundtrip(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		key   string
		value Value
	}{
		{name: "string", key: "s", value: NewScalar("value")},
		{name: "number", key: "n", value: NewScalar(int64(0))},
		{name: "empty key", key: "", value: NewScalar(true)},
		{name: "null", key: "null", value: Null{}},
		{name: "array", key: "arr", value: NewArray(NewScalar("a"), NewScalar("b"))},
		{name: "object", key: "obj", value: obj("strings", []any{"A", "B"}, "objects", obj("k", "v"))},
	}

	store := NewMemoryStore()

	for _, tc := range testCases {
		store.SetItem(tc.key, tc.value)
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.True(t, Equal(tc.value, store.GetItem(tc.key)))
		})
	}
}

func TestMemoryStore_SetItem_NilStoresUndefined(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.SetItem("u", nil)

	got := store.GetItem("u")
	require.NotNil(t, got, "the key exists, so the lookup is not absent")
	assert.Equal(t, KindUndefined, got.Kind())
	assert.Equal(t, 1, store.Length())
}

func TestMemoryStore_GetItem_Missing(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewMemoryStore().GetItem("nope"))
}

func TestMemoryStore_InsertionOrder(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.SetItem("b", NewScalar(1))
	store.SetItem("a", NewScalar(2))
	store.SetItem("c", NewScalar(3))
	store.SetItem("b", NewScalar(4)) // overwrite keeps position

	assert.Equal(t, []string{"b", "a", "c"}, store.GetAllKeys())

	store.RemoveItem("b")
	store.SetItem("b", NewScalar(5)) // re-insert appends

	assert.Equal(t, []string{"a", "c", "b"}, store.GetAllKeys())

	key, ok := store.Key(2)
	require.True(t, ok)
	assert.Equal(t, "b", key)

	items := store.GetAllItems()
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].Key)
	assert.Equal(t, NewScalar(2), items[0].Value)
}

func TestMemoryStore_Key_OutOfRange(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()

	for _, n := range []int{-1, 0, 1} {
		_, ok := store.Key(n)
		assert.Falsef(t, ok, "Key(%d) on empty store", n)
	}

	store.SetItem("only", NewScalar(1))

	for _, n := range []int{-5, -1, 1, 2} {
		_, ok := store.Key(n)
		assert.Falsef(t, ok, "Key(%d) with one entry", n)
	}
}

func TestMemoryStore_RemoveItem_Idempotent(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.SetItem("number_key", NewScalar(int64(0)))

	store.RemoveItem("number_key")
	store.RemoveItem("number_key")
	store.RemoveItem("never-existed")

	assert.Nil(t, store.GetItem("number_key"))
	assert.Zero(t, store.Length())
}

func TestMemoryStore_Clear(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.SetItem("long_obj_key", obj("a", int64(1)))
	store.SetItem("string_key", NewScalar("value"))

	assert.Equal(t, 2, store.Clear())

	assert.Zero(t, store.Length())
	assert.Nil(t, store.GetItem("long_obj_key"))
	assert.Nil(t, store.GetItem("string_key"))

	_, ok := store.Key(0)
	assert.False(t, ok)

	assert.Zero(t, store.Clear())

	store.SetItem("fresh", NewScalar(1))
	assert.Equal(t, []string{"fresh"}, store.GetAllKeys())
}

func TestMemoryStore_MultiSet_MultiGet(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.MultiSet([]Entry{
		{Key: "a", Value: NewScalar(int64(1))},
		{Key: "b", Value: NewScalar(int64(2))},
	})

	got := store.MultiGet([]string{"a", "b", "c"})
	require.Len(t, got, 3)

	assert.Equal(t, Entry{Key: "a", Value: NewScalar(int64(1))}, got[0])
	assert.Equal(t, Entry{Key: "b", Value: NewScalar(int64(2))}, got[1])
	assert.Equal(t, Entry{Key: "c"}, got[2], "missing keys are absent")
}

func TestMemoryStore_MultiGet_Duplicates(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.SetItem("a", NewScalar("x"))

	got := store.MultiGet([]string{"a", "a"})
	require.Len(t, got, 2)
	assert.Equal(t, got[0], got[1])
}

func TestMemoryStore_MultiSet_SkipsAbsentAndLaterWins(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.SetItem("kept", NewScalar("original"))

	store.MultiSet([]Entry{
		{Key: "dup", Value: NewScalar(1)},
		{Key: "kept", Value: Undefined{}},
		{Key: "skipped", Value: nil},
		{Key: "dup", Value: NewScalar(2)},
		{Key: "null", Value: Null{}},
	})

	assert.Equal(t, NewScalar("original"), store.GetItem("kept"))
	assert.Nil(t, store.GetItem("skipped"))
	assert.Equal(t, NewScalar(2), store.GetItem("dup"))
	assert.Equal(t, Null{}, store.GetItem("null"), "null is a value, not absence")
	assert.Equal(t, []string{"kept", "dup", "null"}, store.GetAllKeys())
}

func TestMemoryStore_MultiRemove(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.SetItem("a", NewScalar(1))
	store.SetItem("b", NewScalar(2))
	store.SetItem("c", NewScalar(3))

	store.MultiRemove([]string{"a", "missing", "c", "a"})

	assert.Equal(t, []string{"b"}, store.GetAllKeys())
}

func TestMemoryStore_MergeItem_Creates(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	patch := obj("x", int64(1))

	got, err := store.MergeItem("new", patch)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"x": int64(1)}, ToAny(got))
	assert.Equal(t, map[string]any{"x": int64(1)}, ToAny(store.GetItem("new")))
}

func TestMemoryStore_MergeItem_Combines(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.SetItem("k", obj("a", int64(1), "b", obj("c", int64(1))))

	got, err := store.MergeItem("k", obj("b", obj("d", int64(2)), "e", int64(3)))
	require.NoError(t, err)

	want := map[string]any{
		"a": int64(1),
		"b": map[string]any{"c": int64(1), "d": int64(2)},
		"e": int64(3),
	}

	assert.Equal(t, want, ToAny(got))
	assert.Equal(t, want, ToAny(store.GetItem("k")))
}

func TestMemoryStore_MergeItem_NotApplicable(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		existing Value
	}{
		{name: "string", existing: NewScalar("hello")},
		{name: "zero", existing: NewScalar(int64(0))},
		{name: "array", existing: NewArray(NewScalar(1))},
		{name: "null", existing: Null{}},
		{name: "undefined", existing: Undefined{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := NewMemoryStore()
			store.SetItem("k", tc.existing)

			got, err := store.MergeItem("k", obj("x", int64(1)))
			require.NoError(t, err)
			assert.Nil(t, got)
			assert.Equal(t, tc.existing, store.GetItem("k"), "stored value must be unchanged")
		})
	}
}

func TestMemoryStore_MergeItem_ReplacesArrays(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.SetItem("k", obj("items", []any{int64(1), int64(2)}))

	got, err := store.MergeItem("k", obj("items", []any{int64(3)}))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"items": []any{int64(3)}}, ToAny(got))
}

func TestMemoryStore_MergeItem_InvalidPatch(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		patch Value
	}{
		{name: "absent", patch: nil},
		{name: "null", patch: Null{}},
		{name: "undefined", patch: Undefined{}},
		{name: "array", patch: NewArray()},
		{name: "scalar", patch: NewScalar("text")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := NewMemoryStore()

			_, err := store.MergeItem("k", tc.patch)
			require.ErrorIs(t, err, ErrInvalidArgument)
			assert.Zero(t, store.Length(), "failed merge must not create the key")
		})
	}
}

func TestMemoryStore_MergeItem_KeepsSnapshotsAndPatchIntact(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()

	patch := obj("a", obj("b", int64(1)))
	first, err := store.MergeItem("k", patch)
	require.NoError(t, err)

	patchBefore := ToAny(patch)
	firstBefore := ToAny(first)

	second, err := store.MergeItem("k", obj("a", obj("c", int64(2))))
	require.NoError(t, err)

	assert.Equal(t, patchBefore, ToAny(patch), "patch must not be mutated by later merges")
	assert.Equal(t, firstBefore, ToAny(first), "earlier snapshot must not be mutated")
	assert.Equal(t, map[string]any{"a": map[string]any{"b": int64(1), "c": int64(2)}}, ToAny(second))
}

func TestMemoryStore_MultiMerge(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.SetItem("obj", obj("a", int64(1)))
	store.SetItem("text", NewScalar("hello"))

	results, err := store.MultiMerge([]Entry{
		{Key: "obj", Value: obj("b", int64(2))},
		{Key: "text", Value: obj("x", int64(1))},
		{Key: "fresh", Value: obj("y", int64(1))},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "obj", results[0].Key)
	assert.Equal(t, map[string]any{"a": int64(1), "b": int64(2)}, ToAny(results[0].Value))

	assert.Equal(t, "text", results[1].Key)
	assert.Nil(t, results[1].Value, "non-mergeable target yields absent")

	assert.Equal(t, "fresh", results[2].Key)
	assert.Equal(t, map[string]any{"y": int64(1)}, ToAny(results[2].Value))

	assert.Equal(t, NewScalar("hello"), store.GetItem("text"))
}

func TestMemoryStore_MultiMerge_RejectsMissingPatch(t *testing.T) {
	t.Parallel()

	for _, patch := range []Value{Undefined{}, nil} {
		store := NewMemoryStore()

		_, err := store.MultiMerge([]Entry{
			{Key: "a", Value: obj("v", int64(1))},
			{Key: "q", Value: patch},
		})
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.Zero(t, store.Length(), "no merge may run before validation finished")
	}
}

func TestMemoryStore_MultiMerge_InvalidPatchAbortsBatch(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.SetItem("a", obj("v", int64(1)))

	_, err := store.MultiMerge([]Entry{
		{Key: "a", Value: obj("v", int64(2))},
		{Key: "b", Value: NewArray()},
	})
	require.ErrorIs(t, err, ErrInvalidArgument)

	assert.Equal(t, map[string]any{"v": int64(1)}, ToAny(store.GetItem("a")), "no merge may run before validation finished")
	assert.Nil(t, store.GetItem("b"))
}

func TestMemoryStore_MultiMerge_SameKeyTwice(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()

	results, err := store.MultiMerge([]Entry{
		{Key: "k", Value: obj("a", int64(1))},
		{Key: "k", Value: obj("b", int64(2))},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, map[string]any{"a": int64(1), "b": int64(2)}, ToAny(store.GetItem("k")))
}
