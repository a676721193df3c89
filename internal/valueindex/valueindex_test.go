package valueindex

import "testing"

func TestFindKnownAndAbsentValues(t *testing.T) {
	input := []uint64{2, 2, 2, 5, 5, 9, 9, 9, 9}
	vi := Build(input, func(v uint64) uint64 { return v })

	cases := []struct {
		value uint64
		want  int
	}{
		{2, 0},
		{5, 3},
		{9, 5},
		{3, len(input)}, // absent, between runs
		{100, len(input)},
	}
	for _, tc := range cases {
		if got := vi.Find(tc.value); got != tc.want {
			t.Errorf("Find(%d) = %d, want %d", tc.value, got, tc.want)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	vi := Build([]uint64(nil), func(v uint64) uint64 { return v })
	if got := vi.Find(1); got != 0 {
		t.Fatalf("Find on empty input = %d, want 0", got)
	}
}

type record struct {
	ID  uint64
	Tag string
}

func TestGetterProjection(t *testing.T) {
	input := []record{{1, "a"}, {1, "b"}, {3, "c"}, {3, "d"}, {3, "e"}}
	vi := Build(input, func(r record) uint64 { return r.ID })
	if got := vi.Find(1); got != 0 {
		t.Errorf("Find(1) = %d, want 0", got)
	}
	if got := vi.Find(3); got != 2 {
		t.Errorf("Find(3) = %d, want 2", got)
	}
	if got := vi.Find(2); got != len(input) {
		t.Errorf("Find(2) = %d, want %d", got, len(input))
	}
}
