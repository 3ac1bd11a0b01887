package cache

import (
	"fmt"
	"sync"
	"testing"
)

func testKey(n int) Key {
	return Key{Schema: 2, Version: "v-test", Hash: fmt.Sprintf("hash%04d", n), Mode: "cpu"}
}

func TestKeyString(t *testing.T) {
	k := Key{Schema: 2, Version: "dxf-parse-v3", Hash: "abc123", Mode: "cpu"}
	if got, want := k.String(), "2:dxf-parse-v3:abc123:cpu"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := k.Filename(), "abc123-cpu.json"; got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestHashBytes(t *testing.T) {
	a := HashBytes([]byte("hello"))
	b := HashBytes([]byte("hello"))
	c := HashBytes([]byte("hello!"))

	if a != b {
		t.Errorf("HashBytes not deterministic: %q vs %q", a, b)
	}
	if a == c {
		t.Error("HashBytes collision on different inputs")
	}
	if len(a) != 64 {
		t.Errorf("len(HashBytes()) = %d, want 64 hex chars", len(a))
	}
}

func TestMemoryPutGet(t *testing.T) {
	m := NewMemory[string](1 << 20)

	if _, ok := m.Get(testKey(1)); ok {
		t.Error("Get() on empty cache = hit, want miss")
	}

	m.Put(testKey(1), "one", 100)
	v, ok := m.Get(testKey(1))
	if !ok || v != "one" {
		t.Errorf("Get() = %q, %v, want %q, true", v, ok, "one")
	}

	// Replace under the same key.
	m.Put(testKey(1), "uno", 150)
	v, _ = m.Get(testKey(1))
	if v != "uno" {
		t.Errorf("Get() after replace = %q, want %q", v, "uno")
	}

	st := m.Stats()
	if st.Entries != 1 {
		t.Errorf("Entries = %d, want 1", st.Entries)
	}
	if st.Bytes != 150 {
		t.Errorf("Bytes = %d, want 150 (replace must not double count)", st.Bytes)
	}
}

func TestMemoryEvictionOrder(t *testing.T) {
	m := NewMemory[int](300)

	m.Put(testKey(1), 1, 100)
	m.Put(testKey(2), 2, 100)
	m.Put(testKey(3), 3, 100)

	// Inserting a fourth evicts the oldest entry only.
	m.Put(testKey(4), 4, 100)

	if _, ok := m.Get(testKey(1)); ok {
		t.Error("key 1 should have been evicted first")
	}
	for _, n := range []int{2, 3, 4} {
		if _, ok := m.Get(testKey(n)); !ok {
			t.Errorf("key %d evicted, want kept", n)
		}
	}

	st := m.Stats()
	if st.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", st.Evictions)
	}
	if st.Bytes != 300 {
		t.Errorf("Bytes = %d, want 300", st.Bytes)
	}
}

func TestMemoryGetProtectsFromEviction(t *testing.T) {
	m := NewMemory[int](300)

	m.Put(testKey(1), 1, 100)
	m.Put(testKey(2), 2, 100)
	m.Put(testKey(3), 3, 100)

	// Touch the oldest entry, making key 2 the eviction candidate.
	m.Get(testKey(1))
	m.Put(testKey(4), 4, 100)

	if _, ok := m.Get(testKey(1)); !ok {
		t.Error("key 1 was touched, want kept")
	}
	if _, ok := m.Get(testKey(2)); ok {
		t.Error("key 2 should have been evicted")
	}
}

func TestMemoryOversizedEntry(t *testing.T) {
	m := NewMemory[int](100)

	m.Put(testKey(1), 1, 50)
	// An entry above the whole budget cannot stay, and it still evicts the
	// rest on the way through.
	m.Put(testKey(2), 2, 1000)

	if _, ok := m.Get(testKey(2)); ok {
		t.Error("oversized entry should not remain cached")
	}
	st := m.Stats()
	if st.Entries != 0 {
		t.Errorf("Entries = %d, want 0", st.Entries)
	}
	if st.Bytes != 0 {
		t.Errorf("Bytes = %d, want 0", st.Bytes)
	}
}

func TestMemoryMinimumSize(t *testing.T) {
	m := NewMemory[string](1 << 20)

	// Zero and negative sizes count as one byte.
	m.Put(testKey(1), "a", 0)
	m.Put(testKey(2), "b", -5)

	st := m.Stats()
	if st.Bytes != 2 {
		t.Errorf("Bytes = %d, want 2", st.Bytes)
	}
}

func TestMemoryStatsCounters(t *testing.T) {
	m := NewMemory[int](1 << 20)

	m.Get(testKey(1))
	m.Put(testKey(1), 1, 10)
	m.Get(testKey(1))
	m.Get(testKey(2))

	st := m.Stats()
	if st.Hits != 1 {
		t.Errorf("Hits = %d, want 1", st.Hits)
	}
	if st.Misses != 2 {
		t.Errorf("Misses = %d, want 2", st.Misses)
	}
	if st.MaxBytes != 1<<20 {
		t.Errorf("MaxBytes = %d, want %d", st.MaxBytes, 1<<20)
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := NewMemory[int](10 << 10)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				k := testKey(i % 32)
				m.Put(k, g*1000+i, 64)
				m.Get(k)
			}
		}(g)
	}
	wg.Wait()

	st := m.Stats()
	if st.Bytes > st.MaxBytes {
		t.Errorf("Bytes = %d exceeds MaxBytes = %d after concurrent churn", st.Bytes, st.MaxBytes)
	}
	if st.Entries > 32 {
		t.Errorf("Entries = %d, want <= 32", st.Entries)
	}
}

func TestMemoryBudget(t *testing.T) {
	const gib = uint64(1) << 30
	// 16 GiB * 0.85 is non-integral, so the int64 truncation must happen at
	// run time; as a constant conversion it would not compile.
	fracShare := float64(16*gib) * 0.85

	tests := []struct {
		name     string
		totalRAM uint64
		fraction float64
		floorMB  int
		want     int64
	}{
		{
			name:     "fraction share wins on big machines",
			totalRAM: 16 * gib,
			fraction: 0.85,
			floorMB:  512,
			want:     int64(fracShare),
		},
		{
			name:     "floor wins on small machines",
			totalRAM: 512 << 20,
			fraction: 0.85,
			floorMB:  512,
			want:     512 << 20,
		},
		{
			name:     "fraction clamped up",
			totalRAM: 100 * gib,
			fraction: 0.001,
			floorMB:  512,
			want:     int64(float64(100*gib) * MinRAMFraction),
		},
		{
			name:     "fraction clamped down",
			totalRAM: 10 * gib,
			fraction: 2.5,
			floorMB:  512,
			want:     int64(float64(10*gib) * MaxRAMFraction),
		},
		{
			name:     "floor clamped up",
			totalRAM: 0,
			fraction: 0.85,
			floorMB:  1,
			want:     int64(MinFloorMB) << 20,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MemoryBudget(tt.totalRAM, tt.fraction, tt.floorMB); got != tt.want {
				t.Errorf("MemoryBudget(%d, %v, %d) = %d, want %d",
					tt.totalRAM, tt.fraction, tt.floorMB, got, tt.want)
			}
		})
	}
}

func BenchmarkMemoryGet(b *testing.B) {
	m := NewMemory[int](1 << 20)
	for i := 0; i < 64; i++ {
		m.Put(testKey(i), i, 128)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Get(testKey(i % 64))
	}
}

func BenchmarkMemoryPut(b *testing.B) {
	m := NewMemory[int](1 << 20)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Put(testKey(i%256), i, 128)
	}
}
