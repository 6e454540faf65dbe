package arena

import "testing"

func TestAllocGrows(t *testing.T) {
	t.Parallel()
	a := NewArena(8)
	first := a.Alloc(4)
	second := a.Alloc(8) // bigger than remaining space in the first chunk
	if len(first) != 4 || len(second) != 8 {
		t.Fatalf("unexpected lengths: %d %d", len(first), len(second))
	}
	if len(a.chunks) < 2 {
		t.Fatalf("expected allocator to grow into a second chunk, got %d chunks", len(a.chunks))
	}
}

func TestCopyStringIndependentOfSource(t *testing.T) {
	t.Parallel()
	a := NewArena(0)
	src := []byte("hello")
	copied := a.CopyString(string(src))
	src[0] = 'X'
	if copied != "hello" {
		t.Fatalf("arena copy should be independent of source mutation, got %q", copied)
	}
}

func TestResetReusesFirstChunk(t *testing.T) {
	t.Parallel()
	a := NewArena(16)
	a.Alloc(4)
	a.Alloc(32)
	if len(a.chunks) < 2 {
		t.Fatalf("expected growth before reset")
	}
	a.Reset()
	if a.used != 0 {
		t.Fatalf("expected used=0 after reset, got %d", a.used)
	}
	if len(a.chunks) != 1 {
		t.Fatalf("expected a single chunk after reset, got %d", len(a.chunks))
	}
}

func TestBytesAccounting(t *testing.T) {
	t.Parallel()
	a := NewArena(8)
	a.Alloc(8)
	a.Alloc(4)
	if got := a.Bytes(); got != 12 {
		t.Fatalf("Bytes() = %d, want 12", got)
	}
}

func TestPoolNewIsZeroedAndIndependent(t *testing.T) {
	t.Parallel()
	type pair struct {
		X, Y int
		Next *pair
	}
	pool := NewPool[pair](4)
	p := pool.New()
	if p.X != 0 || p.Y != 0 || p.Next != nil {
		t.Fatalf("p = %+v, want zeroed", *p)
	}
	p.X = 7
	p.Next = p
	q := pool.New()
	if q.X != 0 || q.Next != nil {
		t.Fatalf("q = %+v, want a distinct zeroed allocation", *q)
	}
	if p.Next != p {
		t.Fatalf("p.Next was clobbered by a later allocation from the same slab")
	}
}

func TestPoolGrowsAcrossSlabs(t *testing.T) {
	t.Parallel()
	pool := NewPool[int](2)
	ptrs := make([]*int, 0, 5)
	for i := 0; i < 5; i++ {
		p := pool.New()
		*p = i
		ptrs = append(ptrs, p)
	}
	for i, p := range ptrs {
		if *p != i {
			t.Fatalf("ptrs[%d] = %d, want %d (a slab growth must have clobbered an earlier pointer)", i, *p, i)
		}
	}
}

func TestBufferGrowsAcrossChunks(t *testing.T) {
	t.Parallel()
	a := NewArena(8)
	b := NewBuffer(a)
	for i := 0; i < 20; i++ {
		b.WriteString("0123456789")
	}
	if got := string(b.Bytes()); len(got) != 200 {
		t.Fatalf("Len = %d, want 200", len(got))
	}
	if b.Len() != 200 {
		t.Fatalf("Len() = %d, want 200", b.Len())
	}
}
