package surface

import "testing"

var _ Surface = (*Buffer)(nil)

func TestBufferChar(t *testing.T) {
	b := NewBuffer("añb")
	testCases := []struct {
		offset int
		want   rune
		ok     bool
	}{
		{0, 'a', true},
		{1, 'ñ', true},
		{2, 'b', true},
		{3, 0, false},
		{-1, 0, false},
	}
	for _, tc := range testCases {
		got, ok := b.Char(tc.offset)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Char(%d) = %q, %v; want %q, %v", tc.offset, got, ok, tc.want, tc.ok)
		}
	}
}

func TestBufferReplace(t *testing.T) {
	testCases := []struct {
		content     string
		text        string
		start, end  int
		expected    string
		description string
	}{
		{"The ca", "caterpillar", 4, 6, "The caterpillar", "replace word at end"},
		{"The ca here", "cat", 4, 6, "The cat here", "replace word in the middle"},
		{"abc", "X", 1, 1, "aXbc", "insert"},
		{"abc", "", 0, 3, "", "delete all"},
		{"abc", "Z", 5, 2, "abZ", "reversed and out of range offsets are clamped"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			b := NewBuffer(tc.content)
			b.Replace(tc.text, tc.start, tc.end)
			if got := b.Content(); got != tc.expected {
				t.Errorf("Content() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestBufferReplaceShiftsSelection(t *testing.T) {
	b := NewBuffer("one two three")
	b.SetSelection(8, 13) // "three"
	b.Replace("2", 4, 7)  // "two" -> "2"
	if sel := b.Selection(); sel != (Range{6, 11}) {
		t.Errorf("selection after replace before it = %+v, want {6 11}", sel)
	}

	SetCaret(b, 1)
	b.Replace("ONE", 0, 3)
	if c := Caret(b); c != 3 {
		t.Errorf("caret inside replaced range = %d, want 3", c)
	}
}

func TestBufferHelpers(t *testing.T) {
	b := NewBuffer("abc")
	Insert(b, "-", 1)
	if b.Content() != "a-bc" {
		t.Errorf("Insert: %q", b.Content())
	}
	ReplaceAll(b, "xyz")
	if b.Content() != "xyz" {
		t.Errorf("ReplaceAll: %q", b.Content())
	}
	b.SetSelection(9, -4)
	if sel := b.Selection(); sel != (Range{0, 3}) {
		t.Errorf("SetSelection clamp: %+v", sel)
	}
}

func TestBufferOnModify(t *testing.T) {
	b := NewBuffer("abc")
	calls := 0
	remove := b.OnModify(func() { calls++ })

	b.Replace("X", 0, 1)
	if calls != 1 {
		t.Fatalf("calls = %d after change, want 1", calls)
	}

	// same value: no notification
	b.Replace("X", 0, 1)
	if calls != 1 {
		t.Errorf("calls = %d after no-op replace, want 1", calls)
	}

	remove()
	b.Replace("Y", 0, 1)
	if calls != 1 {
		t.Errorf("calls = %d after remove, want 1", calls)
	}
}

func TestBufferListenerRemovesItself(t *testing.T) {
	b := NewBuffer("")
	var order []string
	var removeA func()
	removeA = b.OnModify(func() {
		order = append(order, "a")
		removeA()
	})
	b.OnModify(func() { order = append(order, "b") })

	b.Replace("1", 0, 0)
	b.Replace("2", 0, 0)
	if got := len(order); got != 3 || order[0] != "a" || order[1] != "b" || order[2] != "b" {
		t.Errorf("order = %v, want [a b b]", order)
	}
}

func TestBufferCharCoords(t *testing.T) {
	b := NewBuffer("ab\n\tc世d")
	b.SetBounds(Rect{X: 10, Y: 20, Width: 200, Height: 100})
	b.SetMetrics(Metrics{CellWidth: 8, LineHeight: 16})

	testCases := []struct {
		offset      int
		expected    Point
		description string
	}{
		{0, Point{10, 20}, "origin"},
		{2, Point{26, 20}, "end of first line"},
		{3, Point{10, 36}, "start of second line"},
		{4, Point{10 + 4*8, 36}, "after tab"},
		{5, Point{10 + 5*8, 36}, "before wide rune"},
		{6, Point{10 + 7*8, 36}, "after wide rune"},
		{99, Point{10 + 8*8, 36}, "clamped to end"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := b.CharCoords(tc.offset); got != tc.expected {
				t.Errorf("CharCoords(%d) = %+v, want %+v", tc.offset, got, tc.expected)
			}
		})
	}
	if b.Bounds().Right() != 210 {
		t.Errorf("Right() = %d", b.Bounds().Right())
	}
}

func TestBufferTypingAdvancesCaret(t *testing.T) {
	b := NewBuffer("The c")
	var seen []int
	b.OnModify(func() { seen = append(seen, Caret(b)) })

	Insert(b, "a", Caret(b))
	Insert(b, "t", Caret(b))
	if b.Content() != "The cat" {
		t.Errorf("content = %q", b.Content())
	}
	// listeners already see the advanced caret
	if len(seen) != 2 || seen[0] != 6 || seen[1] != 7 {
		t.Errorf("carets seen by listeners = %v, want [6 7]", seen)
	}
}

func TestBufferOffsetAt(t *testing.T) {
	b := NewBuffer("ab\n\tc日d\nlast")

	testCases := []struct {
		description string
		line, col   int
		want        int
	}{
		{"origin", 0, 0, 0},
		{"past line end", 0, 9, 2},
		{"inside tab", 1, 2, 3},
		{"after tab", 1, 4, 4},
		{"left half of wide rune", 1, 5, 5},
		{"right half of wide rune", 1, 6, 5},
		{"after wide rune", 1, 7, 6},
		{"last line", 2, 2, 10},
		{"below content", 7, 0, 12},
		{"negative", -1, -1, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := b.OffsetAt(tc.line, tc.col); got != tc.want {
				t.Errorf("OffsetAt(%d, %d) = %d, want %d", tc.line, tc.col, got, tc.want)
			}
		})
	}

	for off := 0; off <= b.Len(); off++ {
		if r, ok := b.Char(off); ok && r == '\n' {
			continue
		}
		line, col := b.LineCol(off)
		if got := b.OffsetAt(line, col); got != off {
			t.Errorf("OffsetAt(LineCol(%d)) = %d", off, got)
		}
	}
}
