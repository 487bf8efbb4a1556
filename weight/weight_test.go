package weight

import (
	"testing"

	"github.com/npillmayer/wrex"
	"github.com/npillmayer/wrex/rig"
)

func sym(r rune) wrex.Symbol {
	return wrex.Symbol{Pos: 3, R: r}
}

func TestLiteral(t *testing.T) {
	f := Literals[bool]('a', rig.Bool{})
	if !f.Call(sym('a')) {
		t.Errorf("expected 'a' to match")
	}
	if f.Call(sym('b')) {
		t.Errorf("expected 'b' not to match")
	}
}

func TestClassCountsDuplicates(t *testing.T) {
	rg := rig.Int{}
	members := []Func[int]{Literals[int]('a', rg), Literals[int]('a', rg), Literals[int]('b', rg)}
	c := NewClass[int](members, rg)
	if w := c.Call(sym('a')); w != 2 {
		t.Errorf("expected 'a' to match twice, weight is %d", w)
	}
	if w := c.Call(sym('c')); w != 0 {
		t.Errorf("expected 'c' not to match, weight is %d", w)
	}
}

func TestCaseFold(t *testing.T) {
	f := Fold[bool](Literals[bool]('x', rig.Bool{}))
	for _, r := range []rune{'x', 'X'} {
		if !f.Call(sym(r)) {
			t.Errorf("expected %q to match case insensitive", r)
		}
	}
}

func TestInvert(t *testing.T) {
	rg := rig.Bit{}
	f := Not[uint8](Literals[uint8]('a', rg), rg)
	if f.Call(sym('a')) != 0 || f.Call(sym('z')) != 1 {
		t.Errorf("inversion does not flip zero and one")
	}
	// for a counting rig, any non-zero weight inverts to zero
	cnt := rig.Int{}
	c := NewClass[int]([]Func[int]{Literals[int]('a', cnt), Literals[int]('a', cnt)}, cnt)
	inv := Not[int](c, cnt)
	if inv.Call(sym('a')) != 0 || inv.Call(sym('b')) != 1 {
		t.Errorf("inversion for counting rig should be a dichotomy")
	}
}

func TestAllButNewline(t *testing.T) {
	f := NewAllButNewline[bool](rig.Bool{})
	if !f.Call(sym('q')) || f.Call(sym('\n')) {
		t.Errorf("'.' should match everything except newline")
	}
	p := NewAllButNewline[int](rig.Leftmost{})
	if w := p.Call(sym('q')); w != 3 {
		t.Errorf("'.' should produce position 3 for positional rig, is %d", w)
	}
}

func TestPositions(t *testing.T) {
	rg := rig.LeftmostLongest{}
	f := Positions[rig.Range]('a', rg)
	if r := f.Call(sym('a')); r != (rig.Range{Start: 3, End: 3}) {
		t.Errorf("expected range (3,3), got %v", r)
	}
	if r := f.Call(sym('b')); r != rig.RangeZero {
		t.Errorf("expected zero for non-matching symbol, got %v", r)
	}
	// Bool is not an AutoMatcher, Positions degrades to Literals
	if _, ok := Positions[bool]('a', rig.Bool{}).(Literal[bool]); !ok {
		t.Errorf("expected plain literal for non-positional rig")
	}
}

func TestConst(t *testing.T) {
	rg := rig.Int{}
	if One[int](rg).Call(sym('x')) != 1 || Zero[int](rg).Call(sym('x')) != 0 {
		t.Errorf("constant producers broken")
	}
}
