package tok

import "testing"

func Test_Env_DefineAndGet(t *testing.T) {
	e := NewEnv(nil)
	e.Define("x", Num(1))
	v, ok := e.Get("x")
	if !ok || v.Data.(float64) != 1 {
		t.Fatalf("want 1, got %#v (ok=%v)", v, ok)
	}
	if _, ok := e.Get("missing"); ok {
		t.Fatal("missing name must not resolve")
	}
}

func Test_Env_Define_Rebinds(t *testing.T) {
	e := NewEnv(nil)
	e.Define("x", Num(1))
	e.Define("x", Str("two"))
	v, _ := e.Get("x")
	if v.Tag != VTStr || v.Data.(string) != "two" {
		t.Fatalf("redefinition must overwrite, got %#v", v)
	}
}

func Test_Env_GetAt_WalksExactHops(t *testing.T) {
	root := NewEnv(nil)
	root.Define("x", Str("root"))
	mid := NewEnv(root)
	mid.Define("x", Str("mid"))
	leaf := NewEnv(mid)

	if v, _ := leaf.GetAt(1, "x"); v.Data.(string) != "mid" {
		t.Fatalf("1 hop: want mid, got %#v", v)
	}
	if v, _ := leaf.GetAt(2, "x"); v.Data.(string) != "root" {
		t.Fatalf("2 hops: want root, got %#v", v)
	}
	// GetAt does not search: the name must live exactly there
	if _, ok := leaf.GetAt(0, "x"); ok {
		t.Fatal("leaf frame has no x, GetAt(0) must miss")
	}
}

func Test_Env_AssignAt_RequiresExistingBinding(t *testing.T) {
	root := NewEnv(nil)
	root.Define("x", Num(1))
	leaf := NewEnv(root)

	if !leaf.AssignAt(1, "x", Num(2)) {
		t.Fatal("assign to existing binding must succeed")
	}
	if v, _ := root.Get("x"); v.Data.(float64) != 2 {
		t.Fatalf("assignment must mutate the root frame, got %#v", v)
	}
	if leaf.AssignAt(0, "x", Num(3)) {
		t.Fatal("assign must not create a binding in the wrong frame")
	}
}

func Test_Env_Assign_FrameLocalOnly(t *testing.T) {
	root := NewEnv(nil)
	root.Define("x", Num(1))
	leaf := NewEnv(root)
	if leaf.Assign("x", Num(9)) {
		t.Fatal("Assign must not walk parents")
	}
}

func Test_Env_SharedFrame_VisibleThroughBothClosures(t *testing.T) {
	// two children of one frame observe each other's writes to it
	shared := NewEnv(nil)
	shared.Define("n", Num(0))
	a := NewEnv(shared)
	b := NewEnv(shared)

	a.AssignAt(1, "n", Num(5))
	if v, _ := b.GetAt(1, "n"); v.Data.(float64) != 5 {
		t.Fatalf("shared frame write not visible, got %#v", v)
	}
}
