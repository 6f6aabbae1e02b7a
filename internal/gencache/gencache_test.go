package gencache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestKey_Stable(t *testing.T) {
	a := Key("model-a", "sys", "body")
	b := Key("model-a", "sys", "body")
	if a != b {
		t.Error("identical requests must produce identical keys")
	}
	if Key("model-b", "sys", "body") == a {
		t.Error("model must be part of the key")
	}
	if Key("model-a", "sys2", "body") == a {
		t.Error("system prompt must be part of the key")
	}
}

func TestReadWrite(t *testing.T) {
	fc, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	key := Key("m", "s", "u")
	if _, ok := fc.Read(key, 0); ok {
		t.Fatal("read before write should miss")
	}

	if err := fc.Write(key, &Entry{Model: "m", Reply: "## Summary\nok\n"}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entry, ok := fc.Read(key, 0)
	if !ok {
		t.Fatal("read after write should hit")
	}
	if entry.Reply != "## Summary\nok\n" {
		t.Errorf("Reply = %q", entry.Reply)
	}

	// An aggressive TTL expires it.
	time.Sleep(5 * time.Millisecond)
	if _, ok := fc.Read(key, time.Millisecond); ok {
		t.Error("expired entry should miss")
	}
}

type countingGen struct {
	calls int
	err   error
}

func (g *countingGen) Generate(context.Context, string, string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return "reply", nil
}

func TestCachingGenerator(t *testing.T) {
	fc, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	inner := &countingGen{}
	gen := Wrap(inner, fc, "m", time.Hour)

	for i := 0; i < 3; i++ {
		reply, err := gen.Generate(context.Background(), "s", "u")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if reply != "reply" {
			t.Errorf("reply = %q", reply)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1 (cache should serve repeats)", inner.calls)
	}
}

func TestCachingGenerator_ErrorsNotCached(t *testing.T) {
	fc, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	inner := &countingGen{err: errors.New("boom")}
	gen := Wrap(inner, fc, "m", time.Hour)

	for i := 0; i < 2; i++ {
		if _, err := gen.Generate(context.Background(), "s", "u"); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.calls != 2 {
		t.Errorf("inner called %d times, want 2 (errors must pass through)", inner.calls)
	}
}
