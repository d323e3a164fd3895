package diag

import (
	"errors"
	"fmt"
	"testing"

	"cdl/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	if !b.Add(New(SevWarning, LexInfo, source.Span{}, "w")) {
		t.Fatal("first add rejected")
	}
	if b.HasErrors() {
		t.Fatal("warning counted as error")
	}
	b.Add(NewError(SynUnexpectedToken, source.Span{}, "e"))
	if b.Add(NewError(SynUnexpectedToken, source.Span{}, "dropped")) {
		t.Fatal("limit not enforced")
	}
	if !b.HasErrors() || b.Len() != 2 {
		t.Fatalf("len=%d errors=%v", b.Len(), b.HasErrors())
	}
}

func TestSeverityNames(t *testing.T) {
	for sev, want := range map[Severity]string{SevInfo: "INFO", SevWarning: "WARNING", SevError: "ERROR", Severity(9): "UNKNOWN"} {
		if got := sev.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", sev, got, want)
		}
	}
	if SevWarning.Fatal() || !SevError.Fatal() {
		t.Error("only errors are fatal")
	}
}

func TestBagSortDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(NewError(SemaUnknownPort, source.Span{File: 1, Start: 5, End: 6}, "late"))
	b.Add(NewError(LexUnknownChar, source.Span{File: 0, Start: 9, End: 10}, "first file"))
	b.Add(NewError(LexUnknownChar, source.Span{File: 0, Start: 9, End: 10}, "repeat"))
	b.Sort()
	b.Dedup()
	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("want 2 items after dedup, got %d", len(items))
	}
	if items[0].Primary.File != 0 || items[1].Code != SemaUnknownPort {
		t.Fatalf("unexpected order: %+v", items)
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:        "LEX1001",
		SynUnexpectedToken:    "SYN2001",
		SemaCircularReference: "SEM3007",
		IOLoadFileError:       "IO4001",
		Code(42):              "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %s, want %s", code, got, want)
		}
	}
	if SemaNotAVector.Title() == codeDescription[UnknownCode] {
		t.Error("SemaNotAVector has no description")
	}
}

func TestErrorKindThroughWrap(t *testing.T) {
	bag := NewBag(0)
	e := Fail(BagReporter{Bag: bag}, Errorf(TypeError, SemaNotAVector, source.Span{}, "%s is not a vector", "bar"))
	wrapped := fmt.Errorf("component Foo: %w", e)

	kind, ok := KindOf(wrapped)
	if !ok || kind != TypeError {
		t.Fatalf("KindOf = %v,%v", kind, ok)
	}
	var target *Error
	if !errors.As(wrapped, &target) || target.Message != "bar is not a vector" {
		t.Fatalf("errors.As failed: %v", target)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != SemaNotAVector {
		t.Fatalf("Fail did not report: %+v", bag.Items())
	}
	if got := e.Error(); got != "TypeError: bar is not a vector" {
		t.Errorf("Error() = %q", got)
	}
}
