package errors

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "invariant error",
			code:    "E001",
			wantMsg: "Node list reached the diff engine",
			wantCat: CategoryInvariant,
		},
		{
			name:    "apply error",
			code:    "E201",
			wantMsg: "Patch path does not resolve to a node",
			wantCat: CategoryApply,
		},
		{
			name:    "protocol error",
			code:    "E301",
			wantMsg: "Malformed patch frame",
			wantCat: CategoryProtocol,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "file %q not found", "old.yaml")
	if err.Message != `file "old.yaml" not found` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
	if err.Error() != err.Message {
		t.Errorf("Error() = %q, want %q", err.Error(), err.Message)
	}
}

func TestError_ErrorIncludesDetail(t *testing.T) {
	err := New("E202").WithDetail(`want "div", got "span"`)
	want := `E202: Patch tag hint does not match target (want "div", got "span")`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestError_WithLocation(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tree.yaml")
	content := "tag: main\nchildren:\n  - tag: div\n  - bogus: 1\n  - text: hi\n"
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("E151").WithLocation(file, 4, 5)
	if err.Location == nil {
		t.Fatal("Location should be set")
	}
	if err.Location.Line != 4 || err.Location.Column != 5 {
		t.Errorf("Location = %v", err.Location)
	}
	if len(err.Context) == 0 {
		t.Fatal("Context should be read from the file")
	}
	found := false
	for _, line := range err.Context {
		if strings.Contains(line, "bogus") {
			found = true
		}
	}
	if !found {
		t.Errorf("Context %q should contain the offending line", err.Context)
	}
}

func TestError_WrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("disk on fire")
	err := New("E101").Wrap(cause)
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if stderrors.Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestError_IsMatchesCode(t *testing.T) {
	err := New("E201").WithDetail("path [0 3]")
	if !stderrors.Is(err, New("E201")) {
		t.Error("errors.Is should match on code")
	}
	if stderrors.Is(err, New("E202")) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E101") != nil {
		t.Error("FromError(nil) should return nil")
	}

	original := New("E202")
	if FromError(original, "E101") != original {
		t.Error("FromError should return an existing *Error unchanged")
	}

	plain := stderrors.New("boom")
	wrapped := FromError(plain, "E101")
	if wrapped.Code != "E101" || wrapped.Wrapped != plain {
		t.Errorf("FromError = %+v", wrapped)
	}
}

func TestHasCode(t *testing.T) {
	inner := New("E201")
	outer := New("E203").Wrap(inner)
	if !HasCode(outer, "E203") || !HasCode(outer, "E201") {
		t.Error("HasCode should see both the outer and the wrapped code")
	}
	if HasCode(outer, "E301") {
		t.Error("HasCode should not report an absent code")
	}
	if HasCode(stderrors.New("x"), "E201") {
		t.Error("HasCode on a plain error should be false")
	}
}

func TestLocation_String(t *testing.T) {
	var nilLoc *Location
	if nilLoc.String() != "" {
		t.Error("nil location should format as empty")
	}
	if got := (&Location{File: "a.yaml", Line: 3}).String(); got != "a.yaml:3" {
		t.Errorf("got %q", got)
	}
	if got := (&Location{File: "a.yaml", Line: 3, Column: 7}).String(); got != "a.yaml:3:7" {
		t.Errorf("got %q", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E150").
		WithDetail("children must be a list").
		WithSuggestion("Use a YAML sequence under children")
	formatted := err.Format()

	for _, want := range []string{"ERROR E150:", "Failed to load tree document", "children must be a list", "Hint: Use a YAML sequence"} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() missing %q in:\n%s", want, formatted)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E151")
	err.Location = &Location{File: "tree.yaml", Line: 10, Column: 5}

	want := "tree.yaml:10:5: E151: Unknown node kind in tree document"
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E201").Wrap(stderrors.New("no child 4"))
	json := err.FormatJSON()

	for _, want := range []string{`"code":"E201"`, `"category":"apply"`, `"cause":"no child 4"`} {
		if !strings.Contains(json, want) {
			t.Errorf("FormatJSON() missing %s in %s", want, json)
		}
	}
}

func TestRegistry(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("GetAllCodes() should return codes")
	}
	if _, ok := GetTemplate("E001"); !ok {
		t.Error("E001 should be registered")
	}

	Register("E999", ErrorTemplate{Category: CategoryCLI, Message: "custom"})
	defer delete(registry, "E999")
	if got := New("E999").Message; got != "custom" {
		t.Errorf("registered template not used, got %q", got)
	}
}

func TestWrapText(t *testing.T) {
	if got := wrapText("", 10); len(got) != 0 {
		t.Errorf("wrapText empty = %v", got)
	}
	got := wrapText("one two three four five", 9)
	for _, line := range got {
		if len(line) > 9 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if strings.Join(got, " ") != "one two three four five" {
		t.Errorf("wrapText lost words: %v", got)
	}
}

func TestColorToggle(t *testing.T) {
	EnableColors()
	if !strings.Contains(red("test"), "\x1b[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}

	DisableColors()
	if strings.Contains(red("test"), "\x1b[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
	EnableColors()
}
