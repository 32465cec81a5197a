package errors

import "testing"

func TestErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "with line",
			err:  New(MissingVariable, 4, "undefined variable 'Tommy'"),
			want: "MissingVariable at line 4: undefined variable 'Tommy'",
		},
		{
			name: "without line",
			err:  New(Incomplete, 0, "empty program"),
			want: "Incomplete: empty program",
		},
		{
			name: "formatted",
			err:  Newf(WrongArgCount, 2, "expected %d argument(s), got %d", 1, 2),
			want: "WrongArgCount at line 2: expected 1 argument(s), got 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Format(); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorFormatWithSource(t *testing.T) {
	source := "Tommy is a lovestruck ladykiller\nShout Bobby"
	err := New(MissingVariable, 2, "undefined variable 'Bobby'").WithSource(source)

	want := "MissingVariable at line 2: undefined variable 'Bobby'\n   2 | Shout Bobby"
	if got := err.Format(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestErrorImplementsError(t *testing.T) {
	var err error = New(BadIs, 1, "bad is section")
	if err.Error() == "" {
		t.Fatal("expected non-empty message")
	}
}

func TestKindString(t *testing.T) {
	if UnparsedText.String() != "UnparsedText" {
		t.Errorf("String() = %q, want %q", UnparsedText.String(), "UnparsedText")
	}
	if got := Kind(999).String(); got != "UnknownError" {
		t.Errorf("String() = %q, want %q", got, "UnknownError")
	}
}
