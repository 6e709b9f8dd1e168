package tabular

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  []map[string]string
	}{
		{
			name:  "simple",
			input: "a,b\n1,2\n3,4\n",
			opts:  DefaultOptions(),
			want:  []map[string]string{{"a": "1", "b": "2"}, {"a": "3", "b": "4"}},
		},
		{
			name:  "no trailing newline",
			input: "a,b\n1,2",
			opts:  DefaultOptions(),
			want:  []map[string]string{{"a": "1", "b": "2"}},
		},
		{
			name:  "crlf line endings",
			input: "a,b\r\n1,2\r\n",
			opts:  DefaultOptions(),
			want:  []map[string]string{{"a": "1", "b": "2"}},
		},
		{
			name:  "quoted comma and newline",
			input: "a,b\n\"x, y\",\"line1\nline2\"\n",
			opts:  DefaultOptions(),
			want:  []map[string]string{{"a": "x, y", "b": "line1\nline2"}},
		},
		{
			name:  "doubled quote",
			input: "a\n\"say \"\"hi\"\"\"\n",
			opts:  DefaultOptions(),
			want:  []map[string]string{{"a": `say "hi"`}},
		},
		{
			name:  "backslash escaped quote",
			input: "a\n\"say \\\"hi\\\"\"\n",
			opts:  DefaultOptions(),
			want:  []map[string]string{{"a": `say "hi"`}},
		},
		{
			name:  "backslash before ordinary char is kept",
			input: "a\n\"C:\\temp\"\n",
			opts:  DefaultOptions(),
			want:  []map[string]string{{"a": `C:\temp`}},
		},
		{
			name:  "escaped delimiter outside quotes",
			input: "productName,sku\nWidget\\, large,SKU1\n",
			opts:  DefaultOptions(),
			want:  []map[string]string{{"productName": "Widget, large", "sku": "SKU1"}},
		},
		{
			name:  "escaped quote and escape outside quotes",
			input: "a,b\n5\\\" screen,back\\\\slash\n",
			opts:  DefaultOptions(),
			want:  []map[string]string{{"a": `5" screen`, "b": `back\slash`}},
		},
		{
			name:  "escaped newline continues the field",
			input: "a,b\nline1\\\nline2,x\n",
			opts:  DefaultOptions(),
			want:  []map[string]string{{"a": "line1\nline2", "b": "x"}},
		},
		{
			name:  "unquoted backslash before ordinary char is kept",
			input: "a\nC:\\temp\n",
			opts:  DefaultOptions(),
			want:  []map[string]string{{"a": `C:\temp`}},
		},
		{
			name:  "escaped delimiter inside quotes",
			input: "a\n\"x\\, y\"\n",
			opts:  DefaultOptions(),
			want:  []map[string]string{{"a": "x, y"}},
		},
		{
			name:  "escape disabled",
			input: "a,b\nWidget\\,large\n",
			opts:  Options{Comma: ',', Quote: '"'},
			want:  []map[string]string{{"a": `Widget\`, "b": "large"}},
		},
		{
			name:  "trim",
			input: "a , b\n  1 ,  2  \n",
			opts:  DefaultOptions(),
			want:  []map[string]string{{"a": "1", "b": "2"}},
		},
		{
			name:  "no trim",
			input: "a,b\n 1,2 \n",
			opts:  Options{Comma: ',', Quote: '"'},
			want:  []map[string]string{{"a": " 1", "b": "2 "}},
		},
		{
			name:  "skip empty lines",
			input: "a,b\n\n1,2\n\n\n3,4\n",
			opts:  DefaultOptions(),
			want:  []map[string]string{{"a": "1", "b": "2"}, {"a": "3", "b": "4"}},
		},
		{
			name:  "short row padded",
			input: "a,b,c\n1\n",
			opts:  DefaultOptions(),
			want:  []map[string]string{{"a": "1", "b": "", "c": ""}},
		},
		{
			name:  "long row truncated",
			input: "a\n1,2,3\n",
			opts:  DefaultOptions(),
			want:  []map[string]string{{"a": "1"}},
		},
		{
			name:  "semicolon delimiter",
			input: "a;b\n1;2\n",
			opts:  Options{Comma: ';', Quote: '"', Trim: true},
			want:  []map[string]string{{"a": "1", "b": "2"}},
		},
		{
			name:  "header only",
			input: "a,b\n",
			opts:  DefaultOptions(),
			want:  nil,
		},
		{
			name:  "empty quoted field",
			input: "a,b\n\"\",x\n",
			opts:  DefaultOptions(),
			want:  []map[string]string{{"a": "", "b": "x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input), tt.opts)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty input", "", ErrNoHeader},
		{"only blank lines", "\n\n", ErrNoHeader},
		{"unterminated quote", "a\n\"open\n", ErrUnterminatedQuote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), DefaultOptions())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_ErrorLine(t *testing.T) {
	_, err := Parse(strings.NewReader("a\n1\n2\n\"bad\n"), DefaultOptions())
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Line != 4 {
		t.Errorf("Line = %d, want 4", perr.Line)
	}
}
