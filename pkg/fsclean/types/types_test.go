package types

import "testing"

func TestParseOperation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Operation
		wantErr bool
	}{
		{name: "duplicates", input: "duplicates", want: OpDuplicates},
		{name: "empties", input: "empties", want: OpEmpties},
		{name: "naming", input: "naming", want: OpNaming},
		{name: "mixed case", input: "Duplicates", want: OpDuplicates},
		{name: "surrounding space", input: " empties ", want: OpEmpties},
		{name: "unknown", input: "defrag", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOperation(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseOperations(t *testing.T) {
	ops, errs := ParseOperations("naming,empties,duplicates")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []Operation{OpNaming, OpEmpties, OpDuplicates}
	if len(ops) != len(want) {
		t.Fatalf("got %d operations, want %d", len(ops), len(want))
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("ops[%d]: got %q, want %q", i, ops[i], want[i])
		}
	}
}

func TestParseOperationsSkipsUnknown(t *testing.T) {
	ops, errs := ParseOperations("duplicates,defrag")
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	if len(ops) != 1 || ops[0] != OpDuplicates {
		t.Errorf("got %v, want [duplicates]", ops)
	}
}

func TestParseOperationsDeduplicates(t *testing.T) {
	ops, errs := ParseOperations("empties,empties")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(ops) != 1 {
		t.Errorf("got %v, want one entry", ops)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{1024, "1.0 KiB"},
		{1536 * 1024, "1.5 MiB"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.bytes); got != tt.want {
			t.Errorf("FormatSize(%d): got %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
