package types

import "testing"

// TestFormatSize verifies the exact report size format.
func TestFormatSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0.00 MB"},
		{"ten megabytes", 10 * MiB, "10.00 MB"},
		{"five hundred megabytes", 500 * MiB, "500.00 MB"},
		{"just under a gigabyte", GiB - 1, "1024.00 MB"},
		{"exactly one gigabyte", GiB, "1.00 GB"},
		{"two gigabytes", 2 * GiB, "2.00 GB"},
		{"fractional gigabytes", GiB + GiB/2, "1.50 GB"},
		{"terabyte scale", 3 * TiB, "3072.00 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSize(tt.bytes); got != tt.want {
				t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

// TestFileEntryHumanSize verifies the method delegates to FormatSize.
func TestFileEntryHumanSize(t *testing.T) {
	e := FileEntry{Path: "/tmp/blob", Size: 2 * GiB}
	if got := e.HumanSize(); got != "2.00 GB" {
		t.Errorf("HumanSize() = %q, want %q", got, "2.00 GB")
	}
}

// TestFormatCount verifies IEC formatting used in statistics lines.
func TestFormatCount(t *testing.T) {
	if got := FormatCount(1536 * KiB); got != "1.5 MiB" {
		t.Errorf("FormatCount = %q, want %q", got, "1.5 MiB")
	}
}
