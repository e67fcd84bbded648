package backup

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "gzip", want: FormatGzip},
		{input: "gz", want: FormatGzip},
		{input: "GZIP", want: FormatGzip},
		{input: "zstd", want: FormatZstd},
		{input: "zst", want: FormatZstd},
		{input: "zip", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestInfer(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{name: "originals.tar.gz", want: FormatGzip},
		{name: "originals.tar.zst", want: FormatZstd},
		{name: "originals.zst", want: FormatZstd},
		{name: "originals", want: FormatGzip},
	}

	for _, tt := range tests {
		if got := Infer(tt.name); got != tt.want {
			t.Errorf("Infer(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCreateExtractRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatGzip, FormatZstd} {
		t.Run(format.String(), func(t *testing.T) {
			srcDir := t.TempDir()
			files := map[string]string{
				"nse_100_data1.csv": "RELIANCE,x\nDate,Open\n",
				"nse_100_data2.csv": "Date,Open\n1,2\n",
			}
			var names []string
			for name, content := range files {
				if err := os.WriteFile(filepath.Join(srcDir, name), []byte(content), 0o644); err != nil {
					t.Fatal(err)
				}
				names = append(names, name)
			}

			var archive bytes.Buffer
			if err := format.Create(srcDir, names, &archive); err != nil {
				t.Fatalf("Create() error = %v", err)
			}

			destDir := t.TempDir()
			if err := format.Extract(&archive, destDir); err != nil {
				t.Fatalf("Extract() error = %v", err)
			}

			for name, content := range files {
				data, err := os.ReadFile(filepath.Join(destDir, name))
				if err != nil {
					t.Fatalf("extracted file missing: %v", err)
				}
				if string(data) != content {
					t.Errorf("%s content = %q, want %q", name, data, content)
				}
			}
		})
	}
}

func TestCreateMissingFile(t *testing.T) {
	var archive bytes.Buffer
	err := FormatGzip.Create(t.TempDir(), []string{"absent.csv"}, &archive)
	if err == nil {
		t.Fatal("Create() expected error for missing file")
	}
}

func TestExtensions(t *testing.T) {
	if got := FormatGzip.Extension(); got != ".tar.gz" {
		t.Errorf("gzip extension = %q", got)
	}
	if got := FormatZstd.Extension(); got != ".tar.zst" {
		t.Errorf("zstd extension = %q", got)
	}
}
