package util

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseGlobPattern(t *testing.T) {
	tests := []struct {
		name         string
		globPattern  string
		wantPositive []string
		wantNegative []string
	}{
		{
			name:         "empty pattern",
			globPattern:  "",
			wantPositive: nil,
			wantNegative: nil,
		},
		{
			name:         "single positive pattern",
			globPattern:  "nse_100_data*.csv",
			wantPositive: []string{"nse_100_data*.csv"},
			wantNegative: nil,
		},
		{
			name:         "single negative pattern",
			globPattern:  "!*.bak",
			wantPositive: nil,
			wantNegative: []string{"*.bak"},
		},
		{
			name:         "mixed positive and negative patterns",
			globPattern:  "*.csv,!nse_100_data*.csv",
			wantPositive: []string{"*.csv"},
			wantNegative: []string{"nse_100_data*.csv"},
		},
		{
			name:         "pattern with spaces and empty elements",
			globPattern:  "*.csv, ,*.txt",
			wantPositive: []string{"*.csv", "*.txt"},
			wantNegative: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gp := ParseGlobPattern(tt.globPattern)

			if !reflect.DeepEqual(gp.positivePatterns, tt.wantPositive) {
				t.Errorf("ParseGlobPattern() positive patterns = %v, want %v",
					gp.positivePatterns, tt.wantPositive)
			}
			if !reflect.DeepEqual(gp.negativePatterns, tt.wantNegative) {
				t.Errorf("ParseGlobPattern() negative patterns = %v, want %v",
					gp.negativePatterns, tt.wantNegative)
			}
		})
	}
}

func TestGlobPatternMatch(t *testing.T) {
	tests := []struct {
		name        string
		globPattern string
		path        string
		want        bool
		wantErr     bool
	}{
		{
			name:        "empty pattern matches all",
			globPattern: "",
			path:        "anything.csv",
			want:        true,
		},
		{
			name:        "wildcard match",
			globPattern: "nse_100_data*.csv",
			path:        "nse_100_data1.csv",
			want:        true,
		},
		{
			name:        "wildcard no match",
			globPattern: "nse_100_data*.csv",
			path:        "RELIANCE.csv",
			want:        false,
		},
		{
			name:        "negative pattern excludes",
			globPattern: "*.csv,!nse_100_data*.csv",
			path:        "nse_100_data1.csv",
			want:        false,
		},
		{
			name:        "negative pattern lets others through",
			globPattern: "*.csv,!nse_100_data*.csv",
			path:        "RELIANCE.csv",
			want:        true,
		},
		{
			name:        "invalid pattern",
			globPattern: "[",
			path:        "x.csv",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gp := ParseGlobPattern(tt.globPattern)
			got, err := gp.Match(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Match() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	files := []string{"nse_100_data2.csv", "nse_100_data1.csv", "RELIANCE.csv", "notes.txt"}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// A matching directory name must not be selected
	if err := os.Mkdir(filepath.Join(dir, "nse_100_data_dir.csv"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Expand(dir, "nse_100_data*.csv")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	want := []string{"nse_100_data1.csv", "nse_100_data2.csv"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand() = %v, want %v", got, want)
	}
}

func TestExpandMissingDir(t *testing.T) {
	_, err := Expand(filepath.Join(t.TempDir(), "absent"), "*.csv")
	if err == nil {
		t.Fatal("Expand() expected error for missing directory")
	}
}

func TestExpandNoMatches(t *testing.T) {
	got, err := Expand(t.TempDir(), "*.csv")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expand() = %v, want empty", got)
	}
}
