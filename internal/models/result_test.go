package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryString(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		want    string
	}{
		{
			name: "nothing to do",
			want: "No changes needed.",
		},
		{
			name:    "preview counts",
			summary: Summary{Total: 3, Files: 2, Directories: 1, Pending: 3},
			want:    "Found 3 rename candidates (2 files, 1 directory).",
		},
		{
			name:    "single candidate",
			summary: Summary{Total: 1, Files: 1, Pending: 1},
			want:    "Found 1 rename candidate (1 file, 0 directories).",
		},
		{
			name:    "applied with errors",
			summary: Summary{Total: 4, Files: 4, Done: 3, Errors: 1},
			want:    "Completed 3 of 4 renames (1 error).",
		},
		{
			name:    "dry run",
			summary: Summary{Total: 2, Files: 2, Done: 2, DryRun: true},
			want:    "Simulated 2 of 2 renames (0 errors).",
		},
		{
			name:    "stopped early",
			summary: Summary{Total: 5, Files: 5, Done: 1, Errors: 1, Pending: 3},
			want:    "Completed 1 of 5 renames (1 error), 3 not attempted.",
		},
		{
			name:    "preview with resolution errors",
			summary: Summary{Total: 2, Files: 2, Errors: 2},
			want:    "Completed 0 of 2 renames (2 errors).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.summary.String())
		})
	}
}
