package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResource_Tag(t *testing.T) {
	tests := []struct {
		name   string
		tags   map[string]string
		keys   []string
		want   string
		wantOK bool
	}{
		{
			name:   "exact match",
			tags:   map[string]string{"env": "prod"},
			keys:   []string{"env"},
			want:   "prod",
			wantOK: true,
		},
		{
			name:   "case folded match",
			tags:   map[string]string{"Environment": "staging"},
			keys:   []string{"environment"},
			want:   "staging",
			wantOK: true,
		},
		{
			name:   "exact match beats folded",
			tags:   map[string]string{"ENV": "dev", "env": "prod"},
			keys:   []string{"env"},
			want:   "prod",
			wantOK: true,
		},
		{
			name:   "folded collision picks smallest key",
			tags:   map[string]string{"Env": "prod", "ENV": "dev", "eNv": "test"},
			keys:   []string{"env"},
			want:   "dev",
			wantOK: true,
		},
		{
			name:   "earlier key wins",
			tags:   map[string]string{"team": "core", "owner": "alice"},
			keys:   []string{"owner", "team"},
			want:   "alice",
			wantOK: true,
		},
		{
			name: "missing",
			tags: map[string]string{"env": "prod"},
			keys: []string{"owner"},
		},
		{
			name: "no tags",
			keys: []string{"env"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resource{Tags: tt.tags}
			// Map order varies between runs, so repeat to catch nondeterminism.
			for i := 0; i < 20; i++ {
				got, ok := r.Tag(tt.keys...)
				assert.Equal(t, tt.wantOK, ok)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Running", StatusRunning},
		{"", StatusRunning},
		{"VM deallocated", StatusStopped},
		{"deallocated", StatusTerminated},
		{" Stopped ", StatusStopped},
		{"shutting-down", StatusTerminated},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeStatus(tt.in), tt.in)
	}
}
