package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	s := NewService()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "heading",
			source: "## Day 1",
			want:   "<h2>Day 1</h2>",
		},
		{
			name:   "list",
			source: "- sunscreen\n- charger",
			want:   "<li>sunscreen</li>",
		},
		{
			name:   "table",
			source: "| Item | Cost |\n| --- | --- |\n| Hostel | 600 |",
			want:   "<td>Hostel</td>",
		},
		{
			name:   "hard wrap",
			source: "line one\nline two",
			want:   "<br>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := s.Render(tt.source)
			require.NoError(t, err)
			require.Contains(t, out, tt.want)
		})
	}
}

func TestRenderDoesNotPassRawHTML(t *testing.T) {
	s := NewService()
	out, err := s.Render(`<script>alert("x")</script>`)
	require.NoError(t, err)
	require.NotContains(t, out, "<script>")
}
