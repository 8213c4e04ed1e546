package ffmpeg

import "testing"

func TestEscapeFilterPath(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"/tmp/track.srt", "/tmp/track.srt"},
		{"C:\\media\\track.srt", "C\\:\\\\media\\\\track.srt"},
		{"/tmp/a:b/track.srt", "/tmp/a\\:b/track.srt"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := EscapeFilterPath(tc.input); got != tc.want {
			t.Fatalf("EscapeFilterPath(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
