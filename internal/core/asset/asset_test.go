package asset

import "testing"

func TestKindFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"movie.mp4", KindVideo},
		{"MOVIE.MP4", KindVideo},
		{"pic.jpeg", KindImage},
		{"voice.m4a", KindAudio},
		{"subtitle.srt", KindText},
		{"subtitle.vtt", KindText},
		{"notes.txt", KindText},
		{"readme.doc", ""},
		{"noext", ""},
	}
	for _, tt := range tests {
		if got := KindFromPath(tt.path); got != tt.want {
			t.Errorf("KindFromPath(%s) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
