package chordpro

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSongTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "title directive", text: "{title: Amazing Grace}\n[G]Amazing grace", want: "Amazing Grace"},
		{name: "short form", text: "{t:Hallelujah}", want: "Hallelujah"},
		{name: "key is case insensitive", text: "{TITLE:  Loud  }", want: "Loud"},
		{name: "last directive wins", text: "{title: First}\n{t: Second}", want: "Second"},
		{name: "several directives on one line", text: "{artist: Someone} {title: Inline}", want: "Inline"},
		{name: "comment lines ignored", text: "# {title: Hidden}\n{subtitle: Sub}", want: ""},
		{name: "unterminated directive", text: "{title: Broken", want: ""},
		{name: "no directives", text: "[C]Hello [G]world", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, SongTitle(tt.text))
		})
	}
}

func TestDefaultOutputName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Amazing_Grace.pdf", DefaultOutputName("Amazing Grace"))
	require.Equal(t, "Don_t_Stop_.pdf", DefaultOutputName("Don't Stop!"))
	require.Equal(t, "Caf_.pdf", DefaultOutputName("Café"))
	require.Equal(t, "Hi___.pdf", DefaultOutputName("Hi 🎸"))
	require.Equal(t, "Untitled.pdf", DefaultOutputName("   "))
}

func TestWithTranspose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		semitones int
		want      string
	}{
		{name: "zero keeps text", text: sampleSong, semitones: 0, want: sampleSong},
		{name: "prepends directive", text: sampleSong, semitones: 3, want: "{transpose:3}\n" + sampleSong},
		{name: "negative shift", text: sampleSong, semitones: -1, want: "{transpose:-1}\n" + sampleSong},
		{name: "song already transposed", text: "{transpose:2}\n{title: X}", semitones: 3, want: "{transpose:2}\n{title: X}"},
		{name: "directive later in song", text: "{title: X}\n[C]la\n{transpose:-3}\n[G]la", semitones: 5, want: "{title: X}\n[C]la\n{transpose:-3}\n[G]la"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, WithTranspose(tt.text, tt.semitones))
		})
	}
}

func TestStageSongRefusesExistingFile(t *testing.T) {
	t.Parallel()

	path := tempInputPath(t.TempDir(), "fixed")
	require.NoError(t, stageSong(path, "first"))
	require.Error(t, stageSong(path, "second"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "first", string(content))
}

func TestTempInputPathDefaultsToSystemTempDir(t *testing.T) {
	t.Parallel()

	require.Equal(t, filepath.Join(os.TempDir(), "chordpro-input-abc.cho"), tempInputPath("", "abc"))
}
