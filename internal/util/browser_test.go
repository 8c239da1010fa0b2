package util

import "testing"

func TestBrowserCommands(t *testing.T) {
	t.Parallel()

	const url = "http://localhost:8501"
	for _, goos := range []string{"windows", "darwin", "linux"} {
		cmds := browserCommands(goos, url)
		if len(cmds) == 0 {
			t.Fatalf("%s: no commands", goos)
		}
		for _, argv := range cmds {
			if argv[len(argv)-1] != url {
				t.Fatalf("%s: url not last argument: %v", goos, argv)
			}
		}
	}
	if got := browserCommands("darwin", url)[0][0]; got != "open" {
		t.Fatalf("darwin opener = %s, want open", got)
	}
}
