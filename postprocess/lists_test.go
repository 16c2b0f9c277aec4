package postprocess

import (
	"strings"
	"testing"
)

func TestFoldLooseLists(t *testing.T) {
	apply := treePass(foldLooseLists)

	t.Run("heading paragraph folded with list", func(t *testing.T) {
		out := apply(`<p><strong>Monday</strong></p><ul><li>9am tee time</li></ul>`)
		want := `<ul><li><p><strong>Monday</strong></p><ul><li>9am tee time</li></ul></li></ul>`
		if out != want {
			t.Fatalf("got %q, want %q", out, want)
		}
	})

	t.Run("plain paragraph untouched", func(t *testing.T) {
		in := `<p>Monday</p><ul><li>x</li></ul>`
		if out := apply(in); out != in {
			t.Fatalf("paragraph without strong folded: %q", out)
		}
	})

	t.Run("no following list untouched", func(t *testing.T) {
		in := `<p><strong>Monday</strong></p><p>next</p>`
		if out := apply(in); out != in {
			t.Fatalf("folded without a list: %q", out)
		}
	})

	t.Run("separated siblings untouched", func(t *testing.T) {
		in := `<p><strong>Monday</strong></p><p>gap</p><ul><li>x</li></ul>`
		if out := apply(in); out != in {
			t.Fatalf("folded across a gap: %q", out)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		once := apply(`<p><strong>Monday</strong></p><ul><li>x</li></ul>`)
		if twice := apply(once); twice != once {
			t.Fatalf("not idempotent: %q vs %q", twice, once)
		}
	})
}

func TestSimplifyButtons(t *testing.T) {
	apply := treePass(simplifyButtons)

	t.Run("wrapper table collapsed", func(t *testing.T) {
		in := `<table role="presentation"><tbody><tr><td><a href="https://example.com">Sign Up</a></td></tr></tbody></table>`
		out := apply(in)
		if strings.Contains(out, "<table") {
			t.Fatalf("wrapper table survived: %q", out)
		}
		if !strings.Contains(out, `<a href="https://example.com" style="margin:0; padding:0; text-decoration:underline; color:inherit;">Sign Up</a>`) {
			t.Fatalf("plain link missing: %q", out)
		}
	})

	t.Run("content table kept", func(t *testing.T) {
		in := `<table><tbody><tr><td>a</td><td>b</td></tr><tr><td>c</td><td><a href="#">d</a></td></tr></tbody></table>`
		if out := apply(in); !strings.Contains(out, "<table") {
			t.Fatalf("content table collapsed: %q", out)
		}
	})

	t.Run("heavy anchor lightened", func(t *testing.T) {
		out := apply(`<a href="#" style="display:inline-block; background-color:#103040; color:#fff;">Go</a>`)
		if strings.Contains(out, "background-color") {
			t.Fatalf("heavy style survived: %q", out)
		}
		if !strings.Contains(out, "text-decoration:underline") {
			t.Fatalf("lightened style missing: %q", out)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		once := apply(`<table><tbody><tr><td><a href="#" style="background-color:red;">Go</a></td></tr></tbody></table>`)
		if twice := apply(once); twice != once {
			t.Fatalf("not idempotent: %q vs %q", twice, once)
		}
	})
}
