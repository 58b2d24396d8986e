package commands

import (
	"context"
	"slices"
	"testing"

	burnguard "github.com/goliatone/go-burnguard"
)

func TestDispatchSplitsArguments(t *testing.T) {
	r := NewRouter()
	var got *Context
	r.Define(Definition{Name: "burned_begone", Aliases: []string{"bb"}}, func(ctx *Context) {
		got = ctx
		ctx.Reply("ok " + ctx.Arg(0))
	})

	var lines []string
	matched, err := r.Dispatch(context.Background(), burnguard.Actor{ID: "7656"}, `/BB status "two words"`, func(s string) { lines = append(lines, s) })
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !matched {
		t.Fatal("expected alias to match")
	}
	if got.Ctx == nil {
		t.Fatal("expected context")
	}
	if got.Input != "/BB" || got.Command.Name != "burned_begone" || got.Actor.ID != "7656" {
		t.Fatalf("unexpected context %+v", got)
	}
	if !slices.Equal(got.Args, []string{"status", "two words"}) {
		t.Fatalf("unexpected args %q", got.Args)
	}
	if !slices.Equal(lines, []string{"ok status"}) {
		t.Fatalf("unexpected replies %q", lines)
	}
}

func TestDispatchMisses(t *testing.T) {
	r := NewRouter()
	r.Define(Definition{Name: "bb"}, func(*Context) { t.Fatal("handler must not run") })

	cases := []string{"", "   ", "/other", "bbq"}
	for _, line := range cases {
		matched, err := r.Dispatch(context.Background(), burnguard.Actor{}, line, nil)
		if err != nil || matched {
			t.Fatalf("line %q: matched=%v err=%v", line, matched, err)
		}
	}

	if _, err := r.Dispatch(context.Background(), burnguard.Actor{}, `bb "unterminated`, nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDefinePanicsOnDuplicates(t *testing.T) {
	r := NewRouter()
	r.Define(Definition{Name: "status", Aliases: []string{"st"}}, func(*Context) {})

	cases := []Definition{
		{Name: "STATUS"},
		{Name: "other", Aliases: []string{"/st"}},
		{Name: " "},
	}
	for _, def := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic for %+v", def)
				}
			}()
			r.Define(def, func(*Context) {})
		}()
	}
}

func TestAllSortedAndNilReply(t *testing.T) {
	r := NewRouter()
	r.Define(Definition{Name: "toggle"}, func(ctx *Context) { ctx.Replyf("%d", 1) })
	r.Define(Definition{Name: "info"}, func(*Context) {})
	r.Define(Definition{Name: "reload"}, func(*Context) {})

	var names []string
	for _, cmd := range r.All() {
		names = append(names, cmd.Name)
	}
	if !slices.Equal(names, []string{"info", "reload", "toggle"}) {
		t.Fatalf("unexpected order %v", names)
	}
	if !r.Run(context.Background(), burnguard.Actor{}, []string{"toggle"}, "toggle", nil) {
		t.Fatal("expected run to match")
	}
}
