package i18n

import (
	"slices"
	"testing"
)

func TestEnglishDefaults(t *testing.T) {
	c := New()
	cases := []struct {
		key  string
		args []any
		want string
	}{
		{key: NoPermission, want: "You don't have permission to use this command."},
		{key: StatusProtectedItems, args: []any{21}, want: "Protected items: <color=#87CEEB>21</color>"},
		{key: InfoPermissionRequired, args: []any{false}, want: "Permission required: <color=#87CEEB>false</color>"},
		{key: ConflictWarning, args: []any{"UnburnableMeat", "1.0.0"}, want: "COMPATIBILITY WARNING: Detected conflicting plugin 'UnburnableMeat' v1.0.0"},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			if got := c.Message(tc.key, "", tc.args...); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestLocaleSelectionAndFallback(t *testing.T) {
	c := New()
	for lang, messages := range Translations() {
		if err := c.Register(lang, messages); err != nil {
			t.Fatalf("register %s: %v", lang, err)
		}
	}

	cases := []struct {
		name   string
		key    string
		locale string
		args   []any
		want   string
	}{
		{name: "german", key: NoPermission, locale: "de", want: "Sorry, du darfst diesen Befehl nicht verwenden."},
		{name: "german region", key: ChatCommandsDisabled, locale: "de-AT", want: "Chat-Befehle sind derzeit ausgeschaltet."},
		{name: "french args", key: StatusNeedPermission, locale: "fr", args: []any{"burnedbegone.use"}, want: "Tu as besoin de cette permission: <color=#87CEEB>burnedbegone.use</color>"},
		{name: "unknown language", key: NoPermission, locale: "ja", want: "You don't have permission to use this command."},
		{name: "garbage locale", key: NoPermission, locale: "!!", want: "You don't have permission to use this command."},
		{name: "key missing in german", key: ConflictRecommendation, locale: "de", args: []any{"UnburnableMeat"}, want: "Recommendation: oxide.unload UnburnableMeat - to prevent compatibility issues"},
		{name: "unknown key", key: "Nope", locale: "fr", want: "Nope"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Message(tc.key, tc.locale, tc.args...); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}

	if got := c.Languages(); !slices.Equal(got, []string{"de", "en", "fr"}) {
		t.Fatalf("unexpected languages %v", got)
	}
}

func TestTranslationsCoverEnglishKeys(t *testing.T) {
	english := English()
	for lang, messages := range Translations() {
		for key := range messages {
			if _, ok := english[key]; !ok {
				t.Fatalf("%s has key %q missing from English", lang, key)
			}
		}
	}
}

func TestRegisterRejectsBadLanguage(t *testing.T) {
	if err := New().Register("not a language", map[string]string{"a": "b"}); err == nil {
		t.Fatal("expected error for invalid tag")
	}
}

func TestConvert(t *testing.T) {
	cases := map[string]string{
		"plain":          "plain",
		"{0} of {1}":     "%[1]v of %[2]v",
		"100% {0}":       "100%% %[1]v",
		"{1} before {0}": "%[2]v before %[1]v",
	}
	for in, want := range cases {
		if got := convert(in); got != want {
			t.Fatalf("convert(%q) = %q, want %q", in, got, want)
		}
	}
}
