package tabs

import "testing"

func TestRenumber(t *testing.T) {
	records := []TabRecord{
		{ID: "c", Index: 7},
		{ID: "a", Index: 1},
		{ID: "b", Index: 4},
	}

	got := Renumber(records)

	want := []TabID{"a", "b", "c"}
	for i, r := range got {
		if r.ID != want[i] {
			t.Errorf("position %d: ID = %s, want %s", i, r.ID, want[i])
		}
		if r.Index != i {
			t.Errorf("position %d: Index = %d, want %d", i, r.Index, i)
		}
	}
	if records[0].Index != 7 {
		t.Error("Renumber must not mutate its input")
	}
}

func TestFindByID(t *testing.T) {
	records := []TabRecord{{ID: "1"}, {ID: "2"}}

	if _, ok := FindByID(records, ""); ok {
		t.Error("empty id should never match")
	}
	if r, ok := FindByID(records, "2"); !ok || r.ID != "2" {
		t.Errorf("FindByID(2) = %v, %v", r, ok)
	}
	if _, ok := FindByID(records, "3"); ok {
		t.Error("FindByID(3) should not match")
	}
}

func TestParsePolicies(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
		want    PositionPolicy
	}{
		{input: "right", want: PositionRight},
		{input: " LEFT ", want: PositionLeft},
		{input: "start", want: PositionStart},
		{input: "end", want: PositionEnd},
		{input: "middle", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePositionPolicy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := ParseCloseBehaviorPolicy("smart"); err != nil {
		t.Errorf("smart should parse: %v", err)
	}
	if _, err := ParseCloseBehaviorPolicy("start"); err == nil {
		t.Error("start is not a close behavior")
	}
}

func TestSettingsNormalize(t *testing.T) {
	got := Settings{Position: "bogus", CloseBehavior: "", Language: " "}.Normalize()
	if got != DefaultSettings() {
		t.Errorf("Normalize() = %+v, want defaults", got)
	}

	kept := Settings{Position: PositionEnd, CloseBehavior: CloseSmart, Language: "ja"}
	if kept.Normalize() != kept {
		t.Errorf("valid settings changed: %+v", kept.Normalize())
	}
}

func TestResolveLanguage(t *testing.T) {
	supported := []string{"en", "zh-CN", "de"}

	tests := []struct {
		name       string
		stored     string
		locale     string
		want       string
		wantStored bool
	}{
		{name: "stored wins", stored: "fr", locale: "de_DE.UTF-8", want: "fr", wantStored: true},
		{name: "full locale", locale: "zh_CN.UTF-8", want: "zh-CN"},
		{name: "base language", locale: "de_AT", want: "de"},
		{name: "unsupported", locale: "pt_BR", want: "en"},
		{name: "posix locale", locale: "C", want: "en"},
		{name: "empty", locale: "", want: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fromStore := ResolveLanguage(tt.stored, tt.locale, supported)
			if got != tt.want {
				t.Errorf("language = %q, want %q", got, tt.want)
			}
			if fromStore != tt.wantStored {
				t.Errorf("fromStore = %v, want %v", fromStore, tt.wantStored)
			}
		})
	}
}
