package main

import (
	"testing"

	"github.com/mizrakjian/monkeystats/internal/api"
)

func TestRootCmdExists(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd should not be nil")
	}

	if rootCmd.Use != "monkeystats" {
		t.Errorf("rootCmd.Use = %q, want 'monkeystats'", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("rootCmd.Short should not be empty")
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"heatmap", "bests", "streak", "history", "watch"}

	for _, name := range want {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Use == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestPersistentFlags(t *testing.T) {
	themeFlag := rootCmd.PersistentFlags().Lookup("theme")
	if themeFlag == nil {
		t.Fatal("rootCmd should have a 'theme' flag")
	}
	if themeFlag.Shorthand != "t" {
		t.Errorf("theme flag shorthand = %q, want 't'", themeFlag.Shorthand)
	}
	if themeFlag.DefValue != "default" {
		t.Errorf("theme flag default = %q, want 'default'", themeFlag.DefValue)
	}

	if rootCmd.PersistentFlags().Lookup("debug") == nil {
		t.Error("rootCmd should have a 'debug' flag")
	}
	if rootCmd.PersistentFlags().Lookup("anchor") == nil {
		t.Error("rootCmd should have an 'anchor' flag")
	}
}

func TestBestsFilterFlag(t *testing.T) {
	flag := bestsCmd.Flags().Lookup("filter")
	if flag == nil {
		t.Fatal("bestsCmd should have a 'filter' flag")
	}
	if flag.Shorthand != "f" {
		t.Errorf("filter flag shorthand = %q, want 'f'", flag.Shorthand)
	}
}

func TestFilterBests(t *testing.T) {
	bests := []api.PersonalBest{
		{Mode: "time", ModeUnit: 60, Language: "english", WPM: 102},
		{Mode: "time", ModeUnit: 15, Language: "english", WPM: 110},
		{Mode: "words", ModeUnit: 25, Language: "spanish", WPM: 90},
		{Mode: "zen", Language: "english", WPM: 80},
	}

	got := filterBests(bests, "time 60")
	if len(got) == 0 || got[0].ModeUnit != 60 {
		t.Errorf("filterBests(time 60) = %v", got)
	}

	got = filterBests(bests, "spanish")
	if len(got) != 1 || got[0].Language != "spanish" {
		t.Errorf("filterBests(spanish) = %v", got)
	}

	if got = filterBests(bests, "xxxxxx"); len(got) != 0 {
		t.Errorf("filterBests(xxxxxx) = %v, want empty", got)
	}
}

func TestBestLabel(t *testing.T) {
	if got := bestLabel(api.PersonalBest{Mode: "time", ModeUnit: 60}); got != "time 60" {
		t.Errorf("bestLabel = %q, want 'time 60'", got)
	}
	if got := bestLabel(api.PersonalBest{Mode: "zen"}); got != "zen" {
		t.Errorf("bestLabel = %q, want 'zen'", got)
	}
}
