package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mizrakjian/monkeystats/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(config.Config{
		APIKey:  "test-key",
		User:    "testuser",
		BaseURL: srv.URL,
	})
}

func TestProfile(t *testing.T) {
	payload := `{"message":"ok","data":{
		"name":"testuser",
		"addedAt":1577836800000,
		"xp":191226,
		"typingStats":{"completedTests":2712,"startedTests":4312,"timeTyping":161025.6},
		"personalBests":{
			"time":{
				"60":[
					{"wpm":102.4,"acc":97.2,"consistency":80.1,"language":"english","punctuation":false,"numbers":false,"timestamp":1700000000000},
					{"wpm":88.0,"acc":95.0,"consistency":75.0,"language":"english","punctuation":true,"numbers":false,"timestamp":1690000000000}
				]
			},
			"words":{"25":[{"wpm":110.2,"acc":98.0,"consistency":82.3,"timestamp":1710000000000}]}
		}
	}}`

	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/users/testuser/profile" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(payload))
	})

	profile, err := client.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	if gotAuth != "ApeKey test-key" {
		t.Errorf("Authorization = %q, want ApeKey header", gotAuth)
	}
	if profile.Username != "testuser" {
		t.Errorf("Username = %q, want testuser", profile.Username)
	}
	if !profile.Joined.Equal(time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Joined = %v, want 2020-01-01", profile.Joined)
	}
	if profile.Tests.Completed != 2712 || profile.Tests.Started != 4312 {
		t.Errorf("Tests = %+v", profile.Tests)
	}
	if len(profile.PersonalBests) != 3 {
		t.Fatalf("got %d personal bests, want 3", len(profile.PersonalBests))
	}

	var found bool
	for _, pb := range profile.PersonalBests {
		if pb.Mode == "words" && pb.ModeUnit == 25 {
			found = true
			if pb.Language != "english" {
				t.Errorf("missing language should default to english, got %q", pb.Language)
			}
			if pb.WPM != 110.2 {
				t.Errorf("WPM = %v, want 110.2", pb.WPM)
			}
		}
	}
	if !found {
		t.Error("words/25 personal best not flattened")
	}
}

func TestStreak(t *testing.T) {
	payload := `{"message":"ok","data":{"lastResultTimestamp":1736121600000,"length":42,"maxLength":97}}`

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	})

	streak, err := client.Streak(context.Background())
	if err != nil {
		t.Fatalf("Streak failed: %v", err)
	}

	if streak.Length != 42 || streak.MaxLength != 97 {
		t.Errorf("Streak = %+v", streak)
	}

	// lastResultTimestamp is 2025-01-06 00:00 UTC
	if !streak.Claimed(time.Date(2025, time.January, 6, 15, 0, 0, 0, time.UTC)) {
		t.Error("streak should be claimed on the same UTC day")
	}
	if streak.Claimed(time.Date(2025, time.January, 7, 1, 0, 0, 0, time.UTC)) {
		t.Error("streak should be unclaimed the next UTC day")
	}
}

func TestActivity(t *testing.T) {
	payload := `{"message":"ok","data":{"testsByDays":[10,null,0,25],"lastDay":1736121600000}}`

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/currentTestActivity" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(payload))
	})

	activity, err := client.Activity(context.Background())
	if err != nil {
		t.Fatalf("Activity failed: %v", err)
	}

	if len(activity.Days) != 4 {
		t.Fatalf("got %d days, want 4", len(activity.Days))
	}
	if !activity.Days[0].Valid || activity.Days[0].Count != 10 {
		t.Errorf("day 0 = %+v, want 10", activity.Days[0])
	}
	if activity.Days[1].Valid {
		t.Errorf("null day decoded as %+v, want no data", activity.Days[1])
	}
	if !activity.Days[2].Valid || activity.Days[2].Count != 0 {
		t.Errorf("zero day = %+v, want a recorded zero", activity.Days[2])
	}
	if !activity.LastDay.Equal(time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("LastDay = %v", activity.LastDay)
	}
}

func TestLastTest(t *testing.T) {
	payload := `{"message":"ok","data":{
		"mode":"time","mode2":"60","language":"english_1k",
		"punctuation":true,"numbers":false,
		"wpm":95.6,"acc":96.5,"consistency":78.9,
		"timestamp":1736121600000,"isPb":true
	}}`

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	})

	last, err := client.LastTest(context.Background())
	if err != nil {
		t.Fatalf("LastTest failed: %v", err)
	}

	if last.Mode != "time" || last.ModeUnit != 60 {
		t.Errorf("mode = %s/%d, want time/60", last.Mode, last.ModeUnit)
	}
	if last.Language != "english_1k" {
		t.Errorf("Language = %q", last.Language)
	}
	if !last.IsPB {
		t.Error("IsPB not decoded")
	}
}

func TestFetchErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
	})

	if _, err := client.Streak(context.Background()); err == nil {
		t.Error("expected an error for a 401 response")
	}
}

func TestFetchMalformedPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"ok","data":"not an object"}`))
	})

	if _, err := client.Streak(context.Background()); err == nil {
		t.Error("expected an error for a malformed payload")
	}
}
