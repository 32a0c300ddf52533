package entities

import (
	"testing"
	"time"
)

func TestNewMeetingID(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	m := NewMeeting("Q1 Board Review!", []string{"alice", "bob"}, now)

	if m.ID != "20250314_093000_Q1_Board_Review_" {
		t.Fatalf("unexpected id %q", m.ID)
	}
	if m.Status != MeetingStatusActive {
		t.Fatalf("unexpected status %q", m.Status)
	}
	if m.Name != "Q1 Board Review!" {
		t.Fatalf("unexpected name %q", m.Name)
	}
	if len(m.Participants) != 2 {
		t.Fatalf("unexpected participants %v", m.Participants)
	}
}

func TestNewMeetingBlankName(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	m := NewMeeting("   ", nil, now)
	if m.ID != "20250314_093000_meeting" {
		t.Fatalf("unexpected id %q", m.ID)
	}
}

func TestMeetingDuration(t *testing.T) {
	start := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	m := NewMeeting("sync", nil, start)

	now := start.Add(42 * time.Second)
	if m.Duration(now) != 42*time.Second {
		t.Fatalf("unexpected active duration %v", m.Duration(now))
	}

	end := start.Add(30 * time.Minute)
	m.EndTime = &end
	if m.Duration(now.Add(time.Hour)) != 30*time.Minute {
		t.Fatalf("ended meeting should use end time, got %v", m.Duration(now))
	}
}

func TestMeetingEnded(t *testing.T) {
	m := NewMeeting("sync", nil, time.Now())
	if m.Ended() {
		t.Fatal("active meeting reported ended")
	}
	m.Status = MeetingStatusCompleted
	if !m.Ended() {
		t.Fatal("completed meeting not reported ended")
	}
	m.Status = MeetingStatusNoAudio
	if !m.Ended() {
		t.Fatal("no_audio meeting not reported ended")
	}
}

func TestChunkSpeakerOrUnknown(t *testing.T) {
	c := NewChunk("m1", "  ", "hello", 0)
	if c.SpeakerOrUnknown() != "Unknown" {
		t.Fatalf("unexpected speaker %q", c.SpeakerOrUnknown())
	}
	c.Speaker = " alice "
	if c.SpeakerOrUnknown() != "alice" {
		t.Fatalf("unexpected speaker %q", c.SpeakerOrUnknown())
	}
}

func TestNewChunkOrdinal(t *testing.T) {
	c := NewChunk("m1", "alice", "hello", 7)
	if c.Timestamp == nil || *c.Timestamp != 7 {
		t.Fatalf("unexpected timestamp %v", c.Timestamp)
	}
	if c.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("expected generated id")
	}
}
