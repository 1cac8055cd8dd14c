package journal

import (
	"path/filepath"
	"testing"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestSessionLifecycle(t *testing.T) {
	j := openTestJournal(t)

	id, err := j.StartSession("Tenka", "AA:BB:CC:DD:EE:FF")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if id == "" {
		t.Fatal("StartSession returned empty ID")
	}

	sessions, err := j.ListSessions(10)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("ListSessions returned %d sessions, want 1", len(sessions))
	}
	if sessions[0].SessionID != id {
		t.Errorf("SessionID = %q, want %q", sessions[0].SessionID, id)
	}
	if sessions[0].DeviceName != "Tenka" {
		t.Errorf("DeviceName = %q", sessions[0].DeviceName)
	}
	if sessions[0].EndedAt != nil {
		t.Error("EndedAt should be nil before EndSession")
	}

	if err := j.EndSession(id); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	sessions, _ = j.ListSessions(10)
	if sessions[0].EndedAt == nil {
		t.Error("EndedAt should be set after EndSession")
	}
}

func TestRecordAndListCommands(t *testing.T) {
	j := openTestJournal(t)

	id, err := j.StartSession("Tenka", "addr")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	if err := j.RecordCommand(id, "A", 50, "+105a"); err != nil {
		t.Fatalf("RecordCommand: %v", err)
	}
	if err := j.RecordCommand(id, "A", 0, "+000a"); err != nil {
		t.Fatalf("RecordCommand: %v", err)
	}

	commands, err := j.ListCommands(id)
	if err != nil {
		t.Fatalf("ListCommands: %v", err)
	}
	if len(commands) != 2 {
		t.Fatalf("ListCommands returned %d commands, want 2", len(commands))
	}
	if commands[0].Payload != "+105a" || commands[1].Payload != "+000a" {
		t.Errorf("commands out of order: %v", commands)
	}
	if commands[0].Motor != "A" || commands[0].Velocity != 50 {
		t.Errorf("command fields wrong: %+v", commands[0])
	}
}

func TestRecordAndListBatteryReadings(t *testing.T) {
	j := openTestJournal(t)

	id, err := j.StartSession("Tenka", "addr")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	if err := j.RecordBattery(id, 3.251); err != nil {
		t.Fatalf("RecordBattery: %v", err)
	}

	readings, err := j.ListBatteryReadings(id)
	if err != nil {
		t.Fatalf("ListBatteryReadings: %v", err)
	}
	if len(readings) != 1 {
		t.Fatalf("ListBatteryReadings returned %d readings, want 1", len(readings))
	}
	if readings[0].Voltage != 3.251 {
		t.Errorf("Voltage = %v, want 3.251", readings[0].Voltage)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	id, err := j.StartSession("Tenka", "addr")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	j.Close()

	j2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer j2.Close()

	sessions, err := j2.ListSessions(10)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].SessionID != id {
		t.Errorf("sessions after reopen = %v", sessions)
	}
}
