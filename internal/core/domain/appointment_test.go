package domain

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func apptAt(id string, start time.Time) Appointment {
	return Appointment{ID: id, StartTime: start, EndTime: start.Add(time.Hour), Status: StatusScheduled}
}

func TestPartition_Example(t *testing.T) {
	tomorrow := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	upcoming, past := Partition([]Appointment{apptAt("a", tomorrow), apptAt("b", yesterday)}, now)

	if len(upcoming) != 1 || upcoming[0].ID != "a" {
		t.Fatalf("unexpected upcoming: %+v", upcoming)
	}
	if len(past) != 1 || past[0].ID != "b" {
		t.Fatalf("unexpected past: %+v", past)
	}
}

func TestPartition_StartEqualToNowIsPast(t *testing.T) {
	upcoming, past := Partition([]Appointment{apptAt("a", now)}, now)
	if len(upcoming) != 0 || len(past) != 1 {
		t.Fatalf("expected appointment at now to be past, got upcoming=%d past=%d", len(upcoming), len(past))
	}
}

func TestPartition_CoverAndOrderForAnyPermutation(t *testing.T) {
	var list []Appointment
	for i := -5; i <= 5; i++ {
		list = append(list, apptAt(string(rune('a'+i+5)), now.Add(time.Duration(i)*time.Hour)))
	}

	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		rng.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })
		before := append([]Appointment(nil), list...)

		upcoming, past := Partition(list, now)

		if len(upcoming)+len(past) != len(list) {
			t.Fatalf("partition lost items: %d+%d != %d", len(upcoming), len(past), len(list))
		}
		seen := make(map[string]int)
		for _, a := range upcoming {
			seen[a.ID]++
			if !a.StartTime.After(now) {
				t.Fatalf("upcoming contains non-future appointment %s", a.ID)
			}
		}
		for _, a := range past {
			seen[a.ID]++
			if a.StartTime.After(now) {
				t.Fatalf("past contains future appointment %s", a.ID)
			}
		}
		for _, a := range list {
			if seen[a.ID] != 1 {
				t.Fatalf("appointment %s appears %d times", a.ID, seen[a.ID])
			}
		}
		for i := 1; i < len(upcoming); i++ {
			if upcoming[i].StartTime.Before(upcoming[i-1].StartTime) {
				t.Fatalf("upcoming not ascending at %d", i)
			}
		}
		for i := 1; i < len(past); i++ {
			if past[i].StartTime.After(past[i-1].StartTime) {
				t.Fatalf("past not descending at %d", i)
			}
		}
		for i := range list {
			if list[i].ID != before[i].ID {
				t.Fatalf("input slice was reordered")
			}
		}
	}
}

func TestEndFor(t *testing.T) {
	start := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	for _, d := range []int{15, 30, 45, 60, 90, 240} {
		end := EndFor(start, d)
		if end.Sub(start) != time.Duration(d)*time.Minute {
			t.Fatalf("duration %d: got end %v", d, end)
		}
	}
}

func TestAppointment_CancelKeepsInstants(t *testing.T) {
	a := apptAt("a", now.Add(24*time.Hour))
	later := now.Add(time.Minute)

	got := a.Cancel(later)

	if got.Status != StatusCancelled {
		t.Fatalf("expected cancelled, got %s", got.Status)
	}
	if !got.StartTime.Equal(a.StartTime) || !got.EndTime.Equal(a.EndTime) {
		t.Fatalf("cancel changed instants: %+v", got)
	}
	if !got.UpdatedAt.Equal(later) {
		t.Fatalf("updatedAt not set")
	}
	if a.Status != StatusScheduled {
		t.Fatalf("original mutated")
	}
}

func TestAppointment_RescheduleOnlyTouchesStartStatusUpdatedAt(t *testing.T) {
	a := apptAt("a", now.Add(24*time.Hour))
	a.Notes = "fringe only"
	a.CustomerID = "user-1"
	a.StaffID = "staff-1"
	newStart := now.Add(48 * time.Hour)
	later := now.Add(time.Minute)

	got := a.Reschedule(newStart, later)

	if !got.StartTime.Equal(newStart) || got.Status != StatusRescheduled {
		t.Fatalf("unexpected reschedule result: %+v", got)
	}
	got.StartTime = a.StartTime
	got.Status = a.Status
	got.UpdatedAt = a.UpdatedAt
	if got.ID != a.ID || got.Notes != a.Notes || got.CustomerID != a.CustomerID ||
		got.StaffID != a.StaffID || !got.EndTime.Equal(a.EndTime) {
		t.Fatalf("reschedule changed other fields: %+v", got)
	}
}

func TestAppointmentStatus_Valid(t *testing.T) {
	for _, s := range []AppointmentStatus{StatusScheduled, StatusRescheduled, StatusCompleted, StatusCancelled, StatusNoShow} {
		if !s.Valid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if AppointmentStatus("pending").Valid() {
		t.Fatalf("pending should not be valid")
	}
}

func TestEventTypeFor(t *testing.T) {
	if EventTypeFor(CancelPatch()) != EventAppointmentCancelled {
		t.Fatalf("cancel patch should map to cancelled event")
	}
	if EventTypeFor(ReschedulePatch(now)) != EventAppointmentRescheduled {
		t.Fatalf("reschedule patch should map to rescheduled event")
	}
	notes := "x"
	if EventTypeFor(AppointmentPatch{Notes: &notes}) != EventAppointmentUpdated {
		t.Fatalf("notes patch should map to updated event")
	}
}

func TestParseRole(t *testing.T) {
	cases := map[string]Role{"admin": RoleAdmin, "Staff": RoleStaff, "user": RoleCustomer, "customer": RoleCustomer}
	for in, want := range cases {
		got, ok := ParseRole(in)
		if !ok || got != want {
			t.Fatalf("ParseRole(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseRole("guest"); ok {
		t.Fatalf("guest should not parse")
	}
}

func TestRole_UnmarshalJSON(t *testing.T) {
	var u User
	if err := json.Unmarshal([]byte(`{"id":"u1","role":"user"}`), &u); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if u.Role != RoleCustomer {
		t.Fatalf("expected legacy user role to decode as customer, got %q", u.Role)
	}

	if err := json.Unmarshal([]byte(`{"role":"guest"}`), &u); err == nil {
		t.Fatalf("expected unknown role to be rejected")
	}

	var empty User
	if err := json.Unmarshal([]byte(`{"id":"u2","role":""}`), &empty); err != nil || empty.Role != "" {
		t.Fatalf("expected empty role to stay unset, got %q, %v", empty.Role, err)
	}
}
