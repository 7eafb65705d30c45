package commands

import (
	"errors"
	"testing"

	"checklist/internal/service"
)

func TestParseTaskRef_Number(t *testing.T) {
	ref, err := ParseTaskRef("5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 5 || ref.ID != "" {
		t.Errorf("expected Num 5, got %+v", ref)
	}
}

func TestParseTaskRef_UUID(t *testing.T) {
	ref, err := ParseTaskRef("{6BA7B810-9DAD-11D1-80B4-00C04FD430C8}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	if ref.ID != expected {
		t.Errorf("expected ID %q, got %q", expected, ref.ID)
	}
	if ref.Num != 0 {
		t.Errorf("expected Num 0, got %d", ref.Num)
	}
}

func TestParseTaskRef_RawID(t *testing.T) {
	ref, err := ParseTaskRef("1700000000000x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "1700000000000x" {
		t.Errorf("expected raw ID, got %+v", ref)
	}
}

func TestParseTaskRef_Invalid(t *testing.T) {
	tests := []struct {
		arg      string
		expected string
	}{
		{"0", "invalid task reference: 0"},
		{"-1", "invalid task reference: -1"},
		{"99999999999999999999", "invalid task reference: 99999999999999999999"},
	}

	for _, tt := range tests {
		_, err := ParseTaskRef(tt.arg)
		if err == nil {
			t.Errorf("%q: expected error", tt.arg)
			continue
		}
		if err.Error() != tt.expected {
			t.Errorf("%q: expected %q, got %q", tt.arg, tt.expected, err.Error())
		}
	}
}

func TestParseTaskRef_Blank(t *testing.T) {
	_, err := ParseTaskRef("  ")
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRefs_Empty(t *testing.T) {
	_, err := ParseTaskRefs(nil)
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestTaskRef_String(t *testing.T) {
	if s := (TaskRef{Num: 3}).String(); s != "3" {
		t.Errorf("expected \"3\", got %q", s)
	}
	if s := (TaskRef{ID: "abc"}).String(); s != "abc" {
		t.Errorf("expected \"abc\", got %q", s)
	}
}

func TestResolveTaskRefs(t *testing.T) {
	snapshot := service.TaskList{
		{ID: "t1", Label: "a"},
		{ID: "t2", Label: "b"},
		{ID: "t3", Label: "c"},
	}

	tasks, err := resolveTaskRefs(snapshot, []TaskRef{{Num: 3}, {ID: "t1"}, {Num: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != "t3" || tasks[1].ID != "t1" {
		t.Errorf("unexpected tasks %+v", tasks)
	}
}

func TestResolveTaskRefs_Errors(t *testing.T) {
	snapshot := service.TaskList{{ID: "t1", Label: "a"}}

	if _, err := resolveTaskRefs(snapshot, []TaskRef{{Num: 2}}); err == nil || err.Error() != "task number out of range: 2" {
		t.Errorf("unexpected error %v", err)
	}
	if _, err := resolveTaskRefs(snapshot, []TaskRef{{ID: "t9"}}); err == nil || err.Error() != "task not found: t9" {
		t.Errorf("unexpected error %v", err)
	}
}
