package client

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func storedRequest() *RepairRequest {
	tech := 7
	return &RepairRequest{
		ID:           42,
		Title:        "Broken projector",
		Description:  "No signal on HDMI",
		Location:     "Room 301",
		CategoryID:   2,
		RequesterID:  5,
		TechnicianID: &tech,
		Status:       StatusPending,
		Priority:     PriorityMedium,
		Cost:         15,
		CreatedAt:    time.Now(),
	}
}

func TestDiffEditStatusOnly(t *testing.T) {
	prev := storedRequest()
	edit := EditOf(prev)
	edit.Status = StatusCompleted

	payload, err := DiffEdit(prev, edit)
	if err != nil {
		t.Fatalf("DiffEdit: %v", err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"status":"completed"}` {
		t.Fatalf("payload = %s, want {\"status\":\"completed\"}", data)
	}
}

func TestDiffEditUnchanged(t *testing.T) {
	prev := storedRequest()
	payload, err := DiffEdit(prev, EditOf(prev))
	if err != nil {
		t.Fatalf("DiffEdit: %v", err)
	}
	if !payload.IsEmpty() {
		data, _ := json.Marshal(payload)
		t.Fatalf("unchanged form produced payload %s", data)
	}
}

func TestDiffEditNumericCost(t *testing.T) {
	// "15.0" typed in place of the stored 15 is not a change.
	prev := storedRequest()
	edit := EditOf(prev)
	edit.Cost = "15.0"

	payload, err := DiffEdit(prev, edit)
	if err != nil {
		t.Fatalf("DiffEdit: %v", err)
	}
	if payload.Cost != nil {
		t.Fatalf("Cost diffed for equal numeric value: %v", *payload.Cost)
	}

	edit.Cost = "99.5"
	payload, err = DiffEdit(prev, edit)
	if err != nil {
		t.Fatalf("DiffEdit: %v", err)
	}
	if payload.Cost == nil || *payload.Cost != 99.5 {
		t.Fatalf("Cost = %v, want 99.5", payload.Cost)
	}
}

func TestDiffEditTechnician(t *testing.T) {
	prev := storedRequest() // technician 7

	t.Run("same technician re-selected", func(t *testing.T) {
		edit := EditOf(prev)
		edit.TechnicianID = "7"
		payload, err := DiffEdit(prev, edit)
		if err != nil {
			t.Fatal(err)
		}
		if payload.TechnicianID != nil {
			t.Fatalf("TechnicianID diffed for same value: %v", *payload.TechnicianID)
		}
	})

	t.Run("reassigned", func(t *testing.T) {
		edit := EditOf(prev)
		edit.TechnicianID = "9"
		payload, err := DiffEdit(prev, edit)
		if err != nil {
			t.Fatal(err)
		}
		if payload.TechnicianID == nil || *payload.TechnicianID != 9 {
			t.Fatalf("TechnicianID = %v, want 9", payload.TechnicianID)
		}
	})

	t.Run("unassigned", func(t *testing.T) {
		edit := EditOf(prev)
		edit.TechnicianID = ""
		payload, err := DiffEdit(prev, edit)
		if err != nil {
			t.Fatal(err)
		}
		if payload.TechnicianID == nil || *payload.TechnicianID != 0 {
			t.Fatalf("TechnicianID = %v, want 0 (unassign)", payload.TechnicianID)
		}
	})

	t.Run("unassigned stays unassigned", func(t *testing.T) {
		unassigned := storedRequest()
		unassigned.TechnicianID = nil
		edit := EditOf(unassigned)
		payload, err := DiffEdit(unassigned, edit)
		if err != nil {
			t.Fatal(err)
		}
		if payload.TechnicianID != nil {
			t.Fatalf("TechnicianID diffed for unchanged nil: %v", *payload.TechnicianID)
		}
	})
}

func TestDiffEditBadInput(t *testing.T) {
	prev := storedRequest()

	edit := EditOf(prev)
	edit.Cost = "abc"
	if _, err := DiffEdit(prev, edit); !errors.Is(err, ErrValidation) {
		t.Errorf("invalid cost: err = %v, want ErrValidation", err)
	}

	edit = EditOf(prev)
	edit.Title = "   "
	if _, err := DiffEdit(prev, edit); !errors.Is(err, ErrValidation) {
		t.Errorf("blank title: err = %v, want ErrValidation", err)
	}

	edit = EditOf(prev)
	edit.TechnicianID = "x"
	if _, err := DiffEdit(prev, edit); !errors.Is(err, ErrValidation) {
		t.Errorf("invalid technician: err = %v, want ErrValidation", err)
	}
}
