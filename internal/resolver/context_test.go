package resolver

import "testing"

func armedConversation() *Conversation {
	conv := NewConversation("u1")
	conv.SetPending(&PendingAction{
		Action:         Action{Label: "Open documents", Type: ActionLink, Value: "/pets/p1/documents"},
		RelatedPetID:   "p1",
		RelatedPetName: "Apollo",
		Topic:          "documents",
	})
	return conv
}

func TestConsumePending(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		confirmed bool
		ambiguous bool
	}{
		{"english yes", "yes", true, false},
		{"english no", "no", false, false},
		{"thai yes", "ใช่", true, false},
		{"thai no wraps thai yes", "ไม่ใช่", false, false},
		{"thai cancel", "ยกเลิก", false, false},
		{"short confirm phrase", "ok do it", true, false},
		{"unrelated question", "what about his father though", false, true},
		{"long sentence with yes inside", "yes i was wondering whether the documents cover vaccine history too", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := armedConversation()
			out := conv.ConsumePending(tt.text)

			if tt.ambiguous {
				if out != nil {
					t.Fatalf("ConsumePending(%q) = %+v, want nil for ambiguous input", tt.text, out)
				}
				if !conv.HasPending() {
					t.Error("ambiguous reply cleared the slot")
				}
				return
			}
			if out == nil {
				t.Fatalf("ConsumePending(%q) = nil, want an outcome", tt.text)
			}
			if out.Confirmed != tt.confirmed {
				t.Errorf("confirmed = %v, want %v", out.Confirmed, tt.confirmed)
			}
			if tt.confirmed && out.Action == nil {
				t.Error("confirmed outcome carries no action")
			}
			if conv.HasPending() {
				t.Error("slot still armed after consumption")
			}
		})
	}
}

func TestConsumePendingExactlyOnce(t *testing.T) {
	conv := armedConversation()
	if out := conv.ConsumePending("yes"); out == nil || !out.Confirmed {
		t.Fatalf("first consume = %+v", out)
	}
	if out := conv.ConsumePending("yes"); out != nil {
		t.Fatalf("second consume = %+v, want nil", out)
	}
}

func TestSetPendingOverwrites(t *testing.T) {
	conv := armedConversation()
	conv.SetPending(&PendingAction{Topic: "sale"})
	out := conv.ConsumePending("yes")
	if out == nil || out.Action.Topic != "sale" {
		t.Fatalf("outcome = %+v, want the newest offer", out)
	}
}

func TestPromoteAndClearPet(t *testing.T) {
	conv := NewConversation("u1")
	pets := testPets()
	conv.PromotePet(&pets.all[0])
	if conv.ActivePet == nil || conv.ActivePet.ID != "p1" {
		t.Fatalf("active pet = %+v", conv.ActivePet)
	}
	conv.ClearPet()
	if conv.ActivePet != nil {
		t.Error("active pet survives ClearPet")
	}
}
