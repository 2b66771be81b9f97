package protocol

import (
	"encoding/json"
	"errors"
	"testing"
)

// TestParse covers each inbound kind plus the error branches.
func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Command
		wantErr error
	}{
		{
			name:  "join",
			input: `{"type":"join","name":"Aragog","skin":"dark","vip":true}`,
			want:  Join{Name: "Aragog", Skin: "dark", VIP: true},
		},
		{
			name:  "join with defaults",
			input: `{"type":"join"}`,
			want:  Join{},
		},
		{
			name:  "move",
			input: `{"type":"move","dx":0.5,"dy":-1,"atk":true}`,
			want:  Move{DX: 0.5, DY: -1, Attack: true},
		},
		{
			name:  "action web",
			input: `{"type":"action","action":"web"}`,
			want:  Action{Action: ActionWeb},
		},
		{
			name:  "action rope",
			input: `{"type":"action","action":"rope"}`,
			want:  Action{Action: ActionRope},
		},
		{
			name:  "emoji",
			input: `{"type":"emoji","index":2}`,
			want:  Emoji{Index: 2},
		},
		{
			name:  "respawn",
			input: `{"type":"respawn"}`,
			want:  Respawn{},
		},
		{
			name:    "not json",
			input:   `{{{`,
			wantErr: ErrMalformed,
		},
		{
			name:    "wrong field type",
			input:   `{"type":"move","dx":"fast"}`,
			wantErr: ErrMalformed,
		},
		{
			name:    "unknown kind",
			input:   `{"type":"teleport"}`,
			wantErr: ErrUnknownKind,
		},
		{
			name:    "missing kind",
			input:   `{"dx":1}`,
			wantErr: ErrUnknownKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

// TestEncodeInit verifies the init acknowledgment wire shape.
func TestEncodeInit(t *testing.T) {
	data, err := Encode(NewInit("p1", 100, 200))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("not valid JSON: %v", err)
	}
	if decoded["type"] != TypeInit || decoded["id"] != "p1" {
		t.Errorf("unexpected frame: %s", data)
	}
}

// TestUpdateOmitsItemsWhenNil verifies the item-throttling wire behavior:
// an update with no item list must not carry an "items" key at all.
func TestUpdateOmitsItemsWhenNil(t *testing.T) {
	data, err := Encode(Update{Type: TypeUpdate, Tick: 7, Players: []PlayerState{}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("not valid JSON: %v", err)
	}
	if _, present := decoded["items"]; present {
		t.Error("nil item list serialized as an items key")
	}

	data, _ = Encode(Update{Type: TypeUpdate, Items: []ItemState{{ID: 1, Type: 2}}})
	json.Unmarshal(data, &decoded)
	if _, present := decoded["items"]; !present {
		t.Error("populated item list missing from the frame")
	}
}
