package models

import (
	"encoding/json"
	"fmt"
)

const (
	MemoryKindPhoto   = "photo"
	MemoryKindJournal = "journal"
)

// PhotoDetails is the photo variant payload of a memory.
type PhotoDetails struct {
	ImageURL string
	Caption  string
}

// JournalDetails is the journal variant payload of a memory.
type JournalDetails struct {
	DayNumber int
	Mood      string
	Note      string
	Highlight string
}

// Memory is a trip memory: either a photo or a journal entry, never both.
// The wire format is one flat object discriminated by a "type" field; the
// in-memory form keeps the two variants behind exclusive detail pointers so
// a photo can never carry journal fields.
type Memory struct {
	ID      int
	TripID  int
	Liked   bool
	Photo   *PhotoDetails
	Journal *JournalDetails
}

// Kind reports which variant the memory holds.
func (memory Memory) Kind() string {
	if memory.Journal != nil {
		return MemoryKindJournal
	}
	return MemoryKindPhoto
}

// memoryWire is the flat shape the remote API speaks.
type memoryWire struct {
	ID        int    `json:"id,omitempty"`
	TripID    int    `json:"tripId"`
	Type      string `json:"type"`
	Liked     bool   `json:"liked"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Caption   string `json:"caption,omitempty"`
	DayNumber int    `json:"dayNumber,omitempty"`
	Mood      string `json:"mood,omitempty"`
	Note      string `json:"note,omitempty"`
	Highlight string `json:"highlight,omitempty"`
}

func (memory Memory) MarshalJSON() ([]byte, error) {
	wire := memoryWire{
		ID:     memory.ID,
		TripID: memory.TripID,
		Type:   memory.Kind(),
		Liked:  memory.Liked,
	}
	if memory.Photo != nil {
		wire.ImageURL = memory.Photo.ImageURL
		wire.Caption = memory.Photo.Caption
	}
	if memory.Journal != nil {
		wire.DayNumber = memory.Journal.DayNumber
		wire.Mood = memory.Journal.Mood
		wire.Note = memory.Journal.Note
		wire.Highlight = memory.Journal.Highlight
	}
	return json.Marshal(wire)
}

func (memory *Memory) UnmarshalJSON(data []byte) error {
	wire := memoryWire{}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*memory = Memory{ID: wire.ID, TripID: wire.TripID, Liked: wire.Liked}
	switch wire.Type {
	case MemoryKindPhoto:
		memory.Photo = &PhotoDetails{ImageURL: wire.ImageURL, Caption: wire.Caption}
	case MemoryKindJournal:
		memory.Journal = &JournalDetails{
			DayNumber: wire.DayNumber,
			Mood:      wire.Mood,
			Note:      wire.Note,
			Highlight: wire.Highlight,
		}
	default:
		return fmt.Errorf("unknown memory type %q", wire.Type)
	}
	return nil
}
