package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"rafflebot/internal/domain/entities"
)

// payloadRecord is the JSON layout of the variant-specific event data. It
// is the part of the row that goes through the cipher; scheduling fields
// stay in plain columns so ListUnresolved can filter in SQL.
type payloadRecord struct {
	Prize        string         `json:"prize,omitempty"`
	WinnerCount  int            `json:"winner_count,omitempty"`
	Participants []string       `json:"participants,omitempty"`
	Winners      []string       `json:"winners,omitempty"`
	Question     string         `json:"question,omitempty"`
	Options      []optionRecord `json:"options,omitempty"`
}

type optionRecord struct {
	Label  string   `json:"label"`
	Votes  int      `json:"votes"`
	Voters []string `json:"voters,omitempty"`
}

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func encodePayload(event *entities.TimedEvent) ([]byte, error) {
	var rec payloadRecord
	switch event.Kind {
	case entities.KindDrawing:
		rec = payloadRecord{
			Prize:        event.Drawing.Prize,
			WinnerCount:  event.Drawing.WinnerCount,
			Participants: event.Drawing.Participants,
			Winners:      event.Drawing.Winners,
		}
	case entities.KindPoll:
		rec = payloadRecord{Question: event.Poll.Question}
		rec.Options = make([]optionRecord, len(event.Poll.Options))
		for i, opt := range event.Poll.Options {
			rec.Options[i] = optionRecord{Label: opt.Label, Votes: opt.Votes, Voters: opt.Voters}
		}
	default:
		return nil, fmt.Errorf("unknown event kind %q", event.Kind)
	}
	return json.Marshal(rec)
}

func decodePayload(event *entities.TimedEvent, raw []byte) error {
	var rec payloadRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	switch event.Kind {
	case entities.KindDrawing:
		event.Drawing = &entities.Drawing{
			Prize:        rec.Prize,
			WinnerCount:  rec.WinnerCount,
			Participants: rec.Participants,
			Winners:      rec.Winners,
		}
		if event.Drawing.Participants == nil {
			event.Drawing.Participants = []string{}
		}
		if event.Drawing.Winners == nil {
			event.Drawing.Winners = []string{}
		}
	case entities.KindPoll:
		options := make([]entities.PollOption, len(rec.Options))
		for i, opt := range rec.Options {
			options[i] = entities.PollOption{Label: opt.Label, Votes: opt.Votes, Voters: opt.Voters}
		}
		event.Poll = &entities.Poll{Question: rec.Question, Options: options}
	default:
		return fmt.Errorf("unknown event kind %q", event.Kind)
	}
	return nil
}
