package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lexisother/TurnipBeams/datastore"
	"github.com/rs/zerolog/log"
)

const commandHistoryLimit = 20

// Storage keeps per-guild operator configuration: the command prefix, the
// role-to-permission-level grants, and a bounded command history.
type Storage struct {
	ds *datastore.DataStore
}

type CommandHistoryRecord struct {
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Command   string    `json:"command"`
	Args      string    `json:"args"`
	Datetime  time.Time `json:"datetime"`
}

type Record struct {
	Prefix              string                 `json:"prefix,omitempty"`
	RoleLevels          map[string]int         `json:"role_levels,omitempty"`
	CommandsHistoryList []CommandHistoryRecord `json:"cmd_history,omitempty"`
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// getOrCreateGuildRecord returns the guild's record, creating an empty one if
// the guild is unknown. Values come back from the datastore as generic JSON,
// so they are round-tripped through encoding/json into a typed Record.
func (s *Storage) getOrCreateGuildRecord(guildID string) (*Record, error) {
	data, exists := s.ds.Get(guildID)
	if !exists {
		record := &Record{RoleLevels: map[string]int{}}
		s.ds.Add(guildID, record)
		return record, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling data: %w", err)
	}

	var record Record
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("error unmarshalling to *Record: %w", err)
	}

	if record.RoleLevels == nil {
		record.RoleLevels = map[string]int{}
	}
	if len(record.CommandsHistoryList) > commandHistoryLimit {
		record.CommandsHistoryList = record.CommandsHistoryList[len(record.CommandsHistoryList)-commandHistoryLimit:]
	}

	return &record, nil
}

// GetPrefix returns the guild's custom prefix, or "" when none is set.
func (s *Storage) GetPrefix(guildID string) (string, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return "", err
	}
	return record.Prefix, nil
}

func (s *Storage) SetPrefix(guildID, prefix string) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}
	record.Prefix = prefix
	s.ds.Add(guildID, record)
	return nil
}

// RoleLevels returns the guild's role-to-level grants. Grants outside the
// known level range are dropped with a warning; the earlier stored values are
// otherwise returned as-is.
func (s *Storage) RoleLevels(guildID string, maxLevel int) (map[string]int, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	levels := make(map[string]int, len(record.RoleLevels))
	for roleID, level := range record.RoleLevels {
		if level < 0 || level > maxLevel {
			log.Warn().Str("guild", guildID).Str("role", roleID).Int("level", level).
				Msg("Ignoring role grant with unknown permission level")
			continue
		}
		levels[roleID] = level
	}
	return levels, nil
}

func (s *Storage) SetRoleLevel(guildID, roleID string, level int) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}
	record.RoleLevels[roleID] = level
	s.ds.Add(guildID, record)
	return nil
}

// AppendCommandToHistory appends a dispatched command to the guild's bounded
// history list.
func (s *Storage) AppendCommandToHistory(guildID string, entry CommandHistoryRecord) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}
	record.CommandsHistoryList = append(record.CommandsHistoryList, entry)
	if len(record.CommandsHistoryList) > commandHistoryLimit {
		record.CommandsHistoryList = record.CommandsHistoryList[len(record.CommandsHistoryList)-commandHistoryLimit:]
	}
	s.ds.Add(guildID, record)
	return nil
}

// FetchCommandHistory returns the guild's recorded command history.
func (s *Storage) FetchCommandHistory(guildID string) ([]CommandHistoryRecord, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandsHistoryList, nil
}
