package db

import (
	"database/sql"
	"encoding/json"

	"github.com/quillchat/quill/internal/types"
)

// SearchCustomEmojis returns custom emoji whose name starts with prefix,
// limited to limit rows. The prefix is LIKE-escaped before matching.
func (s *Store) SearchCustomEmojis(prefix string, limit int) ([]types.CustomEmoji, error) {
	rows, err := s.conn.Query(`
		SELECT name, extension, aliases
		FROM quill_custom_emojis
		WHERE name LIKE ? ESCAPE '\'
		ORDER BY name
		LIMIT ?
	`, sanitizeLikeString(prefix)+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emojis []types.CustomEmoji
	for rows.Next() {
		var emoji types.CustomEmoji
		var aliases string
		if err := rows.Scan(&emoji.Name, &emoji.Extension, &aliases); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(aliases), &emoji.Aliases); err != nil {
			return nil, err
		}
		emojis = append(emojis, emoji)
	}
	return emojis, rows.Err()
}

// UpsertCustomEmoji creates or replaces a custom emoji mirror row.
func (s *Store) UpsertCustomEmoji(emoji types.CustomEmoji) error {
	aliases, err := json.Marshal(emoji.Aliases)
	if err != nil {
		return err
	}
	if emoji.Aliases == nil {
		aliases = []byte("[]")
	}
	return s.Write(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO quill_custom_emojis (name, extension, aliases)
			VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				extension = excluded.extension,
				aliases = excluded.aliases
		`, emoji.Name, emoji.Extension, string(aliases))
		return err
	})
}

// TouchFrequentEmoji increments the local usage count for an emoji, creating
// the record with count 1 on first use.
func (s *Store) TouchFrequentEmoji(record types.FrequentlyUsedEmoji) error {
	return s.Write(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO quill_frequent_emojis (content, extension, is_custom, count)
			VALUES (?, ?, ?, 1)
			ON CONFLICT(content) DO UPDATE SET count = count + 1
		`, record.Content, nullableValue(record.Extension), boolInt(record.IsCustom))
		return err
	})
}

// FrequentEmojis returns all usage records ranked by count descending. Ties
// keep first-use order; rowid grows in insertion order and the sort on it is
// what makes the ranking stable.
func (s *Store) FrequentEmojis() ([]types.FrequentlyUsedEmoji, error) {
	rows, err := s.conn.Query(`
		SELECT content, extension, is_custom, count
		FROM quill_frequent_emojis
		ORDER BY count DESC, rowid ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []types.FrequentlyUsedEmoji
	for rows.Next() {
		var record types.FrequentlyUsedEmoji
		var extension sql.NullString
		var isCustom int64
		if err := rows.Scan(&record.Content, &extension, &isCustom, &record.Count); err != nil {
			return nil, err
		}
		record.Extension = nullStringPtr(extension)
		record.IsCustom = isCustom != 0
		records = append(records, record)
	}
	return records, rows.Err()
}
