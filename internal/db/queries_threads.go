package db

import (
	"database/sql"

	"github.com/quillchat/quill/internal/types"
)

// GetThread returns a mirrored thread by its root message id, or nil when the
// thread has not been opened locally.
func (s *Store) GetThread(id string) (*types.Thread, error) {
	row := s.conn.QueryRow(`
		SELECT id, rid, draft_message, reply_count, last_reply_ts
		FROM quill_threads
		WHERE id = ?
	`, id)
	var thread types.Thread
	var draft sql.NullString
	var lastReply sql.NullInt64
	if err := row.Scan(&thread.ID, &thread.RID, &draft, &thread.ReplyCount, &lastReply); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	thread.DraftMessage = nullStringPtr(draft)
	thread.LastReplyTS = nullIntPtr(lastReply)
	return &thread, nil
}

// UpsertThread creates or refreshes a thread mirror row with server-owned
// fields. The draft column is locally owned and only ever written through
// SetThreadDraft, so an update never touches it.
func (s *Store) UpsertThread(thread types.Thread) error {
	return s.Write(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO quill_threads (id, rid, reply_count, last_reply_ts)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				rid = excluded.rid,
				reply_count = excluded.reply_count,
				last_reply_ts = excluded.last_reply_ts
		`, thread.ID, thread.RID, thread.ReplyCount, nullableValue(thread.LastReplyTS))
		return err
	})
}

// SetThreadDraft stores the composer draft for a thread, creating the thread
// row on first use. An empty draft clears the column.
func (s *Store) SetThreadDraft(id, rid, draft string) error {
	return s.Write(func(tx *sql.Tx) error {
		var value any
		if draft != "" {
			value = draft
		}
		_, err := tx.Exec(`
			INSERT INTO quill_threads (id, rid, draft_message)
			VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET draft_message = excluded.draft_message
		`, id, rid, value)
		return err
	})
}

// GetThreadsByRoom returns the mirrored threads of a room, most recent reply
// first.
func (s *Store) GetThreadsByRoom(rid string) ([]types.Thread, error) {
	rows, err := s.conn.Query(`
		SELECT id, rid, draft_message, reply_count, last_reply_ts
		FROM quill_threads
		WHERE rid = ?
		ORDER BY last_reply_ts DESC
	`, rid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var threads []types.Thread
	for rows.Next() {
		var thread types.Thread
		var draft sql.NullString
		var lastReply sql.NullInt64
		if err := rows.Scan(&thread.ID, &thread.RID, &draft, &thread.ReplyCount, &lastReply); err != nil {
			return nil, err
		}
		thread.DraftMessage = nullStringPtr(draft)
		thread.LastReplyTS = nullIntPtr(lastReply)
		threads = append(threads, thread)
	}
	return threads, rows.Err()
}
