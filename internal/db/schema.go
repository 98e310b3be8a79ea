package db

import "database/sql"

const schemaSQL = `
-- Room subscriptions (server-owned; local writes provisional)
CREATE TABLE IF NOT EXISTS quill_subscriptions (
  rid TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  fname TEXT,
  t TEXT NOT NULL,                       -- c, p, d, l
  open INTEGER NOT NULL DEFAULT 0,
  encrypted INTEGER NOT NULL DEFAULT 0,
  draft_message TEXT,
  disable_notifications INTEGER NOT NULL DEFAULT 0,
  mute_group_mentions INTEGER NOT NULL DEFAULT 0,
  hide_unread_status INTEGER NOT NULL DEFAULT 0,
  audio_notifications TEXT,              -- default, all, mentions, nothing
  desktop_notifications TEXT,
  mobile_push_notifications TEXT,
  email_notifications TEXT,
  team_id TEXT,
  team_main INTEGER NOT NULL DEFAULT 0,
  prid TEXT,                             -- parent rid for discussions
  room_updated_at INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_quill_subscriptions_updated ON quill_subscriptions(room_updated_at);

-- Threads the user has opened or replied in
CREATE TABLE IF NOT EXISTS quill_threads (
  id TEXT PRIMARY KEY,                   -- guid of the thread root message
  rid TEXT NOT NULL,
  draft_message TEXT,
  reply_count INTEGER NOT NULL DEFAULT 0,
  last_reply_ts INTEGER
);

CREATE INDEX IF NOT EXISTS idx_quill_threads_rid ON quill_threads(rid);

-- Slash command mirror, refreshed wholesale from the server
CREATE TABLE IF NOT EXISTS quill_slash_commands (
  id TEXT PRIMARY KEY,                   -- command name without the slash
  params TEXT,
  description TEXT,
  client_only INTEGER NOT NULL DEFAULT 0,
  provides_preview INTEGER NOT NULL DEFAULT 0,
  app_id TEXT
);

-- Custom image emoji mirror
CREATE TABLE IF NOT EXISTS quill_custom_emojis (
  name TEXT PRIMARY KEY,
  extension TEXT NOT NULL,
  aliases TEXT NOT NULL DEFAULT '[]'     -- JSON array
);

-- Local-only emoji usage counts; rowid preserves first-use order for ties
CREATE TABLE IF NOT EXISTS quill_frequent_emojis (
  content TEXT PRIMARY KEY,
  extension TEXT,
  is_custom INTEGER NOT NULL DEFAULT 0,
  count INTEGER NOT NULL DEFAULT 0
);
`

func ensureSchema(conn *sql.DB) error {
	_, err := conn.Exec(schemaSQL)
	return err
}
