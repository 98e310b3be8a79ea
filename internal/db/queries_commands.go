package db

import (
	"database/sql"

	"github.com/quillchat/quill/internal/types"
)

// GetSlashCommand returns the mirrored command with the exact name, or nil.
func (s *Store) GetSlashCommand(name string) (*types.SlashCommand, error) {
	row := s.conn.QueryRow(`
		SELECT id, params, description, client_only, provides_preview, app_id
		FROM quill_slash_commands
		WHERE id = ?
	`, name)
	cmd, err := scanSlashCommand(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cmd, nil
}

// SearchSlashCommands returns commands whose name starts with prefix, limited
// to limit rows. The prefix is LIKE-escaped before matching.
func (s *Store) SearchSlashCommands(prefix string, limit int) ([]types.SlashCommand, error) {
	rows, err := s.conn.Query(`
		SELECT id, params, description, client_only, provides_preview, app_id
		FROM quill_slash_commands
		WHERE id LIKE ? ESCAPE '\'
		ORDER BY id
		LIMIT ?
	`, sanitizeLikeString(prefix)+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commands []types.SlashCommand
	for rows.Next() {
		cmd, err := scanSlashCommand(rows)
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	return commands, rows.Err()
}

// ReplaceSlashCommands swaps the whole command mirror for the server's
// current list in one transaction.
func (s *Store) ReplaceSlashCommands(commands []types.SlashCommand) error {
	return s.Write(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM quill_slash_commands"); err != nil {
			return err
		}
		for _, cmd := range commands {
			_, err := tx.Exec(`
				INSERT INTO quill_slash_commands (id, params, description, client_only, provides_preview, app_id)
				VALUES (?, ?, ?, ?, ?, ?)
			`, cmd.ID, cmd.Params, cmd.Description,
				boolInt(cmd.ClientOnly), boolInt(cmd.ProvidesPreview), nullableValue(cmd.AppID))
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func scanSlashCommand(scanner interface{ Scan(dest ...any) error }) (types.SlashCommand, error) {
	var cmd types.SlashCommand
	var params, description, appID sql.NullString
	var clientOnly, providesPreview int64
	err := scanner.Scan(&cmd.ID, &params, &description, &clientOnly, &providesPreview, &appID)
	if err != nil {
		return types.SlashCommand{}, err
	}
	cmd.Params = params.String
	cmd.Description = description.String
	cmd.ClientOnly = clientOnly != 0
	cmd.ProvidesPreview = providesPreview != 0
	cmd.AppID = nullStringPtr(appID)
	return cmd, nil
}
