package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"binance-alert-bot/internal/types"

	log "github.com/sirupsen/logrus"
)

// InsertAlert saves a new alert. It returns false when an alert with the
// same (chat_id, symbol, target_price) already exists.
func InsertAlert(chatID int64, symbol string, targetPrice float64) (bool, error) {
	query := `INSERT INTO alerts (chat_id, symbol, target_price) VALUES (?, ?, ?);`

	_, err := DB.Exec(query, chatID, symbol, targetPrice)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert alert: %w", err)
	}

	log.Debugf("Alert inserted: ChatID: %d, Symbol: %s, Target: %f", chatID, symbol, targetPrice)
	return true, nil
}

// GetAllAlerts fetches every alert, ascending by id. The poll cycle reads
// this snapshot once per cycle.
func GetAllAlerts() ([]types.Alert, error) {
	query := `
	SELECT id, chat_id, symbol, target_price, last_price, last_notified_at
	FROM alerts ORDER BY id;`

	rows, err := DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	return scanAlerts(rows)
}

// GetAlertsByChatID fetches all alerts owned by a chat, ascending by id.
func GetAlertsByChatID(chatID int64) ([]types.Alert, error) {
	query := `
	SELECT id, chat_id, symbol, target_price, last_price, last_notified_at
	FROM alerts WHERE chat_id = ? ORDER BY id;`

	rows, err := DB.Query(query, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts for chat ID %d: %w", chatID, err)
	}
	defer rows.Close()

	return scanAlerts(rows)
}

// DeleteAlert removes an alert only if it belongs to chatID. It reports
// whether a row was actually deleted.
func DeleteAlert(chatID, alertID int64) (bool, error) {
	query := `DELETE FROM alerts WHERE id = ? AND chat_id = ?;`

	result, err := DB.Exec(query, alertID, chatID)
	if err != nil {
		return false, fmt.Errorf("failed to delete alert %d: %w", alertID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result for alert %d: %w", alertID, err)
	}
	return affected > 0, nil
}

// UpdateAlertState unconditionally overwrites the poll-cycle state of an
// alert. A nil lastNotifiedAt clears the column.
func UpdateAlertState(alertID int64, lastPrice float64, lastNotifiedAt *time.Time) error {
	query := `UPDATE alerts SET last_price = ?, last_notified_at = ? WHERE id = ?;`

	var notifiedAt interface{}
	if lastNotifiedAt != nil {
		notifiedAt = lastNotifiedAt.UTC().Format(time.RFC3339Nano)
	}

	_, err := DB.Exec(query, lastPrice, notifiedAt, alertID)
	if err != nil {
		return fmt.Errorf("failed to update state for alert %d: %w", alertID, err)
	}
	return nil
}

func scanAlerts(rows *sql.Rows) ([]types.Alert, error) {
	var alerts []types.Alert
	for rows.Next() {
		var (
			alert      types.Alert
			lastPrice  sql.NullFloat64
			notifiedAt sql.NullString
		)
		if err := rows.Scan(&alert.ID, &alert.ChatID, &alert.Symbol, &alert.TargetPrice, &lastPrice, &notifiedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if lastPrice.Valid {
			value := lastPrice.Float64
			alert.LastPrice = &value
		}
		alert.LastNotifiedAt = parseNotifiedAt(notifiedAt)
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

// parseNotifiedAt treats an unparsable timestamp as absent rather than
// failing the whole row.
func parseNotifiedAt(value sql.NullString) *time.Time {
	if !value.Valid || value.String == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, value.String)
	if err != nil {
		log.Warnf("Ignoring malformed last_notified_at %q: %v", value.String, err)
		return nil
	}
	return &parsed
}
