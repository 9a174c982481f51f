package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/database"
	"github.com/google/uuid"
)

// ActivityLog is one audited admin action, stored in Postgres so the trail
// survives Mongo data resets.
type ActivityLog struct {
	ID          uuid.UUID              `json:"id"`
	CreatedAt   time.Time              `json:"created_at"`
	Event       string                 `json:"event"` // e.g. USER_DELETE, SETTINGS_CHANGE
	Description string                 `json:"description"`
	PerformedBy string                 `json:"performedBy,omitempty"`
	TargetID    string                 `json:"targetId,omitempty"`
	TargetType  string                 `json:"targetType,omitempty"` // USER, WORKOUT, METRIC, SETTING
	IPAddress   string                 `json:"ipAddress,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// LogAction records an admin action. Failures are logged and swallowed;
// auditing must never fail the admin request itself.
func LogAction(event, description, performedBy, targetID, targetType, ipAddress string, metadata map[string]interface{}) {
	var metaJSON []byte
	if metadata != nil {
		metaJSON, _ = json.Marshal(metadata)
	}

	_, err := database.PostgresDB.Exec(
		`INSERT INTO activity_logs (id, event, description, performed_by, target_id, target_type, ip_address, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.New(), event, description, nullable(performedBy), nullable(targetID), nullable(targetType), nullable(ipAddress), nullableBytes(metaJSON),
	)
	if err != nil {
		log.Printf("Failed to record activity log: %v", err)
	}
}

// RecentActivityLogs returns the latest audited actions, newest first.
func RecentActivityLogs(limit int) ([]ActivityLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := database.PostgresDB.Query(
		`SELECT id, created_at, event, description,
		        COALESCE(performed_by, ''), COALESCE(target_id, ''), COALESCE(target_type, ''),
		        COALESCE(ip_address, ''), COALESCE(metadata::text, '')
		 FROM activity_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []ActivityLog{}
	for rows.Next() {
		var entry ActivityLog
		var metaText string
		if err := rows.Scan(&entry.ID, &entry.CreatedAt, &entry.Event, &entry.Description,
			&entry.PerformedBy, &entry.TargetID, &entry.TargetType, &entry.IPAddress, &metaText); err != nil {
			return nil, err
		}
		if metaText != "" {
			json.Unmarshal([]byte(metaText), &entry.Metadata)
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

// RecordBlockedIP persists an IP block for admin visibility.
func RecordBlockedIP(ipAddress, reason string, duration time.Duration) {
	_, err := database.PostgresDB.Exec(
		`INSERT INTO blocked_ips (id, expires_at, ip_address, reason) VALUES ($1, $2, $3, $4)`,
		uuid.New(), time.Now().Add(duration), ipAddress, reason,
	)
	if err != nil {
		log.Printf("Failed to record blocked IP: %v", err)
	}
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableBytes(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}
