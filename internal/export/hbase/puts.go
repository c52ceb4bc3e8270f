// Package hbase turns exported session files into an HBase shell script:
// one put per column into the sessions_by_user table, with a row key that
// supports prefix scans by user.
package hbase

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const TableName = "sessions_by_user"

// sessionRecord keeps timestamps as raw strings so the script reproduces
// the exported values byte for byte.
type sessionRecord struct {
	SessionID        string `json:"session_id"`
	UserID           string `json:"user_id"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	DurationSeconds  int    `json:"duration_seconds"`
	ConversionStatus string `json:"conversion_status"`
	Referrer         string `json:"referrer"`
	Geo              struct {
		City      string `json:"city"`
		State     string `json:"state"`
		Country   string `json:"country"`
		IPAddress string `json:"ip_address"`
	} `json:"geo_data"`
	Device struct {
		Type    string `json:"type"`
		OS      string `json:"os"`
		Browser string `json:"browser"`
	} `json:"device_profile"`
	ViewedProducts []string `json:"viewed_products"`
}

// RowKey is user_id#start_time#session_id so all sessions of a user scan
// as one contiguous prefix range.
func (s *sessionRecord) RowKey() string {
	return escape(s.UserID) + "#" + escape(s.StartTime) + "#" + escape(s.SessionID)
}

func (s *sessionRecord) columns() [][2]string {
	return [][2]string{
		{"s:user_id", s.UserID},
		{"s:session_id", s.SessionID},
		{"s:start_time", s.StartTime},
		{"s:end_time", s.EndTime},
		{"s:duration_seconds", strconv.Itoa(s.DurationSeconds)},
		{"s:conversion_status", s.ConversionStatus},
		{"s:referrer", s.Referrer},
		{"s:geo_city", s.Geo.City},
		{"s:geo_state", s.Geo.State},
		{"s:geo_country", s.Geo.Country},
		{"s:ip_address", s.Geo.IPAddress},
		{"s:device_type", s.Device.Type},
		{"s:device_os", s.Device.OS},
		{"s:device_browser", s.Device.Browser},
		{"s:viewed_products", strings.Join(s.ViewedProducts, ",")},
	}
}

type Emitter struct {
	// Limit caps how many sessions are ingested; zero or negative means
	// no cap.
	Limit int
}

// EmitDir reads every sessions_*.json under inputDir and writes the put
// script to out, returning the number of sessions ingested.
func (e *Emitter) EmitDir(out io.Writer, inputDir string) (int, error) {
	files, err := filepath.Glob(filepath.Join(inputDir, "sessions_*.json"))
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("no sessions_*.json found in %s", inputDir)
	}
	sort.Strings(files)

	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "disable '%s'\n", TableName)
	fmt.Fprintf(w, "enable '%s'\n", TableName)

	written := 0
	for _, fp := range files {
		sessions, err := readSessions(fp)
		if err != nil {
			return written, fmt.Errorf("failed to read %s: %w", fp, err)
		}
		for i := range sessions {
			if e.Limit > 0 && written >= e.Limit {
				break
			}
			emitPuts(w, &sessions[i])
			written++
		}
		if e.Limit > 0 && written >= e.Limit {
			break
		}
	}

	fmt.Fprintf(w, "count '%s'\n", TableName)
	return written, w.Flush()
}

func emitPuts(w io.Writer, s *sessionRecord) {
	rowKey := s.RowKey()
	for _, col := range s.columns() {
		fmt.Fprintf(w, "put '%s', '%s', '%s', '%s'\n", TableName, rowKey, col[0], escape(col[1]))
	}
}

// readSessions accepts either a JSON array or JSON lines; malformed lines
// are skipped.
func readSessions(path string) ([]sessionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sessions []sessionRecord
	if err := json.Unmarshal(data, &sessions); err == nil {
		return sessions, nil
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var s sessionRecord
		if err := json.Unmarshal([]byte(line), &s); err == nil {
			sessions = append(sessions, s)
		}
	}
	return sessions, nil
}

func escape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
