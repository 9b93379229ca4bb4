package sessions

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/openclaw/dev-cockpit/internal/util"
)

// ParseFile parses a single session JSONL file. Invalid lines are skipped;
// the file only fails as a whole when it cannot be read at all.
func ParseFile(path string) (*Session, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	session := &Session{
		Path:      path,
		SessionID: sessionIDFromPath(path),
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineCount := 0
	sawHeader := false
	for scanner.Scan() {
		lineCount++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec Record
		if err := sonic.Unmarshal(line, &rec); err != nil {
			util.LogDebug(fmt.Sprintf("Skip invalid JSON line %s:%d - %v", path, lineCount, err))
			continue
		}

		if !sawHeader {
			sawHeader = true
			session.Cwd = rec.Cwd
			if rec.SessionID != "" {
				session.SessionID = rec.SessionID
			}
			continue
		}

		if rec.Timestamp == "" {
			continue
		}
		ts, err := parseTimestamp(rec.Timestamp)
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip event with bad timestamp %s:%d - %v", path, lineCount, err))
			continue
		}

		event := Event{
			Timestamp:    ts,
			Model:        rec.Model,
			InputTokens:  rec.Usage.InputTokens,
			OutputTokens: rec.Usage.OutputTokens,
		}
		if rec.CostUSD != nil {
			event.CostUSD = *rec.CostUSD
			event.HasCost = true
		}
		session.Events = append(session.Events, event)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return session, nil
}

// parseTimestamp accepts RFC3339 with or without sub-second precision.
func parseTimestamp(s string) (int64, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return 0, err
		}
	}
	return t.Unix(), nil
}

func sessionIDFromPath(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
