// Package results persists completed interview summaries as JSON files, one
// per session. This is an archive for reviewers, not a durability layer:
// live sessions are never written.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/skillgate/interviewd/internal/interview"
)

// Record is the on-disk shape of one finished interview.
type Record struct {
	SessionID     string                   `json:"session_id"`
	CandidateName string                   `json:"candidate_name"`
	Role          string                   `json:"role"`
	Level         string                   `json:"level"`
	MatchedSkills []string                 `json:"matched_skills"`
	Answers       []interview.AnswerRecord `json:"answers"`
	Decision      *interview.Decision      `json:"decision,omitempty"`
	Signals       interview.Signals        `json:"signals"`
	FinishedAt    time.Time                `json:"finished_at"`
}

// Writer saves records under a directory, creating it on demand.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter builds a Writer for the given directory.
func NewWriter(dir string) *Writer {
	return &Writer{dir: strings.TrimSpace(dir), now: time.Now}
}

// SaveResult writes the finished session as interview_<id>.json.
func (w *Writer) SaveResult(session *interview.Session) error {
	if w == nil || w.dir == "" {
		return fmt.Errorf("results directory is not configured")
	}
	if session == nil {
		return fmt.Errorf("session is required")
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("creating results directory %s: %w", w.dir, err)
	}

	record := Record{
		SessionID:     session.ID,
		CandidateName: session.CandidateName,
		Role:          session.Role,
		Level:         session.Level,
		MatchedSkills: session.MatchedSkills,
		Answers:       session.Answers,
		Decision:      session.Decision,
		Signals:       session.Signals,
		FinishedAt:    w.now(),
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	path := filepath.Join(w.dir, fmt.Sprintf("interview_%s.json", session.ID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing result file %s: %w", path, err)
	}

	return nil
}

// LoadResult reads a previously saved record by session id.
func (w *Writer) LoadResult(sessionID string) (*Record, error) {
	path := filepath.Join(w.dir, fmt.Sprintf("interview_%s.json", sessionID))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file %s: %w", path, err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding result file %s: %w", path, err)
	}

	return &record, nil
}

// ListResults returns the session ids of every saved record.
func (w *Writer) ListResults() ([]string, error) {
	if _, err := os.Stat(w.dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("reading results directory %s: %w", w.dir, err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		if !strings.HasPrefix(name, "interview_") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(name, "interview_"), ".json"))
	}

	return ids, nil
}
