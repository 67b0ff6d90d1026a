// Package store persists proofreading history in a local SQLite database:
// one row per completed job, the glossary each job produced, and a cache of
// interactive snippet edits so repeated commands on the same text do not
// cost another AI round trip.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/valpere/pandulipi/internal"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS proofread_jobs (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		author_persona TEXT,
		book_summary TEXT,
		language_rules TEXT,
		raw_chars INTEGER DEFAULT 0,
		edited_chars INTEGER DEFAULT 0,
		service_used TEXT,
		status TEXT DEFAULT 'completed',
		error TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS job_glossary (
		job_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		term TEXT NOT NULL,
		transliteration TEXT,
		translation TEXT,
		context TEXT,
		PRIMARY KEY (job_id, position),
		FOREIGN KEY (job_id) REFERENCES proofread_jobs(id)
	);

	-- snippet_edits caches interactive edits keyed by normalised snippet+command
	CREATE TABLE IF NOT EXISTS snippet_edits (
		id TEXT PRIMARY KEY,
		snippet TEXT NOT NULL,
		command TEXT NOT NULL,
		edited TEXT NOT NULL,
		service_used TEXT,
		usage_count INTEGER DEFAULT 1,
		last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(snippet, command)
	);

	CREATE INDEX IF NOT EXISTS idx_jobs_created ON proofread_jobs(created_at);
	CREATE INDEX IF NOT EXISTS idx_glossary_job ON job_glossary(job_id);
	CREATE INDEX IF NOT EXISTS idx_snippet_lookup ON snippet_edits(snippet, command);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveJob records a completed (or failed) pipeline run and returns its ID.
// The glossary, when non-nil, is stored alongside in analyst order.
func (s *Store) SaveJob(ctx context.Context, job internal.ProofreadJob, glossary []internal.GlossaryEntry) (string, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO proofread_jobs (id, filename, author_persona, book_summary, language_rules, raw_chars, edited_chars, service_used, status, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.Filename, job.AuthorPersona, job.BookSummary, job.LanguageRules,
		job.RawChars, job.EditedChars, job.ServiceUsed, job.Status, job.Error, job.CreatedAt)
	if err != nil {
		return "", err
	}

	for i, e := range glossary {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO job_glossary (job_id, position, term, transliteration, translation, context) VALUES (?, ?, ?, ?, ?, ?)`,
			job.ID, i, e.Term, e.Transliteration, e.Translation, e.Context)
		if err != nil {
			return "", err
		}
	}

	return job.ID, nil
}

// GetJob retrieves a job by ID together with its stored glossary.
func (s *Store) GetJob(ctx context.Context, id string) (*internal.ProofreadJob, []internal.GlossaryEntry, error) {
	var job internal.ProofreadJob
	err := s.db.QueryRowContext(ctx,
		`SELECT id, filename, author_persona, book_summary, language_rules, raw_chars, edited_chars, service_used, status, error, created_at
		 FROM proofread_jobs WHERE id = ?`, id).Scan(
		&job.ID, &job.Filename, &job.AuthorPersona, &job.BookSummary, &job.LanguageRules,
		&job.RawChars, &job.EditedChars, &job.ServiceUsed, &job.Status, &job.Error, &job.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("job not found: %s", id)
	}
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT term, transliteration, translation, context FROM job_glossary WHERE job_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var glossary []internal.GlossaryEntry
	for rows.Next() {
		var e internal.GlossaryEntry
		if err := rows.Scan(&e.Term, &e.Transliteration, &e.Translation, &e.Context); err != nil {
			return nil, nil, err
		}
		glossary = append(glossary, e)
	}

	return &job, glossary, rows.Err()
}

// ListJobs returns all jobs, newest first.
func (s *Store) ListJobs(ctx context.Context) ([]internal.ProofreadJob, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, author_persona, book_summary, language_rules, raw_chars, edited_chars, service_used, status, error, created_at
		 FROM proofread_jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []internal.ProofreadJob
	for rows.Next() {
		var j internal.ProofreadJob
		if err := rows.Scan(&j.ID, &j.Filename, &j.AuthorPersona, &j.BookSummary, &j.LanguageRules,
			&j.RawChars, &j.EditedChars, &j.ServiceUsed, &j.Status, &j.Error, &j.CreatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// ClearJobs removes all job history (and the per-job glossaries).
func (s *Store) ClearJobs(ctx context.Context) (int64, error) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM job_glossary`); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM proofread_jobs`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// HistoryStats summarises the stored job history.
type HistoryStats struct {
	TotalJobs     int
	CompletedJobs int
	FailedJobs    int
	GlossaryTerms int
}

// Stats returns summary statistics over the job history.
func (s *Store) Stats(ctx context.Context) (*HistoryStats, error) {
	stats := &HistoryStats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0)
		FROM proofread_jobs`).Scan(
		&stats.TotalJobs,
		&stats.CompletedJobs,
		&stats.FailedJobs,
	)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_glossary`).Scan(&stats.GlossaryTerms)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// SaveSnippetEdit caches the result of an interactive edit.
func (s *Store) SaveSnippetEdit(ctx context.Context, snippet, command, edited, serviceUsed string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO snippet_edits (id, snippet, command, edited, service_used, usage_count, last_used, created_at)
		 VALUES (?, ?, ?, ?, ?, 1, ?, ?)`,
		uuid.NewString(), normalizeText(snippet), normalizeText(command), edited, serviceUsed, time.Now(), time.Now())
	return err
}

// GetSnippetEdit returns a cached edit for the exact snippet+command pair.
func (s *Store) GetSnippetEdit(ctx context.Context, snippet, command string) (string, bool, error) {
	var edited string
	err := s.db.QueryRowContext(ctx,
		`SELECT edited FROM snippet_edits WHERE snippet = ? AND command = ?`,
		normalizeText(snippet), normalizeText(command)).Scan(&edited)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE snippet_edits SET usage_count = usage_count + 1, last_used = ? WHERE snippet = ? AND command = ?`,
		time.Now(), normalizeText(snippet), normalizeText(command))
	return edited, true, err
}

// FuzzyGetSnippetEdit returns a cached edit for the same command whose
// snippet has at least threshold similarity (0–1) to snippet. Pass
// threshold ≤ 0 to disable. To avoid O(n²) cost, snippets longer than
// 1 000 runes are not fuzzy-matched.
func (s *Store) FuzzyGetSnippetEdit(ctx context.Context, snippet, command string, threshold float64) (string, bool, error) {
	if threshold <= 0 {
		return "", false, nil
	}

	normalized := normalizeText(snippet)
	const maxFuzzyRunes = 1000
	if len([]rune(normalized)) > maxFuzzyRunes {
		return "", false, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT snippet, edited FROM snippet_edits WHERE command = ?`,
		normalizeText(command))
	if err != nil {
		return "", false, err
	}
	defer rows.Close()

	var bestEdited string
	bestScore := 0.0

	for rows.Next() {
		var snip, edited string
		if err := rows.Scan(&snip, &edited); err != nil {
			return "", false, err
		}

		// Quick length pre-filter: if the length difference alone makes it
		// impossible to reach the threshold, skip the expensive edit distance.
		ls, lr := len([]rune(normalized)), len([]rune(snip))
		maxL := ls
		if lr > maxL {
			maxL = lr
		}
		diff := ls - lr
		if diff < 0 {
			diff = -diff
		}
		if maxL > 0 && 1.0-float64(diff)/float64(maxL) < threshold {
			continue
		}

		score := stringSimilarity(normalized, snip)
		if score >= threshold && score > bestScore {
			bestScore = score
			bestEdited = edited
		}
	}
	if err := rows.Err(); err != nil {
		return "", false, err
	}

	if bestEdited != "" {
		return bestEdited, true, nil
	}
	return "", false, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeText trims whitespace and applies Unicode NFC normalization
// for consistent cache key comparison.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

// levenshtein returns the edit distance between two strings (rune-aware).
// Uses a space-optimized two-row DP implementation.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1]
			} else {
				min := prev[j]
				if prev[j-1] < min {
					min = prev[j-1]
				}
				if curr[j-1] < min {
					min = curr[j-1]
				}
				curr[j] = min + 1
			}
		}
		prev, curr = curr, prev
	}

	return prev[lb]
}

// stringSimilarity returns a similarity score in [0, 1] (1 = identical).
func stringSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	la, lb := len([]rune(a)), len([]rune(b))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(maxLen)
}
