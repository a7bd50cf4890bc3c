// Package history records completed sign and verify operations as JSONL
// files under the sigil home directory. Records never contain key material
// beyond the public key already returned by the service.
package history

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mrz1836/sigil/internal/clock"
	"github.com/mrz1836/sigil/internal/constants"
	"github.com/mrz1836/sigil/internal/domain"
	"github.com/mrz1836/sigil/internal/errors"
	"github.com/mrz1836/sigil/internal/flock"
)

// SignRecord is one line of the signing history file.
type SignRecord struct {
	RecordedAt    time.Time `json:"recorded_at"`
	SigningID     string    `json:"signing_id,omitempty"`
	SigningTime   time.Time `json:"signing_time,omitzero"`
	Signature     string    `json:"signature"`
	Fingerprint   string    `json:"fingerprint"`
	Digest        string    `json:"digest"`
	PublicKey     string    `json:"public_key,omitempty"`
	CurveName     string    `json:"curve_name,omitempty"`
	AlgorithmName string    `json:"algorithm_name,omitempty"`
}

// VerifyRecord is one line of the verification history file.
type VerifyRecord struct {
	RecordedAt       time.Time `json:"recorded_at"`
	VerificationID   string    `json:"verification_id,omitempty"`
	VerificationTime time.Time `json:"verification_time,omitzero"`
	IsValid          bool      `json:"is_valid"`
	Fingerprint      string    `json:"fingerprint"`
	Digest           string    `json:"digest"`
	PublicKey        string    `json:"public_key,omitempty"`
	CurveName        string    `json:"curve_name,omitempty"`
	BitSize          int       `json:"bit_size,omitempty"`
}

// Store persists and reads back operation records.
type Store interface {
	// AppendSign records a completed signing.
	AppendSign(result domain.SignResult) error

	// AppendVerify records a completed verification.
	AppendVerify(result domain.VerifyResult) error

	// ListSigns returns the most recent signing records, newest first.
	ListSigns(limit int) ([]SignRecord, error)

	// ListVerifies returns the most recent verification records, newest first.
	ListVerifies(limit int) ([]VerifyRecord, error)
}

// FileStore is the JSONL-backed Store. Appends take an exclusive file lock
// so concurrent sigil processes never interleave partial lines.
type FileStore struct {
	dir   string
	clock clock.Clock
	mu    sync.Mutex
}

// NewFileStore creates a store rooted at dir, creating the directory as
// needed. An empty dir resolves to ~/.sigil/history.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get home directory")
		}
		dir = filepath.Join(home, constants.SigilHome, constants.HistoryDir)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.Wrap(err, "failed to create history directory")
	}
	return &FileStore{dir: dir, clock: clock.RealClock{}}, nil
}

// AppendSign writes one signing record.
func (s *FileStore) AppendSign(result domain.SignResult) error {
	return s.appendLine(constants.SignHistoryFileName, SignRecord{
		RecordedAt:    s.clock.Now().UTC(),
		SigningID:     result.SigningID,
		SigningTime:   result.SigningTime,
		Signature:     result.Signature,
		Fingerprint:   result.Fingerprint.EncodedValue,
		Digest:        result.Fingerprint.DigestAlgorithm,
		PublicKey:     result.PublicKey,
		CurveName:     result.CurveName,
		AlgorithmName: result.AlgorithmName,
	})
}

// AppendVerify writes one verification record.
func (s *FileStore) AppendVerify(result domain.VerifyResult) error {
	return s.appendLine(constants.VerifyHistoryFileName, VerifyRecord{
		RecordedAt:       s.clock.Now().UTC(),
		VerificationID:   result.VerificationID,
		VerificationTime: result.VerificationTime,
		IsValid:          result.IsValid,
		Fingerprint:      result.Fingerprint.EncodedValue,
		Digest:           result.Fingerprint.DigestAlgorithm,
		PublicKey:        result.PublicKey,
		CurveName:        result.CurveName,
		BitSize:          result.BitSize,
	})
}

// ListSigns returns up to limit signing records, newest first. A limit of
// zero or less uses the default.
func (s *FileStore) ListSigns(limit int) ([]SignRecord, error) {
	return listRecords[SignRecord](s, constants.SignHistoryFileName, limit)
}

// ListVerifies returns up to limit verification records, newest first.
func (s *FileStore) ListVerifies(limit int) ([]VerifyRecord, error) {
	return listRecords[VerifyRecord](s, constants.VerifyHistoryFileName, limit)
}

func (s *FileStore) appendLine(fileName string, record any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, fileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // Path is rooted at the validated history dir
	if err != nil {
		return errors.Wrap(err, "failed to open history file")
	}
	defer func() { _ = file.Close() }()

	if err = flock.Exclusive(file.Fd()); err != nil {
		return errors.Wrap(err, "history file is locked by another process")
	}
	defer func() { _ = flock.Unlock(file.Fd()) }()

	if err = json.NewEncoder(file).Encode(record); err != nil {
		return errors.Wrap(err, "failed to write history record")
	}
	return nil
}

func listRecords[T any](s *FileStore, fileName string, limit int) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = constants.DefaultHistoryLimit
	}

	path := filepath.Join(s.dir, fileName)
	file, err := os.Open(path) //nolint:gosec // Path is rooted at the validated history dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to open history file")
	}
	defer func() { _ = file.Close() }()

	var records []T
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var record T
		if err = json.Unmarshal(line, &record); err != nil {
			// A torn write at the tail must not hide the rest of the file.
			continue
		}
		records = append(records, record)
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrHistoryCorrupted, err.Error())
	}

	// Newest first, capped at limit.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

var _ Store = (*FileStore)(nil)
