package internal

import (
	"time"

	"go.uber.org/zap"
)

// Conclude appends {now, conclusion, result path} to the seed's expansion
// ledger and rewrites the record. The ledger is append-only: repeated calls
// accumulate and history is never truncated or deduplicated. False for
// unknown ids.
func (s *Store) Conclude(id, conclusion, resultPath string) (bool, error) {
	path, err := s.findPath(id)
	if err != nil {
		return false, err
	}
	if path == "" {
		return false, nil
	}

	seed, err := s.readSeed(path)
	if err != nil {
		s.log.Warn("corrupt seed record", zap.String("path", path), zap.Error(err))
		return false, nil
	}

	seed.Expansions = append(seed.Expansions, ExpansionRecord{
		Timestamp:  s.now().UTC().Format(time.RFC3339),
		Conclusion: conclusion,
		ResultPath: resultPath,
	})
	if err := s.persist(seed, path); err != nil {
		return false, err
	}
	s.recordHistory("conclude: " + id)
	return true, nil
}
