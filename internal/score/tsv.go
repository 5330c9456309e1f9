package score

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"phon-similarity/internal/match"
)

// ReadPairs reads tab-separated pairs, one per line.
// Format: id<TAB>source<TAB>target
// Blank lines and lines starting with # are skipped. Every pair gets mode.
func ReadPairs(r io.Reader, mode match.Mode) ([]Pair, error) {
	var pairs []Pair

	err := scanTSV(r, 3, func(fields []string) {
		pairs = append(pairs, Pair{ID: fields[0], Source: fields[1], Target: fields[2], Mode: mode})
	})
	if err != nil {
		return nil, err
	}

	return pairs, nil
}

// ReadLexicon reads tab-separated lexicon entries, one per line.
// Format: word<TAB>transcription
func ReadLexicon(r io.Reader) ([]match.Entry, error) {
	var entries []match.Entry

	err := scanTSV(r, 2, func(fields []string) {
		entries = append(entries, match.Entry{Word: fields[0], Transcription: fields[1]})
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// WriteResults writes results as id<TAB>mode<TAB>distance<TAB>similarity lines.
func WriteResults(w io.Writer, results []Result) error {
	bw := bufio.NewWriter(w)

	for _, res := range results {
		_, err := fmt.Fprintf(bw, "%s\t%s\t%s\t%s\n",
			res.ID,
			res.Mode,
			strconv.FormatFloat(res.Distance, 'f', -1, 64),
			strconv.FormatFloat(res.Similarity, 'f', -1, 64),
		)
		if err != nil {
			return err
		}
	}

	return bw.Flush()
}

func scanTSV(r io.Reader, fieldCount int, emit func([]string)) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "\t", fieldCount)
		if len(parts) < fieldCount {
			return fmt.Errorf("line %d: expected %d tab-separated fields, got %d", lineNum, fieldCount, len(parts))
		}

		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		emit(parts)
	}

	return scanner.Err()
}
