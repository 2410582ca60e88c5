package rankings

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"rankcrawl/lib/scrapers/vjudge"
)

// csvColumns is the fixed export projection. The per-problem results are
// deliberately not part of it.
var csvColumns = []string{"rank", "team", "score", "penalty", "solved"}

// WriteCSV serializes standings in the fixed column order.
func WriteCSV(w io.Writer, records []vjudge.RankingRecord) error {
	out := csv.NewWriter(w)
	if err := out.Write(csvColumns); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Rank),
			r.Team,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Penalty),
			strconv.Itoa(r.Solved),
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

// exportCSV writes one contest's standings to a timestamped file under the
// service's output directory and returns its path.
func (s Service) exportCSV(contestID string, records []vjudge.RankingRecord) (string, error) {
	err := os.MkdirAll(s.outputDir, 0o755)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf(
		"vjudge_contest_%s_rankings_%s.csv",
		contestID,
		time.Now().Format("20060102_150405"),
	)
	path := filepath.Join(s.outputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	err = WriteCSV(file, records)
	if err != nil {
		return "", err
	}
	return path, nil
}
